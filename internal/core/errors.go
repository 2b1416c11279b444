package core

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid search request")
	ErrSameAirport    = errors.New("origin and destination must differ")
	ErrUnknownAirport = errors.New("unknown airport")
	ErrFlightNotFound = errors.New("flight not found in current results")
	ErrNoResults      = errors.New("no search has been run in this session")
)
