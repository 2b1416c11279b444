package core

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	defaultTimeout = 5 * time.Second
	dateLayout     = "2006-01-02"

	maxAdults   = 9
	maxChildren = 8
	maxInfants  = 4
)

// Searcher validates requests, records them in the session history and runs
// the generator.
type Searcher struct {
	gen      FlightGenerator
	airports AirportDirectory
	now      func() time.Time
}

func NewSearcher(gen FlightGenerator, airports AirportDirectory, now func() time.Time) *Searcher {
	if now == nil {
		now = time.Now
	}
	return &Searcher{gen: gen, airports: airports, now: now}
}

func (s *Searcher) Search(ctx context.Context, sess *Session, req FlightSearchRequest) (*SearchResult, error) {
	req = Normalize(req)
	from, to, err := s.Validate(req)
	if err != nil {
		return nil, err
	}

	route := fmt.Sprintf("%s → %s", from.City, to.City)
	sess.RecordSearch(route, req.DepartDate)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	done := make(chan struct{})
	var (
		flights []FlightOffer
		genErr  error
	)
	go func() {
		flights, genErr = s.gen.GenerateFlights(req)
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", s.gen.Name(), ctx.Err())
	}
	if genErr != nil {
		return nil, fmt.Errorf("%s: %w", s.gen.Name(), genErr)
	}

	RankFlights(flights)

	result := &SearchResult{
		Query:     req,
		Route:     route,
		Generator: s.gen.Name(),
		Flights:   flights,
		Summary:   Summarize(flights),
		FetchedAt: s.now().UTC(),
	}
	sess.SetResult(result)
	return result, nil
}

// Normalize upper-cases airport codes and fills defaults for omitted fields.
func Normalize(req FlightSearchRequest) FlightSearchRequest {
	req.From = strings.ToUpper(strings.TrimSpace(req.From))
	req.To = strings.ToUpper(strings.TrimSpace(req.To))
	if req.TripType == "" {
		req.TripType = TripOneWay
	}
	if req.Adults == 0 && req.Children == 0 && req.Infants == 0 {
		req.Adults = 1
	}
	return req
}

// Validate rejects requests that must not reach the generator.
func (s *Searcher) Validate(req FlightSearchRequest) (*Airport, *Airport, error) {
	if req.From == "" || req.To == "" {
		return nil, nil, fmt.Errorf("%w: origin and destination are required", ErrInvalidRequest)
	}
	if req.From == req.To {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidRequest, ErrSameAirport)
	}
	from, ok := s.airports.Airport(req.From)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %w %q", ErrInvalidRequest, ErrUnknownAirport, req.From)
	}
	to, ok := s.airports.Airport(req.To)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %w %q", ErrInvalidRequest, ErrUnknownAirport, req.To)
	}

	depart, err := time.Parse(dateLayout, req.DepartDate)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: departure date must be YYYY-MM-DD", ErrInvalidRequest)
	}

	switch req.TripType {
	case TripOneWay:
	case TripRoundTrip:
		ret, err := time.Parse(dateLayout, req.ReturnDate)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: round trips need a return date (YYYY-MM-DD)", ErrInvalidRequest)
		}
		if ret.Before(depart) {
			return nil, nil, fmt.Errorf("%w: return date is before departure", ErrInvalidRequest)
		}
	default:
		return nil, nil, fmt.Errorf("%w: unknown trip type %q", ErrInvalidRequest, req.TripType)
	}

	if req.Adults < 1 || req.Adults > maxAdults {
		return nil, nil, fmt.Errorf("%w: adults must be between 1 and %d", ErrInvalidRequest, maxAdults)
	}
	if req.Children < 0 || req.Children > maxChildren {
		return nil, nil, fmt.Errorf("%w: children must be between 0 and %d", ErrInvalidRequest, maxChildren)
	}
	if req.Infants < 0 || req.Infants > maxInfants {
		return nil, nil, fmt.Errorf("%w: infants must be between 0 and %d", ErrInvalidRequest, maxInfants)
	}

	return from, to, nil
}

func Summarize(flights []FlightOffer) SearchSummary {
	sum := SearchSummary{FlightsFound: len(flights)}
	if len(flights) == 0 {
		return sum
	}

	var total, carbon float64
	cheapest, greenest, best := flights[0], flights[0], flights[0]
	for _, f := range flights {
		total += f.TotalPrice
		carbon += f.CarbonKg
		if f.Airline != nil && f.Airline.CarryOnIncluded {
			sum.CarryOnIncluded++
		}
		if f.TotalPrice < cheapest.TotalPrice {
			cheapest = f
		}
		if f.CarbonKg < greenest.CarbonKg {
			greenest = f
		}
		if f.ValueScore > best.ValueScore {
			best = f
		}
	}

	n := float64(len(flights))
	sum.CheapestPrice = cheapest.TotalPrice
	sum.AveragePrice = total / n
	sum.AverageCarbonKg = carbon / n
	sum.EcoPickID = greenest.ID
	sum.BestValueID = best.ID
	return sum
}
