package core

import (
	"time"
)

type Tier string

const (
	TierBudget      Tier = "budget"
	TierLowCost     Tier = "low-cost"
	TierFullService Tier = "full-service"
	TierRegional    Tier = "regional"
)

type PriceTrend string

const (
	TrendStable  PriceTrend = "stable"
	TrendRising  PriceTrend = "rising"
	TrendFalling PriceTrend = "falling"
)

type DemandLevel string

const (
	DemandLow    DemandLevel = "Low"
	DemandMedium DemandLevel = "Medium"
	DemandHigh   DemandLevel = "High"
)

type TripType string

const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
)

const Currency = "PHP"

type Airline struct {
	Code                   string  `json:"code"`
	Name                   string  `json:"name"`
	Tier                   Tier    `json:"tier"`
	CarryOnIncluded        bool    `json:"carryOnIncluded"`
	CheckedBaggageIncluded bool    `json:"checkedBaggageIncluded"`
	CheckedBaggageKg       int     `json:"checkedBaggageKg"`
	OnTimePerformance      float64 `json:"onTimePerformance"`
	CustomerRating         float64 `json:"customerRating"`
	WiFi                   bool    `json:"wifi"`
	MealService            bool    `json:"mealService"`
	LoyaltyProgram         string  `json:"loyaltyProgram"`
}

type Airport struct {
	Code               string   `json:"code"`
	Name               string   `json:"name"`
	City               string   `json:"city"`
	Region             string   `json:"region"`
	Timezone           string   `json:"timezone"`
	Facilities         []string `json:"facilities"`
	DistanceFromCityKm int      `json:"distanceFromCityKm"`
}

type PriceHistoryPoint struct {
	Date   string      `json:"date"`
	Price  float64     `json:"price"`
	Demand DemandLevel `json:"demand"`
}

// FlightOffer is one synthetic offer. Airline and airports point into the
// shared reference tables and must not be mutated.
type FlightOffer struct {
	ID              string              `json:"id"`
	FlightNumber    string              `json:"flightNumber"`
	Airline         *Airline            `json:"airline"`
	From            *Airport            `json:"from"`
	To              *Airport            `json:"to"`
	DepartTime      string              `json:"departTime"`
	ArriveTime      string              `json:"arriveTime"`
	DurationMinutes int                 `json:"durationMinutes"`
	BasePrice       float64             `json:"basePrice"`
	Taxes           float64             `json:"taxes"`
	TotalPrice      float64             `json:"totalPrice"`
	Currency        string              `json:"currency"`
	SeatsAvailable  int                 `json:"seatsAvailable"`
	Aircraft        string              `json:"aircraft"`
	PriceTrend      PriceTrend          `json:"priceTrend"`
	CarbonKg        float64             `json:"carbonKg"`
	PriceHistory    []PriceHistoryPoint `json:"priceHistory"`
	ValueScore      float64             `json:"valueScore"`
	Recommendation  string              `json:"recommendation"`
}

// SearchFilters are collected from the search form and echoed back. The
// generator does not consult them.
type SearchFilters struct {
	CabinClass    string `json:"cabinClass,omitempty"`
	FlexibleDates bool   `json:"flexibleDates,omitempty"`
	DirectOnly    bool   `json:"directOnly,omitempty"`
}

type FlightSearchRequest struct {
	From       string        `json:"from"`
	To         string        `json:"to"`
	DepartDate string        `json:"departDate"`
	ReturnDate string        `json:"returnDate,omitempty"`
	TripType   TripType      `json:"tripType,omitempty"`
	Adults     int           `json:"adults"`
	Children   int           `json:"children,omitempty"`
	Infants    int           `json:"infants,omitempty"`
	Filters    SearchFilters `json:"filters,omitempty"`
}

func (r FlightSearchRequest) Passengers() int {
	return r.Adults + r.Children + r.Infants
}

type SearchSummary struct {
	FlightsFound    int     `json:"flightsFound"`
	CheapestPrice   float64 `json:"cheapestPrice"`
	AveragePrice    float64 `json:"averagePrice"`
	CarryOnIncluded int     `json:"carryOnIncluded"`
	AverageCarbonKg float64 `json:"averageCarbonKg"`
	EcoPickID       string  `json:"ecoPickId,omitempty"`
	BestValueID     string  `json:"bestValueId,omitempty"`
}

type SearchResult struct {
	Query     FlightSearchRequest `json:"query"`
	Route     string              `json:"route"`
	Generator string              `json:"generator"`
	Flights   []FlightOffer       `json:"flights"`
	Summary   SearchSummary       `json:"summary"`
	FetchedAt time.Time           `json:"fetchedAt"`
}

type HistoryEntry struct {
	Route     string    `json:"route"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

type Preferences struct {
	PreferredAirlines  []string `json:"preferredAirlines"`
	MaxBudget          float64  `json:"maxBudget"`
	PreferredDeparture string   `json:"preferredDeparture"`
	EcoConscious       bool     `json:"ecoConscious"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		PreferredAirlines:  []string{},
		MaxBudget:          10000,
		PreferredDeparture: "any",
	}
}

// FlightGenerator produces the offers for a validated request.
type FlightGenerator interface {
	Name() string
	GenerateFlights(req FlightSearchRequest) ([]FlightOffer, error)
}

// AirportDirectory resolves airport codes against the reference tables.
type AirportDirectory interface {
	Airport(code string) (*Airport, bool)
}
