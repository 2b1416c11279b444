package mock

import (
	"sort"

	"github.com/beetlebot/cheepnow/internal/core"
)

const (
	defaultDistanceKm = 500
	defaultBasePrice  = 3000.0
)

type Route struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	DistanceKm int     `json:"distanceKm"`
	BasePrice  float64 `json:"basePrice"`
}

type routeKey struct{ from, to string }

// Catalog is the static reference data the generator draws from.
type Catalog struct {
	airlines []*core.Airline
	airports map[string]*core.Airport
	routes   map[routeKey]Route
	popular  []routeKey
}

var _ core.AirportDirectory = (*Catalog)(nil)

func DefaultCatalog() *Catalog {
	c := &Catalog{
		airports: make(map[string]*core.Airport),
		routes:   make(map[routeKey]Route),
	}

	c.airlines = []*core.Airline{
		{Code: "5J", Name: "Cebu Pacific", Tier: core.TierBudget, CarryOnIncluded: true, CheckedBaggageKg: 20,
			OnTimePerformance: 0.82, CustomerRating: 3.8, LoyaltyProgram: "GetGo"},
		{Code: "PR", Name: "Philippine Airlines", Tier: core.TierFullService, CarryOnIncluded: true, CheckedBaggageIncluded: true,
			CheckedBaggageKg: 23, OnTimePerformance: 0.78, CustomerRating: 4.1, WiFi: true, MealService: true, LoyaltyProgram: "Mabuhay Miles"},
		{Code: "Z2", Name: "Philippines AirAsia", Tier: core.TierLowCost, CarryOnIncluded: true, CheckedBaggageKg: 20,
			OnTimePerformance: 0.85, CustomerRating: 3.9, LoyaltyProgram: "BIG Loyalty"},
		{Code: "M8", Name: "Skyjet Airlines", Tier: core.TierRegional, CarryOnIncluded: true, CheckedBaggageKg: 15,
			OnTimePerformance: 0.88, CustomerRating: 4.2, MealService: true, LoyaltyProgram: "Skyjet Rewards"},
	}

	for _, a := range []*core.Airport{
		{Code: "MNL", Name: "Ninoy Aquino International Airport", City: "Manila", Region: "Metro Manila",
			Facilities: []string{"WiFi", "Restaurants", "Duty Free", "Lounges", "ATM", "Currency Exchange"}, DistanceFromCityKm: 7},
		{Code: "CEB", Name: "Mactan-Cebu International Airport", City: "Cebu", Region: "Central Visayas",
			Facilities: []string{"WiFi", "Restaurants", "Duty Free", "Car Rental", "ATM"}, DistanceFromCityKm: 12},
		{Code: "DVO", Name: "Francisco Bangoy International Airport", City: "Davao", Region: "Mindanao",
			Facilities: []string{"WiFi", "Restaurants", "ATM", "Car Rental"}, DistanceFromCityKm: 11},
		{Code: "ILO", Name: "Iloilo International Airport", City: "Iloilo", Region: "Western Visayas",
			Facilities: []string{"WiFi", "Restaurants", "ATM"}, DistanceFromCityKm: 18},
		{Code: "BCD", Name: "Bacolod-Silay Airport", City: "Bacolod", Region: "Western Visayas",
			Facilities: []string{"WiFi", "Restaurants", "Car Rental"}, DistanceFromCityKm: 16},
		{Code: "TAG", Name: "Tagbilaran Airport", City: "Bohol", Region: "Central Visayas",
			Facilities: []string{"WiFi", "Restaurants", "ATM"}, DistanceFromCityKm: 2},
		{Code: "KLO", Name: "Kalibo International Airport", City: "Kalibo", Region: "Western Visayas",
			Facilities: []string{"WiFi", "Restaurants", "ATM", "Duty Free"}, DistanceFromCityKm: 3},
		{Code: "PPS", Name: "Puerto Princesa Airport", City: "Palawan", Region: "Mimaropa",
			Facilities: []string{"WiFi", "Restaurants", "ATM"}, DistanceFromCityKm: 2},
	} {
		a.Timezone = "Asia/Manila"
		c.airports[a.Code] = a
	}

	for _, r := range []Route{
		{"MNL", "CEB", 630, 3500}, {"MNL", "DVO", 970, 4200}, {"MNL", "ILO", 460, 2800},
		{"CEB", "DVO", 380, 3200}, {"CEB", "MNL", 630, 3500}, {"DVO", "MNL", 970, 4200},
		{"MNL", "BCD", 480, 2900}, {"MNL", "TAG", 660, 3400}, {"MNL", "KLO", 390, 2600},
		{"MNL", "PPS", 590, 3800},
	} {
		c.routes[routeKey{r.From, r.To}] = r
	}

	c.popular = []routeKey{
		{"MNL", "CEB"}, {"MNL", "DVO"}, {"MNL", "ILO"}, {"MNL", "BCD"},
		{"CEB", "DVO"}, {"CEB", "MNL"}, {"DVO", "MNL"}, {"ILO", "MNL"},
	}

	return c
}

// Airlines returns the carriers in generation order.
func (c *Catalog) Airlines() []*core.Airline {
	return c.airlines
}

func (c *Catalog) Airport(code string) (*core.Airport, bool) {
	a, ok := c.airports[code]
	return a, ok
}

// Airports returns all airports sorted by code.
func (c *Catalog) Airports() []*core.Airport {
	out := make([]*core.Airport, 0, len(c.airports))
	for _, a := range c.airports {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Route looks up distance and base price. Pairs missing from the table get
// the default 500 km / ₱3000 and ok=false.
func (c *Catalog) Route(from, to string) (Route, bool) {
	if r, ok := c.routes[routeKey{from, to}]; ok {
		return r, true
	}
	return Route{From: from, To: to, DistanceKm: defaultDistanceKm, BasePrice: defaultBasePrice}, false
}

// Routes returns the priced routes sorted by origin then destination.
func (c *Catalog) Routes() []Route {
	out := make([]Route, 0, len(c.routes))
	for _, r := range c.routes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// PopularRoutes are the quick-pick routes shown on the search form.
func (c *Catalog) PopularRoutes() []Route {
	out := make([]Route, 0, len(c.popular))
	for _, k := range c.popular {
		r, _ := c.Route(k.from, k.to)
		out = append(out, r)
	}
	return out
}
