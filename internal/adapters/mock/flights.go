package mock

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/beetlebot/cheepnow/internal/core"
)

const (
	taxRate          = 0.12
	carbonPerKm      = 0.15
	regionalMaxKm    = 600
	historyDays      = 7
	minDurationMin   = 90
	peakSeasonFactor = 1.3
)

type priceRange struct{ lo, hi float64 }

var tierMultipliers = map[core.Tier]priceRange{
	core.TierBudget:      {0.8, 1.1},
	core.TierLowCost:     {0.85, 1.15},
	core.TierFullService: {1.1, 1.4},
	core.TierRegional:    {1.2, 1.5},
}

var demandMultiplier = priceRange{0.9, 1.6}

var aircraftCarbon = map[string]float64{
	"Airbus A320": 1.0,
	"Boeing 737":  1.05,
	"ATR 72":      0.8,
}

var peakMonths = map[time.Month]bool{
	time.December: true,
	time.January:  true,
	time.March:    true,
	time.April:    true,
	time.May:      true,
}

var departMinutes = []int{0, 15, 30, 45}

var demandLevels = []core.DemandLevel{core.DemandLow, core.DemandMedium, core.DemandHigh}

// FlightGenerator synthesises offers from the catalog. The random source is
// shared, so calls are serialised.
type FlightGenerator struct {
	catalog *Catalog
	now     func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

var _ core.FlightGenerator = (*FlightGenerator)(nil)

func NewFlightGenerator(catalog *Catalog, rng *rand.Rand, now func() time.Time) *FlightGenerator {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &FlightGenerator{catalog: catalog, rng: rng, now: now}
}

// NewSeededFlightGenerator is a convenience for reproducible runs.
func NewSeededFlightGenerator(catalog *Catalog, seed int64) *FlightGenerator {
	return NewFlightGenerator(catalog, rand.New(rand.NewSource(seed)), nil)
}

func (g *FlightGenerator) Name() string { return "mock_flights" }

// GenerateFlights expects a request already validated by core.Searcher;
// origin and destination must differ and exist in the catalog.
func (g *FlightGenerator) GenerateFlights(req core.FlightSearchRequest) ([]core.FlightOffer, error) {
	depart, err := time.Parse("2006-01-02", req.DepartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid depart date: %w", err)
	}
	if req.From == req.To {
		return nil, core.ErrSameAirport
	}
	from, ok := g.catalog.Airport(req.From)
	if !ok {
		return nil, fmt.Errorf("%w %q", core.ErrUnknownAirport, req.From)
	}
	to, ok := g.catalog.Airport(req.To)
	if !ok {
		return nil, fmt.Errorf("%w %q", core.ErrUnknownAirport, req.To)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	route, _ := g.catalog.Route(req.From, req.To)
	seasonal := 1.0
	if peakMonths[depart.Month()] {
		seasonal = peakSeasonFactor
	}

	today := g.now()
	seen := make(map[string]bool)
	var offers []core.FlightOffer

	for _, al := range g.catalog.Airlines() {
		if al.Tier == core.TierRegional && route.DistanceKm > regionalMaxKm {
			continue
		}

		count := 1 + g.rng.Intn(3)
		if al.Tier == core.TierRegional {
			count = 1 + g.rng.Intn(2)
		}

		for n := 1; n <= count; n++ {
			f := g.buildOffer(al, from, to, route, seasonal, n, today)
			f.ID = g.uniqueID(al.Code, n, seen)

			f.ValueScore = core.ValueScore(f, offers)
			f.Recommendation = core.Recommend(f, g.rng)
			offers = append(offers, f)
		}
	}

	core.RankFlights(offers)
	return offers, nil
}

func (g *FlightGenerator) buildOffer(al *core.Airline, from, to *core.Airport, route Route, seasonal float64, n int, today time.Time) core.FlightOffer {
	tier := g.uniform(tierMultipliers[al.Tier])
	demand := g.uniform(demandMultiplier)

	hour := 5 + g.rng.Intn(19)
	timeOfDay := 1.0
	if hour < 8 || hour > 20 {
		timeOfDay = 0.9
	}

	base := route.BasePrice * seasonal * tier * demand * timeOfDay
	taxes := base * taxRate
	total := base + taxes

	minute := departMinutes[g.rng.Intn(len(departMinutes))]
	duration := route.DistanceKm/8 + g.rng.Intn(51) - 20
	if duration < minDurationMin {
		duration = minDurationMin
	}
	arrive := (hour*60 + minute + duration) % (24 * 60)

	aircraft := g.pickAircraft(route.DistanceKm)

	return core.FlightOffer{
		FlightNumber:    fmt.Sprintf("%s %d%d", al.Code, n, 10+g.rng.Intn(90)),
		Airline:         al,
		From:            from,
		To:              to,
		DepartTime:      fmt.Sprintf("%02d:%02d", hour, minute),
		ArriveTime:      fmt.Sprintf("%02d:%02d", arrive/60, arrive%60),
		DurationMinutes: duration,
		BasePrice:       base,
		Taxes:           taxes,
		TotalPrice:      total,
		Currency:        core.Currency,
		SeatsAvailable:  3 + g.rng.Intn(43),
		Aircraft:        aircraft,
		PriceTrend:      g.pickTrend(),
		CarbonKg:        CarbonKg(route.DistanceKm, aircraft),
		PriceHistory:    g.priceHistory(total, today),
	}
}

// CarbonKg estimates emissions for one passenger over distanceKm.
func CarbonKg(distanceKm int, aircraft string) float64 {
	mult, ok := aircraftCarbon[aircraft]
	if !ok {
		mult = 1.0
	}
	return float64(distanceKm) * carbonPerKm * mult
}

func (g *FlightGenerator) pickAircraft(distanceKm int) string {
	options := []string{"ATR 72", "Airbus A320"}
	if distanceKm > 400 {
		options = []string{"Airbus A320", "Boeing 737"}
	}
	return options[g.rng.Intn(len(options))]
}

// pickTrend is weighted: stable 60%, rising 25%, falling 15%.
func (g *FlightGenerator) pickTrend() core.PriceTrend {
	r := g.rng.Float64()
	switch {
	case r < 0.60:
		return core.TrendStable
	case r < 0.85:
		return core.TrendRising
	default:
		return core.TrendFalling
	}
}

func (g *FlightGenerator) priceHistory(total float64, today time.Time) []core.PriceHistoryPoint {
	points := make([]core.PriceHistoryPoint, 0, historyDays)
	for i := 0; i < historyDays; i++ {
		points = append(points, core.PriceHistoryPoint{
			Date:   today.AddDate(0, 0, -i).Format("2006-01-02"),
			Price:  total * g.uniform(priceRange{0.85, 1.15}),
			Demand: demandLevels[g.rng.Intn(len(demandLevels))],
		})
	}
	return points
}

func (g *FlightGenerator) uniqueID(code string, n int, seen map[string]bool) string {
	for {
		id := fmt.Sprintf("%s%d%d", code, n, 100+g.rng.Intn(900))
		if !seen[id] {
			seen[id] = true
			return id
		}
	}
}

func (g *FlightGenerator) uniform(r priceRange) float64 {
	return r.lo + g.rng.Float64()*(r.hi-r.lo)
}
