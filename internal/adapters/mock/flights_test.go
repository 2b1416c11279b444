package mock

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/beetlebot/cheepnow/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestGenerator(seed int64) *FlightGenerator {
	return NewFlightGenerator(DefaultCatalog(), rand.New(rand.NewSource(seed)), func() time.Time { return fixedNow })
}

func search(from, to, date string) core.FlightSearchRequest {
	return core.FlightSearchRequest{From: from, To: to, DepartDate: date, Adults: 1}
}

func TestGenerateFlights_MNLtoCEB_ExcludesRegional(t *testing.T) {
	allowed := map[string]bool{"5J": true, "PR": true, "Z2": true}

	for seed := int64(1); seed <= 50; seed++ {
		offers, err := newTestGenerator(seed).GenerateFlights(search("MNL", "CEB", "2026-06-12"))
		require.NoError(t, err)
		require.NotEmpty(t, offers)

		seenAirlines := map[string]bool{}
		for _, f := range offers {
			assert.True(t, allowed[f.Airline.Code], "seed %d: unexpected airline %s", seed, f.Airline.Code)
			seenAirlines[f.Airline.Code] = true
		}
		assert.Len(t, seenAirlines, 3, "every eligible airline contributes at least one offer")
		assert.GreaterOrEqual(t, len(offers), 3)
		assert.LessOrEqual(t, len(offers), 9)
	}
}

func TestGenerateFlights_PriceBounds(t *testing.T) {
	cases := []struct {
		name     string
		date     string
		seasonal float64
	}{
		{"off peak", "2026-06-12", 1.0},
		{"peak", "2026-12-20", 1.3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for seed := int64(1); seed <= 30; seed++ {
				offers, err := newTestGenerator(seed).GenerateFlights(search("MNL", "CEB", tc.date))
				require.NoError(t, err)

				for _, f := range offers {
					r := tierMultipliers[f.Airline.Tier]
					lo := 3500 * tc.seasonal * r.lo * 0.9 * 0.9 * 1.12
					hi := 3500 * tc.seasonal * r.hi * 1.6 * 1.0 * 1.12

					assert.InDelta(t, f.BasePrice+f.Taxes, f.TotalPrice, 1e-9)
					assert.InDelta(t, f.BasePrice*0.12, f.Taxes, 1e-9)
					assert.GreaterOrEqual(t, f.TotalPrice, lo-1e-6, "seed %d %s", seed, f.ID)
					assert.LessOrEqual(t, f.TotalPrice, hi+1e-6, "seed %d %s", seed, f.ID)
				}
			}
		})
	}
}

func TestGenerateFlights_OfferShape(t *testing.T) {
	offers, err := newTestGenerator(7).GenerateFlights(search("MNL", "CEB", "2026-06-12"))
	require.NoError(t, err)

	ids := map[string]bool{}
	for i, f := range offers {
		assert.False(t, ids[f.ID], "duplicate id %s", f.ID)
		ids[f.ID] = true

		assert.NotEqual(t, f.From.Code, f.To.Code)
		assert.Equal(t, "MNL", f.From.Code)
		assert.Equal(t, "CEB", f.To.Code)
		assert.Equal(t, core.Currency, f.Currency)

		assert.GreaterOrEqual(t, f.ValueScore, 0.0)
		assert.LessOrEqual(t, f.ValueScore, 100.0)
		assert.Contains(t, f.Recommendation, "Recommended for ")
		if i > 0 {
			assert.GreaterOrEqual(t, offers[i-1].ValueScore, f.ValueScore, "offers must be best value first")
		}

		assert.GreaterOrEqual(t, f.SeatsAvailable, 3)
		assert.LessOrEqual(t, f.SeatsAvailable, 45)
		assert.GreaterOrEqual(t, f.DurationMinutes, 90)

		var dh, dm, ah, am int
		_, err := fmt.Sscanf(f.DepartTime, "%d:%d", &dh, &dm)
		require.NoError(t, err)
		_, err = fmt.Sscanf(f.ArriveTime, "%d:%d", &ah, &am)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, dh, 5)
		assert.LessOrEqual(t, dh, 23)
		assert.Contains(t, []int{0, 15, 30, 45}, dm)
		assert.Equal(t, (dh*60+dm+f.DurationMinutes)%1440, ah*60+am)

		assert.Contains(t, []string{"Airbus A320", "Boeing 737"}, f.Aircraft)
		assert.InDelta(t, CarbonKg(630, f.Aircraft), f.CarbonKg, 1e-9)

		require.Len(t, f.PriceHistory, 7)
		assert.Equal(t, "2026-06-01", f.PriceHistory[0].Date)
		assert.Equal(t, "2026-05-26", f.PriceHistory[6].Date)
		for _, p := range f.PriceHistory {
			assert.GreaterOrEqual(t, p.Price, f.TotalPrice*0.85-1e-9)
			assert.LessOrEqual(t, p.Price, f.TotalPrice*1.15+1e-9)
		}
	}
}

func TestGenerateFlights_UnknownRouteUsesDefaults(t *testing.T) {
	// ILO→CEB is not priced; 500 km keeps the regional carrier eligible.
	sawRegional := false
	for seed := int64(1); seed <= 20; seed++ {
		offers, err := newTestGenerator(seed).GenerateFlights(search("ILO", "CEB", "2026-06-12"))
		require.NoError(t, err)
		for _, f := range offers {
			if f.Airline.Tier == core.TierRegional {
				sawRegional = true
			}
			assert.InDelta(t, CarbonKg(500, f.Aircraft), f.CarbonKg, 1e-9)
			r := tierMultipliers[f.Airline.Tier]
			assert.GreaterOrEqual(t, f.TotalPrice, 3000*r.lo*0.81*1.12-1e-6)
			assert.LessOrEqual(t, f.TotalPrice, 3000*r.hi*1.6*1.12+1e-6)
		}
	}
	assert.True(t, sawRegional)
}

func TestGenerateFlights_ShortHaulAircraft(t *testing.T) {
	offers, err := newTestGenerator(3).GenerateFlights(search("CEB", "DVO", "2026-06-12"))
	require.NoError(t, err)
	for _, f := range offers {
		assert.Contains(t, []string{"ATR 72", "Airbus A320"}, f.Aircraft)
		assert.LessOrEqual(t, f.CarbonKg, 380*0.15+1e-9)
	}
}

func TestGenerateFlights_RegionalNeverOnLongRoutes(t *testing.T) {
	for _, r := range DefaultCatalog().Routes() {
		if r.DistanceKm <= regionalMaxKm {
			continue
		}
		for seed := int64(1); seed <= 10; seed++ {
			offers, err := newTestGenerator(seed).GenerateFlights(search(r.From, r.To, "2026-06-12"))
			require.NoError(t, err)
			for _, f := range offers {
				assert.NotEqual(t, core.TierRegional, f.Airline.Tier, "%s→%s", r.From, r.To)
			}
		}
	}
}

func TestGenerateFlights_SeedIsReproducible(t *testing.T) {
	a, err := newTestGenerator(99).GenerateFlights(search("MNL", "DVO", "2026-01-15"))
	require.NoError(t, err)
	b, err := newTestGenerator(99).GenerateFlights(search("MNL", "DVO", "2026-01-15"))
	require.NoError(t, err)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
		assert.Equal(t, a[i].TotalPrice, b[i].TotalPrice)
		assert.Equal(t, a[i].Recommendation, b[i].Recommendation)
	}
}

func TestGenerateFlights_RejectsBadInput(t *testing.T) {
	g := newTestGenerator(1)

	_, err := g.GenerateFlights(search("MNL", "MNL", "2026-06-12"))
	assert.ErrorIs(t, err, core.ErrSameAirport)

	_, err = g.GenerateFlights(search("MNL", "XXX", "2026-06-12"))
	assert.ErrorIs(t, err, core.ErrUnknownAirport)

	_, err = g.GenerateFlights(search("MNL", "CEB", "12/06/2026"))
	assert.Error(t, err)
}

func TestCarbonKg(t *testing.T) {
	assert.InDelta(t, 94.5, CarbonKg(630, "Airbus A320"), 1e-9)
	assert.InDelta(t, 99.225, CarbonKg(630, "Boeing 737"), 1e-9)
	assert.InDelta(t, 45.6, CarbonKg(380, "ATR 72"), 1e-9)
	assert.InDelta(t, 75.0, CarbonKg(500, "Unknown"), 1e-9)
}

func TestCatalog_RouteDefaults(t *testing.T) {
	c := DefaultCatalog()

	r, ok := c.Route("MNL", "CEB")
	assert.True(t, ok)
	assert.Equal(t, 630, r.DistanceKm)
	assert.Equal(t, 3500.0, r.BasePrice)

	r, ok = c.Route("PPS", "TAG")
	assert.False(t, ok)
	assert.Equal(t, 500, r.DistanceKm)
	assert.Equal(t, 3000.0, r.BasePrice)

	assert.Len(t, c.Airports(), 8)
	assert.Len(t, c.PopularRoutes(), 8)
	assert.Equal(t, "5J", c.Airlines()[0].Code)
	for _, r := range c.Routes() {
		_, okFrom := c.Airport(r.From)
		_, okTo := c.Airport(r.To)
		assert.True(t, okFrom && okTo, "%s→%s", r.From, r.To)
	}
}
