package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullService = &Airline{
	Code: "PR", Tier: TierFullService, CarryOnIncluded: true, CheckedBaggageIncluded: true,
	OnTimePerformance: 0.78, CustomerRating: 4.1, WiFi: true, MealService: true,
}

var budget = &Airline{
	Code: "5J", Tier: TierBudget, CarryOnIncluded: true,
	OnTimePerformance: 0.82, CustomerRating: 3.8,
}

func TestValueScore_SingleFlightComponents(t *testing.T) {
	f := FlightOffer{Airline: fullService, TotalPrice: 4500, CarbonKg: 94.5, DepartTime: "10:15"}

	// price 20 (own price ±1000), features 35, on-time 11.7, rating 8.2,
	// environment 9.055, schedule 5
	assert.InDelta(t, 88.955, ValueScore(f, nil), 1e-9)
}

func TestValueScore_CheaperScoresHigher(t *testing.T) {
	batch := []FlightOffer{
		{Airline: budget, TotalPrice: 3000, CarbonKg: 90, DepartTime: "09:00"},
		{Airline: budget, TotalPrice: 6000, CarbonKg: 90, DepartTime: "09:00"},
	}
	cheap := FlightOffer{Airline: budget, TotalPrice: 3500, CarbonKg: 90, DepartTime: "09:00"}
	pricey := FlightOffer{Airline: budget, TotalPrice: 5500, CarbonKg: 90, DepartTime: "09:00"}

	assert.Greater(t, ValueScore(cheap, batch), ValueScore(pricey, batch))
	// (7000-3500)/(7000-2000)*40
	assert.InDelta(t, 28.0, priceScore(3500, batch), 1e-9)
}

func TestValueScore_PriceComponentClamped(t *testing.T) {
	batch := []FlightOffer{{TotalPrice: 8000}}

	assert.Equal(t, 40.0, priceScore(1000, batch))
	assert.Equal(t, 0.0, priceScore(20000, batch))
}

func TestValueScore_ClampedTo100(t *testing.T) {
	perfect := &Airline{
		CarryOnIncluded: true, CheckedBaggageIncluded: true, WiFi: true, MealService: true,
		OnTimePerformance: 1, CustomerRating: 5,
	}
	batch := []FlightOffer{{TotalPrice: 9000}}
	f := FlightOffer{Airline: perfect, TotalPrice: 500, CarbonKg: 0, DepartTime: "12:00"}

	assert.Equal(t, 100.0, ValueScore(f, batch))
}

func TestValueScore_ScheduleWindow(t *testing.T) {
	base := FlightOffer{Airline: budget, TotalPrice: 3000, CarbonKg: 60}

	cases := map[string]float64{
		"07:45": scheduleOffHours,
		"08:00": scheduleDaytime,
		"18:45": scheduleDaytime,
		"19:00": scheduleOffHours,
		"05:00": scheduleOffHours,
	}
	morning := base
	morning.DepartTime = "08:00"
	ref := ValueScore(morning, nil) - scheduleDaytime

	for hhmm, want := range cases {
		f := base
		f.DepartTime = hhmm
		assert.InDelta(t, ref+want, ValueScore(f, nil), 1e-9, hhmm)
	}
}

func TestValueScore_AlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var batch []FlightOffer
	for i := 0; i < 200; i++ {
		f := FlightOffer{
			Airline:    []*Airline{budget, fullService}[rng.Intn(2)],
			TotalPrice: 1000 + rng.Float64()*20000,
			CarbonKg:   rng.Float64() * 2000,
			DepartTime: []string{"05:00", "12:30", "23:45"}[rng.Intn(3)],
		}
		s := ValueScore(f, batch)
		require.GreaterOrEqual(t, s, 0.0)
		require.LessOrEqual(t, s, 100.0)
		batch = append(batch, f)
	}
}

func TestRecommendationReasons(t *testing.T) {
	skyjet := &Airline{CarryOnIncluded: true, OnTimePerformance: 0.88, CustomerRating: 4.2}

	assert.Equal(t,
		[]string{"excellent punctuality", "eco-friendly choice", "high customer satisfaction", "price trending down"},
		RecommendationReasons(FlightOffer{Airline: skyjet, CarbonKg: 45, PriceTrend: TrendFalling}))

	assert.Equal(t,
		[]string{"all baggage included", "high customer satisfaction"},
		RecommendationReasons(FlightOffer{Airline: fullService, CarbonKg: 94.5, PriceTrend: TrendStable}))

	assert.Equal(t,
		[]string{"competitive pricing"},
		RecommendationReasons(FlightOffer{Airline: budget, CarbonKg: 94.5, PriceTrend: TrendRising}))
}

func TestRecommend_PicksQualifyingReason(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	f := FlightOffer{Airline: fullService, CarbonKg: 94.5}
	allowed := []string{
		"Recommended for all baggage included",
		"Recommended for high customer satisfaction",
	}

	for i := 0; i < 20; i++ {
		assert.Contains(t, allowed, Recommend(f, rng))
	}
	assert.Equal(t, "Recommended for competitive pricing", Recommend(FlightOffer{Airline: budget, CarbonKg: 100}, rng))
}

func TestRankFlights_BestValueFirst(t *testing.T) {
	flights := []FlightOffer{
		{ID: "low", ValueScore: 41},
		{ID: "high", ValueScore: 87},
		{ID: "tie_a", ValueScore: 60},
		{ID: "tie_b", ValueScore: 60},
	}

	RankFlights(flights)

	ids := make([]string, len(flights))
	for i, f := range flights {
		ids[i] = f.ID
	}
	assert.Equal(t, []string{"high", "tie_a", "tie_b", "low"}, ids)
}
