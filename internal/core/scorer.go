package core

import (
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
)

const (
	priceWeight      = 40.0
	pricePadding     = 1000.0
	onTimeWeight     = 15.0
	ratingWeight     = 10.0
	envWeight        = 10.0
	scheduleDaytime  = 5.0
	scheduleOffHours = 2.0
)

// RankFlights orders offers best value first. Offers with equal scores keep
// their generation order.
func RankFlights(flights []FlightOffer) {
	sort.SliceStable(flights, func(i, j int) bool {
		return flights[i].ValueScore > flights[j].ValueScore
	})
}

// ValueScore rates f against the other offers of the same search. The price
// range is taken from batch; with an empty batch the flight's own price is used.
func ValueScore(f FlightOffer, batch []FlightOffer) float64 {
	score := priceScore(f.TotalPrice, batch)

	if f.Airline != nil {
		score += featureScore(f.Airline)
		score += f.Airline.OnTimePerformance * onTimeWeight
		score += (f.Airline.CustomerRating / 5.0) * ratingWeight
	}

	score += math.Max(0, envWeight-f.CarbonKg/100.0)

	hour := departHour(f.DepartTime)
	if hour >= 8 && hour <= 18 {
		score += scheduleDaytime
	} else {
		score += scheduleOffHours
	}

	return clamp(score, 0, 100)
}

func priceScore(price float64, batch []FlightOffer) float64 {
	lo, hi := price, price
	if len(batch) > 0 {
		lo, hi = batch[0].TotalPrice, batch[0].TotalPrice
		for _, b := range batch[1:] {
			lo = math.Min(lo, b.TotalPrice)
			hi = math.Max(hi, b.TotalPrice)
		}
	}
	maxPrice := hi + pricePadding
	minPrice := lo - pricePadding

	return clamp((maxPrice-price)/(maxPrice-minPrice)*priceWeight, 0, priceWeight)
}

func featureScore(a *Airline) float64 {
	var score float64
	if a.CarryOnIncluded {
		score += 15
	}
	if a.CheckedBaggageIncluded {
		score += 10
	}
	if a.WiFi {
		score += 5
	}
	if a.MealService {
		score += 5
	}
	return score
}

// RecommendationReasons lists every reason f qualifies for, in display order.
func RecommendationReasons(f FlightOffer) []string {
	var reasons []string
	if a := f.Airline; a != nil {
		if a.OnTimePerformance > 0.85 {
			reasons = append(reasons, "excellent punctuality")
		}
		if a.CarryOnIncluded && a.CheckedBaggageIncluded {
			reasons = append(reasons, "all baggage included")
		}
	}
	if f.CarbonKg < 80 {
		reasons = append(reasons, "eco-friendly choice")
	}
	if f.Airline != nil && f.Airline.CustomerRating > 4.0 {
		reasons = append(reasons, "high customer satisfaction")
	}
	if f.PriceTrend == TrendFalling {
		reasons = append(reasons, "price trending down")
	}
	if len(reasons) == 0 {
		reasons = []string{"competitive pricing"}
	}
	return reasons
}

// Recommend picks one qualifying reason at random.
func Recommend(f FlightOffer, rng *rand.Rand) string {
	reasons := RecommendationReasons(f)
	return "Recommended for " + reasons[rng.Intn(len(reasons))]
}

func departHour(hhmm string) int {
	h, _, ok := strings.Cut(hhmm, ":")
	if !ok {
		return -1
	}
	n, err := strconv.Atoi(h)
	if err != nil {
		return -1
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
