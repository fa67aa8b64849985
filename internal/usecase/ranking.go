package usecase

import (
	"sort"

	"github.com/tripnest/offer-engine/internal/domain"
)

// SortOffers orders offers in place by the chosen criterion. Cheapest sorts
// ascending by the quoted total fare; fastest sorts ascending by total
// elapsed minutes, with offers of unknown duration last. Both sorts are
// stable so equally ranked offers keep their provider order.
func SortOffers(offers []domain.FlightOffer, by domain.SortOption) {
	switch by {
	case domain.SortFastest:
		sort.SliceStable(offers, func(i, j int) bool {
			return elapsedRank(offers[i]) < elapsedRank(offers[j])
		})
	default:
		sort.SliceStable(offers, func(i, j int) bool {
			return offers[i].Pricing.TotalFare < offers[j].Pricing.TotalFare
		})
	}
}

// elapsedRank maps unknown durations past every known one.
func elapsedRank(offer domain.FlightOffer) int {
	elapsed := offer.ElapsedMinutes()
	if elapsed <= 0 {
		return int(^uint(0) >> 1)
	}
	return elapsed
}

// RankingStats summarizes the result set for badges and sort controls.
// All amounts are quoted total fares, not payable totals: the AIT surcharge
// varies with each offer's excluded-tax mix, so ranking on payable could
// order two offers differently from their quoted fares.
type RankingStats struct {
	// CheapestFare is the lowest total fare across the UNFILTERED result
	// set. The cheapest badge compares against this, so filtering never
	// promotes a pricier offer to "cheapest".
	CheapestFare float64 `json:"cheapestFare"`

	// FastestMinutes is the shortest known total duration across the
	// unfiltered set; zero when no offer reports a duration.
	FastestMinutes int `json:"fastestMinutes"`

	// FastestFare is the total fare of the fastest offer itself, not the
	// cheapest fare among equally fast ones.
	FastestFare float64 `json:"fastestFare"`
}

// ComputeStats derives ranking stats from the full, unfiltered offer list.
func ComputeStats(offers []domain.FlightOffer) RankingStats {
	var stats RankingStats
	first := true
	for _, offer := range offers {
		fare := offer.Pricing.TotalFare
		if first || fare < stats.CheapestFare {
			stats.CheapestFare = fare
		}
		first = false

		elapsed := offer.ElapsedMinutes()
		if elapsed <= 0 {
			continue
		}
		if stats.FastestMinutes == 0 || elapsed < stats.FastestMinutes {
			stats.FastestMinutes = elapsed
			stats.FastestFare = fare
		}
	}
	return stats
}

// IsCheapest reports whether an offer carries the cheapest badge, judged
// against the unfiltered stats.
func (s RankingStats) IsCheapest(offer domain.FlightOffer) bool {
	return offer.Pricing.TotalFare == s.CheapestFare
}
