// Package usecase contains the application's business logic: pricing,
// filtering, ranking, search orchestration, and the fare-calendar state.
package usecase

import (
	"math"
	"strings"

	"github.com/tripnest/offer-engine/internal/domain"
)

// aitRate is the Advance Income Tax rate applied to the taxable base fare.
const aitRate = 0.003

// aitExcludedTaxCodes are government levies excluded from the AIT base.
// Matching is case-insensitive.
var aitExcludedTaxCodes = map[string]struct{}{
	"BD": {},
	"UT": {},
	"E5": {},
}

// PriceBreakdown is the computed customer-facing price of an offer.
type PriceBreakdown struct {
	// TotalFare is the provider's quoted total (base fare plus taxes).
	TotalFare float64 `json:"totalFare"`

	// AIT is the Advance Income Tax surcharge, never negative.
	AIT float64 `json:"ait"`

	// Payable is the amount the customer pays: TotalFare + AIT.
	Payable float64 `json:"payable"`

	// Currency is carried through from the provider quote.
	Currency string `json:"currency"`
}

// ComputeAIT returns the Advance Income Tax for a quoted fare. The taxable
// base is the total fare minus taxes whose codes are on the exclusion list;
// a negative or non-finite result clamps to zero so malformed fare data can
// never produce a discount or poison downstream totals.
func ComputeAIT(totalFare float64, taxes []domain.TaxLine) float64 {
	var excluded float64
	for _, tax := range taxes {
		if _, ok := aitExcludedTaxCodes[strings.ToUpper(tax.Code)]; ok {
			excluded += tax.Amount
		}
	}

	ait := (totalFare - excluded) * aitRate
	if ait < 0 || math.IsNaN(ait) || math.IsInf(ait, 0) {
		return 0
	}
	return ait
}

// Price computes the full customer-facing breakdown for one offer.
func Price(offer domain.FlightOffer) PriceBreakdown {
	ait := ComputeAIT(offer.Pricing.TotalFare, offer.Pricing.Taxes)
	return PriceBreakdown{
		TotalFare: offer.Pricing.TotalFare,
		AIT:       ait,
		Payable:   offer.Pricing.TotalFare + ait,
		Currency:  offer.Pricing.Currency,
	}
}

