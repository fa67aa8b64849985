package gds

import (
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/tripnest/offer-engine/internal/domain"
	"github.com/tripnest/offer-engine/internal/infrastructure/lookup"
)

// fallbackCurrency is used when no tax line, tax total, or itinerary total
// carries a currency code.
const fallbackCurrency = "BDT"

// errInvalidItinerary rejects itineraries with no legs or empty legs.
var errInvalidItinerary = errors.New("itinerary has no usable segments")

// normalize converts the provider's priced itineraries to domain offers.
// Itineraries that are structurally unusable or carry no pricing block are
// skipped: a fabricated zero fare is indistinguishable from a real free one.
func normalize(itineraries []any) []domain.FlightOffer {
	result := make([]domain.FlightOffer, 0, len(itineraries))

	for _, item := range itineraries {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		offer, err := normalizeItinerary(raw)
		if err != nil {
			continue
		}
		result = append(result, offer)
	}

	return result
}

// normalizeItinerary converts one raw priced itinerary into a FlightOffer.
// Every extractor below is total: on any structural mismatch it yields its
// documented default rather than an error. Only a missing pricing block
// rejects the whole itinerary.
func normalizeItinerary(raw map[string]any) (domain.FlightOffer, error) {
	legs := extractLegs(raw)

	pricing, rawPricing, ok := extractPricing(raw)
	if !ok {
		return domain.FlightOffer{}, domain.ErrMissingPricing
	}

	offer := domain.FlightOffer{
		ID:         uuid.New().String(),
		Legs:       legs,
		Pricing:    pricing,
		RawPricing: rawPricing,
	}
	if !offer.Valid() {
		return domain.FlightOffer{}, errInvalidItinerary
	}

	offer.SeatsRemaining = extractSeats(legs, rawPricing)
	offer.Pricing.Baggage = extractBaggage(rawPricing, legs, raw)

	return offer, nil
}

// extractLegs reads the origin-destination options of an itinerary.
// A missing or malformed option list yields no legs.
func extractLegs(raw map[string]any) []domain.Leg {
	options := lookup.AsSlice(lookup.First(raw, []string{
		"AirItinerary.OriginDestinationOptions.OriginDestinationOption",
	}, nil))

	legs := make([]domain.Leg, 0, len(options))
	for _, opt := range options {
		option, ok := opt.(map[string]any)
		if !ok {
			continue
		}

		leg := domain.Leg{
			ElapsedMinutes: lookup.FirstInt(option, []string{"ElapsedTime"}, 0),
		}
		for _, s := range lookup.AsSlice(lookup.First(option, []string{"FlightSegment"}, nil)) {
			segment, ok := s.(map[string]any)
			if !ok {
				continue
			}
			leg.Segments = append(leg.Segments, extractSegment(segment))
		}
		legs = append(legs, leg)
	}
	return legs
}

// extractSegment reads one flight segment. Absent fields stay zero-valued.
func extractSegment(raw map[string]any) domain.Segment {
	seg := domain.Segment{
		Origin:           lookup.FirstString(raw, []string{"DepartureAirport.LocationCode"}, ""),
		Destination:      lookup.FirstString(raw, []string{"ArrivalAirport.LocationCode"}, ""),
		Departure:        parseDateTime(lookup.FirstString(raw, []string{"DepartureDateTime"}, "")),
		Arrival:          parseDateTime(lookup.FirstString(raw, []string{"ArrivalDateTime"}, "")),
		MarketingCarrier: lookup.FirstString(raw, []string{"MarketingAirline.Code", "OperatingAirline.Code"}, ""),
		OperatingCarrier: lookup.FirstString(raw, []string{"OperatingAirline.Code"}, ""),
		FlightNumber:     lookup.FirstString(raw, []string{"FlightNumber"}, ""),
		BookingClass:     lookup.FirstString(raw, []string{"ResBookDesigCode"}, ""),
		Equipment:        lookup.FirstString(raw, []string{"Equipment.AirEquipType", "Equipment.0.AirEquipType"}, ""),
	}

	if seats := lookup.First(raw, []string{"TPA_Extensions.SeatsRemaining.Number"}, nil); seats != nil {
		n := lookup.FirstInt(raw, []string{"TPA_Extensions.SeatsRemaining.Number"}, 0)
		seg.SeatsRemaining = &n
	}
	return seg
}

// parseDateTime accepts RFC3339 timestamps and the provider's bare
// "2006-01-02T15:04:05" form. Unparseable input yields the zero time.
func parseDateTime(value string) time.Time {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return t
	}
	return time.Time{}
}

// extractPricing locates the itinerary's pricing block, tolerating both the
// array and single-object representations of AirItineraryPricingInfo, and
// reads the fare totals and tax breakdown out of it. The raw block is
// returned alongside for lazy detail lookups.
func extractPricing(raw map[string]any) (domain.PricingInfo, map[string]any, bool) {
	block := lookup.First(raw, []string{
		"AirItineraryPricingInfo.0",
		"AirItineraryPricingInfo",
	}, nil)
	rawPricing, ok := block.(map[string]any)
	if !ok {
		return domain.PricingInfo{}, nil, false
	}

	totalFare := lookup.FirstFloat(rawPricing, []string{
		"ItinTotalFare.TotalFare.Amount",
		"TotalFare.Amount",
	}, 0)
	if totalFare <= 0 {
		// A pricing block without a usable total is as good as no pricing.
		return domain.PricingInfo{}, nil, false
	}

	currency := lookup.FirstString(rawPricing, []string{
		"ItinTotalFare.TotalFare.CurrencyCode",
		"TotalFare.CurrencyCode",
	}, fallbackCurrency)

	pricing := domain.PricingInfo{
		Currency: currency,
		BaseFare: lookup.FirstFloat(rawPricing, []string{
			"ItinTotalFare.BaseFare.Amount",
			"BaseFare.Amount",
		}, 0),
		TaxTotal: lookup.FirstFloat(rawPricing, []string{
			"ItinTotalFare.Taxes.TotalTax.Amount",
			"ItinTotalFare.TotalTax.Amount",
		}, 0),
		TotalFare: totalFare,
		Taxes:     extractTaxes(rawPricing, currency),
		FareBrand: lookup.FirstString(rawPricing, []string{
			"FareInfos.FareInfo.0.TPA_Extensions.FareBrandName",
			"FareInfos.FareInfo.0.FareReference",
		}, ""),
		CabinCode: lookup.FirstString(rawPricing, []string{
			"FareInfos.FareInfo.0.TPA_Extensions.Cabin.Cabin",
			"PTC_FareBreakdowns.PTC_FareBreakdown.0.FareBasisCodes.FareBasisCode.0.CabinCode",
		}, ""),
	}

	// Refundable is tri-state: only an explicit boolean sets it, so the
	// raw walk is used here to keep "false" distinguishable from "absent".
	for _, path := range []string{
		"TPA_Extensions.Refundable",
		"FareInfos.FareInfo.0.TPA_Extensions.Refundable",
	} {
		if v, ok := lookup.Raw(rawPricing, path); ok {
			if b, isBool := v.(bool); isBool {
				pricing.Refundable = &b
				break
			}
		}
	}
	if pricing.Refundable == nil {
		if v, ok := lookup.Raw(rawPricing, "NonRefundableIndicator"); ok {
			if b, isBool := v.(bool); isBool {
				refundable := !b
				pricing.Refundable = &refundable
			}
		}
	}

	return pricing, rawPricing, true
}

// extractTaxes reads the passenger fare's tax collection, tolerating both
// array and single-object representations. Entries with a non-positive
// amount are dropped. Line currency falls back to the tax-total currency,
// then the itinerary-total currency, then "BDT".
func extractTaxes(rawPricing map[string]any, itineraryCurrency string) []domain.TaxLine {
	collection := lookup.First(rawPricing, []string{
		"PTC_FareBreakdowns.PTC_FareBreakdown.0.PassengerFare.Taxes.Tax",
		"ItinTotalFare.Taxes.Tax",
	}, nil)

	taxTotalCurrency := lookup.FirstString(rawPricing, []string{
		"ItinTotalFare.Taxes.TotalTax.CurrencyCode",
	}, "")

	var taxes []domain.TaxLine
	for _, item := range lookup.AsSlice(collection) {
		line, ok := item.(map[string]any)
		if !ok {
			continue
		}

		amount := lookup.FirstFloat(line, []string{"Amount"}, 0)
		if amount <= 0 {
			continue
		}

		currency := lookup.FirstString(line, []string{"CurrencyCode"}, "")
		if currency == "" {
			currency = taxTotalCurrency
		}
		if currency == "" {
			currency = itineraryCurrency
		}
		if currency == "" {
			currency = fallbackCurrency
		}

		taxes = append(taxes, domain.TaxLine{
			Code:        lookup.FirstString(line, []string{"TaxCode", "Code"}, ""),
			Amount:      amount,
			Currency:    currency,
			Description: lookup.FirstString(line, []string{"TaxName", "Description"}, ""),
		})
	}
	return taxes
}

// extractSeats resolves the seats-remaining figure for an offer. Sources in
// order: each segment's own extension (first non-nil in segment order across
// all legs), the first fare-info's extension, a fare-breakdown extension.
// Nil when no source has a value; a default count is never assumed.
func extractSeats(legs []domain.Leg, rawPricing map[string]any) *int {
	for _, leg := range legs {
		for _, seg := range leg.Segments {
			if seg.SeatsRemaining != nil {
				return seg.SeatsRemaining
			}
		}
	}

	for _, paths := range [][]string{
		{"FareInfos.FareInfo.0.TPA_Extensions.SeatsRemaining.Number"},
		{"PTC_FareBreakdowns.PTC_FareBreakdown.0.TPA_Extensions.SeatsRemaining.Number"},
	} {
		if lookup.First(rawPricing, paths, nil) != nil {
			n := lookup.FirstInt(rawPricing, paths, 0)
			return &n
		}
	}
	return nil
}

// baggage candidate paths per side, highest priority first.
var (
	checkinBaggagePaths = []string{
		"TPA_Extensions.BaggageAllowance.Checkin",
		"FareInfo.TPA_Extensions.Baggage.Checkin",
		"FareInfos.FareInfo.0.TPA_Extensions.Baggage.Checkin",
		"PTC_FareBreakdowns.PTC_FareBreakdown.0.TPA_Extensions.Baggage.Checkin",
	}
	cabinBaggagePaths = []string{
		"TPA_Extensions.BaggageAllowance.Cabin",
		"FareInfo.TPA_Extensions.Baggage.Cabin",
		"FareInfos.FareInfo.0.TPA_Extensions.Baggage.Cabin",
		"PTC_FareBreakdowns.PTC_FareBreakdown.0.TPA_Extensions.Baggage.Cabin",
	}
)

// extractBaggage resolves checkin and cabin allowances independently.
// Priority per side: pricing-level extensions, then the itemized
// baggage-information block (checkin only), then a scan of every segment's
// own baggage extension.
func extractBaggage(rawPricing map[string]any, legs []domain.Leg, rawItinerary map[string]any) domain.BaggageAllowance {
	var allowance domain.BaggageAllowance

	if v := lookup.FirstString(rawPricing, checkinBaggagePaths, ""); v != "" {
		allowance.Checkin = &v
	}
	if v := lookup.FirstString(rawPricing, cabinBaggagePaths, ""); v != "" {
		allowance.Cabin = &v
	}

	if allowance.Checkin == nil {
		if v := itemizedBaggage(rawPricing); v != "" {
			allowance.Checkin = &v
		}
	}

	if allowance.Checkin == nil {
		if v := segmentBaggage(rawItinerary, "Checkin"); v != "" {
			allowance.Checkin = &v
		}
	}
	if allowance.Cabin == nil {
		if v := segmentBaggage(rawItinerary, "Cabin"); v != "" {
			allowance.Cabin = &v
		}
	}

	return allowance
}

// itemizedBaggage derives a checked-baggage description from the itemized
// baggage-information block: a pieces count ("{n} Pc"), else a weight
// ("{n} Kg"), else the free-text description.
func itemizedBaggage(rawPricing map[string]any) string {
	info := lookup.First(rawPricing, []string{
		"TPA_Extensions.BaggageInformationList.BaggageInformation.0",
		"TPA_Extensions.BaggageInformationList.BaggageInformation",
		"BaggageInformationList.BaggageInformation.0",
	}, nil)
	block, ok := info.(map[string]any)
	if !ok {
		return ""
	}

	if pieces := lookup.FirstInt(block, []string{"Allowance.Pieces", "Pieces"}, 0); pieces > 0 {
		return strconv.Itoa(pieces) + " Pc"
	}
	if weight := lookup.FirstInt(block, []string{"Allowance.Weight", "Weight"}, 0); weight > 0 {
		return strconv.Itoa(weight) + " Kg"
	}
	return lookup.FirstString(block, []string{"Allowance.Description", "Description"}, "")
}

// segmentBaggage scans every segment's baggage extension for the given side
// and returns the first non-empty value found, in segment order.
func segmentBaggage(rawItinerary map[string]any, side string) string {
	options := lookup.AsSlice(lookup.First(rawItinerary, []string{
		"AirItinerary.OriginDestinationOptions.OriginDestinationOption",
	}, nil))

	for _, opt := range options {
		for _, s := range lookup.AsSlice(lookup.First(opt, []string{"FlightSegment"}, nil)) {
			if v := lookup.FirstString(s, []string{"TPA_Extensions.Baggage." + side}, ""); v != "" {
				return v
			}
		}
	}
	return ""
}
