package http

import (
	"fmt"
	"time"

	"github.com/tripnest/offer-engine/internal/domain"
	"github.com/tripnest/offer-engine/internal/usecase"
)

// SearchResponseDTO is the data transfer object for search responses.
type SearchResponseDTO struct {
	Offers   []OfferDTO  `json:"offers"`
	Stats    StatsDTO    `json:"stats"`
	Airlines []string    `json:"airlines"`
	Metadata MetadataDTO `json:"metadata"`
}

// StatsDTO summarizes the unfiltered result set for badges and sort tabs.
type StatsDTO struct {
	CheapestFare    float64 `json:"cheapest_fare"`
	FastestMinutes  int     `json:"fastest_minutes"`
	FastestDuration string  `json:"fastest_duration,omitempty"`
	FastestFare     float64 `json:"fastest_fare"`
}

// MetadataDTO contains metadata about the search execution.
type MetadataDTO struct {
	TotalResults    int    `json:"total_results"`
	FilteredResults int    `json:"filtered_results"`
	SearchTimeMs    int64  `json:"search_time_ms"`
	CacheHit        bool   `json:"cache_hit"`
	Provider        string `json:"provider"`
}

// OfferDTO is the data transfer object for one flight offer.
type OfferDTO struct {
	ID         string   `json:"id"`
	Airline    string   `json:"airline"`
	Legs       []LegDTO `json:"legs"`
	Stops      int      `json:"stops"`
	Duration   string   `json:"duration,omitempty"`
	Price      PriceDTO `json:"price"`
	Refundable *bool    `json:"refundable"`
	FareBrand  string   `json:"fare_brand,omitempty"`
	CabinCode  string   `json:"cabin_code,omitempty"`
	Baggage    string   `json:"baggage,omitempty"`
	SeatsLabel string   `json:"seats_label,omitempty"`
	Cheapest   bool     `json:"cheapest"`

	// PricingInfo is the provider's raw pricing block. Clients post it
	// back verbatim to the baggage and fare-rules detail endpoints.
	PricingInfo map[string]interface{} `json:"pricing_info,omitempty"`
}

// LegDTO is one journey direction of an offer.
type LegDTO struct {
	Segments     []SegmentDTO `json:"segments"`
	Duration     string       `json:"duration,omitempty"`
	LayoverLabel string       `json:"layover_label"`
}

// SegmentDTO is one flight of a leg.
type SegmentDTO struct {
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	Departure    string `json:"departure"`
	Arrival      string `json:"arrival"`
	Airline      string `json:"airline"`
	Operator     string `json:"operator,omitempty"`
	FlightNumber string `json:"flight_number"`
	BookingClass string `json:"booking_class,omitempty"`
	Equipment    string `json:"equipment,omitempty"`
}

// PriceDTO is the customer-facing price breakdown of an offer.
type PriceDTO struct {
	Currency  string  `json:"currency"`
	BaseFare  float64 `json:"base_fare"`
	TaxTotal  float64 `json:"tax_total"`
	TotalFare float64 `json:"total_fare"`
	AIT       float64 `json:"ait"`
	Payable   float64 `json:"payable"`
}

// NearbyResponseDTO carries the previous/next-day minimum fare pair.
type NearbyResponseDTO struct {
	Fares []usecase.AlternateDayFare `json:"fares"`
}

// ToSearchResponseDTO converts a use case search result to its DTO.
func ToSearchResponseDTO(result *usecase.SearchResult) *SearchResponseDTO {
	if result == nil {
		return nil
	}

	dto := &SearchResponseDTO{
		Offers: make([]OfferDTO, len(result.Offers)),
		Stats: StatsDTO{
			CheapestFare:   result.Stats.CheapestFare,
			FastestMinutes: result.Stats.FastestMinutes,
			FastestFare:    result.Stats.FastestFare,
		},
		Airlines: result.Airlines,
		Metadata: MetadataDTO{
			TotalResults:    result.Metadata.TotalResults,
			FilteredResults: result.Metadata.FilteredResults,
			SearchTimeMs:    result.Metadata.SearchDurationMs,
			CacheHit:        result.Metadata.CacheHit,
			Provider:        result.Metadata.Provider,
		},
	}
	if result.Stats.FastestMinutes > 0 {
		dto.Stats.FastestDuration = domain.FormatDuration(result.Stats.FastestMinutes)
	}
	if dto.Airlines == nil {
		dto.Airlines = []string{}
	}

	for i := range result.Offers {
		dto.Offers[i] = ToOfferDTO(result.Offers[i], result.Stats)
	}
	return dto
}

// ToOfferDTO converts a domain offer to its DTO, deriving the display
// fields clients render directly.
func ToOfferDTO(offer domain.FlightOffer, stats usecase.RankingStats) OfferDTO {
	price := usecase.Price(offer)

	dto := OfferDTO{
		ID:      offer.ID,
		Airline: offer.PrimaryAirline(),
		Legs:    make([]LegDTO, len(offer.Legs)),
		Stops:   offer.StopCount(),
		Price: PriceDTO{
			Currency:  price.Currency,
			BaseFare:  offer.Pricing.BaseFare,
			TaxTotal:  offer.Pricing.TaxTotal,
			TotalFare: price.TotalFare,
			AIT:       price.AIT,
			Payable:   price.Payable,
		},
		Refundable:  offer.Pricing.Refundable,
		FareBrand:   offer.Pricing.FareBrand,
		CabinCode:   offer.Pricing.CabinCode,
		Baggage:     offer.Pricing.Baggage.Label(),
		SeatsLabel:  seatsLabel(offer.SeatsRemaining),
		Cheapest:    stats.IsCheapest(offer),
		PricingInfo: offer.RawPricing,
	}

	if minutes := offer.ElapsedMinutes(); minutes > 0 {
		dto.Duration = domain.FormatDuration(minutes)
	}

	for i, leg := range offer.Legs {
		dto.Legs[i] = toLegDTO(leg)
	}
	return dto
}

func toLegDTO(leg domain.Leg) LegDTO {
	dto := LegDTO{
		Segments:     make([]SegmentDTO, len(leg.Segments)),
		LayoverLabel: leg.LayoverLabel(),
	}
	if leg.ElapsedMinutes > 0 {
		dto.Duration = domain.FormatDuration(leg.ElapsedMinutes)
	}

	for i, seg := range leg.Segments {
		dto.Segments[i] = SegmentDTO{
			Origin:       seg.Origin,
			Destination:  seg.Destination,
			Departure:    formatSegmentTime(seg.Departure),
			Arrival:      formatSegmentTime(seg.Arrival),
			Airline:      seg.MarketingCarrier,
			FlightNumber: seg.FlightNumber,
			BookingClass: seg.BookingClass,
			Equipment:    seg.Equipment,
		}
		if seg.OperatingCarrier != "" && seg.OperatingCarrier != seg.MarketingCarrier {
			dto.Segments[i].Operator = seg.OperatingCarrier
		}
	}
	return dto
}

// formatSegmentTime renders a segment timestamp, empty when unknown.
func formatSegmentTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02T15:04:05")
}

// seatsLabel renders the scarcity hint shown next to an offer.
func seatsLabel(seats *int) string {
	if seats == nil || *seats <= 0 {
		return ""
	}
	if *seats == 1 {
		return "1 seat left"
	}
	return fmt.Sprintf("%d seats left", *seats)
}
