package types

// PriceLevel is the coarse price bracket of a recommended place.
type PriceLevel string

const (
	PriceCheap     PriceLevel = "Cheap"
	PriceModerate  PriceLevel = "Moderate"
	PriceExpensive PriceLevel = "Expensive"
	PriceLuxury    PriceLevel = "Luxury"
)

var PriceLevels = []PriceLevel{PriceCheap, PriceModerate, PriceExpensive, PriceLuxury}

func (p PriceLevel) Valid() bool {
	for _, v := range PriceLevels {
		if p == v {
			return true
		}
	}
	return false
}

const (
	MaxRating         = 5.0
	MaxSentimentScore = 100.0
)

// PlaceRecommendation is one search-grounded suggestion. Rating is on a 0-5
// scale, SentimentScore on 0-100.
type PlaceRecommendation struct {
	Name             string     `json:"name"`
	Type             string     `json:"type"`
	Rating           float64    `json:"rating"`
	SentimentScore   float64    `json:"sentimentScore"`
	SentimentSummary string     `json:"sentimentSummary"`
	PriceLevel       PriceLevel `json:"priceLevel"`
	Description      string     `json:"description"`
	BookingLink      string     `json:"bookingLink,omitempty"`
}
