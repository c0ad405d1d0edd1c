package planner

import (
	"google.golang.org/genai"

	"github.com/FACorreiaa/roammate-api/internal/types"
)

const jsonMIMEType = "application/json"

// Required fields per contract. The validators check the same lists the
// schemas declare so the two cannot drift apart.
var (
	itineraryRequired = []string{"destination", "summary", "days"}
	dayRequired       = []string{"day", "theme", "activities"}
	activityRequired  = []string{"time", "activity", "description", "location", "type"}
	placeRequired     = []string{"name", "type", "rating", "sentimentScore", "sentimentSummary", "priceLevel", "description"}
)

func stringSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeString}
}

func enumSchema[T ~string](values []T) *genai.Schema {
	enum := make([]string, len(values))
	for i, v := range values {
		enum[i] = string(v)
	}
	return &genai.Schema{Type: genai.TypeString, Enum: enum}
}

func numberSchema(lo, hi float64) *genai.Schema {
	return &genai.Schema{Type: genai.TypeNumber, Minimum: genai.Ptr(lo), Maximum: genai.Ptr(hi)}
}

// ItinerarySchema is the response shape for itinerary generation.
func ItinerarySchema() *genai.Schema {
	activity := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"time":          stringSchema(),
			"activity":      stringSchema(),
			"description":   stringSchema(),
			"location":      stringSchema(),
			"type":          enumSchema(types.ActivityTypes),
			"estimatedCost": stringSchema(),
		},
		Required:         activityRequired,
		PropertyOrdering: []string{"time", "activity", "description", "location", "type", "estimatedCost"},
	}

	day := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"day":        {Type: genai.TypeInteger},
			"theme":      stringSchema(),
			"activities": {Type: genai.TypeArray, Items: activity},
		},
		Required:         dayRequired,
		PropertyOrdering: dayRequired,
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"destination": stringSchema(),
			"summary":     stringSchema(),
			"days":        {Type: genai.TypeArray, Items: day},
		},
		Required:         itineraryRequired,
		PropertyOrdering: itineraryRequired,
	}
}

// PlacesSchema is the response shape for place recommendations: an array of
// places with type and priceLevel required as well.
func PlacesSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":             stringSchema(),
				"type":             stringSchema(),
				"rating":           numberSchema(0, types.MaxRating),
				"sentimentScore":   numberSchema(0, types.MaxSentimentScore),
				"sentimentSummary": stringSchema(),
				"priceLevel":       enumSchema(types.PriceLevels),
				"description":      stringSchema(),
				"bookingLink":      stringSchema(),
			},
			Required: placeRequired,
		},
	}
}
