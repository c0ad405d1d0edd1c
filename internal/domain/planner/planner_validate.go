package planner

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/roammate-api/internal/types"
)

// ValidationError lists every contract violation found in a decoded response.
// It matches types.ErrSchemaViolation with errors.Is.
type ValidationError struct {
	Contract   string
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", types.ErrSchemaViolation, e.Contract, strings.Join(e.Violations, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == types.ErrSchemaViolation
}

type violations struct {
	list []string
}

func (v *violations) addf(format string, args ...any) {
	v.list = append(v.list, fmt.Sprintf(format, args...))
}

func (v *violations) requireString(path, field, value string) {
	if strings.TrimSpace(value) == "" {
		v.addf("%s.%s is required", path, field)
	}
}

func (v *violations) err(contract string) error {
	if len(v.list) == 0 {
		return nil
	}
	return &ValidationError{Contract: contract, Violations: v.list}
}

// ValidateItinerary checks required fields, activity type membership and that
// day numbers run 1..duration in order.
func ValidateItinerary(it *types.Itinerary, duration int) error {
	if it == nil {
		return &ValidationError{Contract: "itinerary", Violations: []string{"itinerary is empty"}}
	}

	var v violations
	v.requireString("itinerary", "destination", it.Destination)
	v.requireString("itinerary", "summary", it.Summary)

	if len(it.Days) != duration {
		v.addf("itinerary.days has %d entries, want %d", len(it.Days), duration)
	}

	for i, day := range it.Days {
		path := fmt.Sprintf("days[%d]", i)
		if day.Day != i+1 {
			v.addf("%s.day is %d, want %d", path, day.Day, i+1)
		}
		v.requireString(path, "theme", day.Theme)
		if len(day.Activities) == 0 {
			v.addf("%s.activities is required", path)
		}
		for j, act := range day.Activities {
			actPath := fmt.Sprintf("%s.activities[%d]", path, j)
			v.requireString(actPath, "time", act.Time)
			v.requireString(actPath, "activity", act.Activity)
			v.requireString(actPath, "description", act.Description)
			v.requireString(actPath, "location", act.Location)
			if !act.Type.Valid() {
				v.addf("%s.type %q is not one of %v", actPath, act.Type, types.ActivityTypes)
			}
		}
	}

	return v.err("itinerary")
}

// ValidatePlace checks a single recommendation.
func ValidatePlace(p types.PlaceRecommendation) error {
	var v violations
	v.requireString("place", "name", p.Name)
	v.requireString("place", "type", p.Type)
	v.requireString("place", "sentimentSummary", p.SentimentSummary)
	v.requireString("place", "description", p.Description)

	if p.Rating < 0 || p.Rating > types.MaxRating {
		v.addf("place.rating %.2f is outside 0-%.0f", p.Rating, types.MaxRating)
	}
	if p.SentimentScore < 0 || p.SentimentScore > types.MaxSentimentScore {
		v.addf("place.sentimentScore %.2f is outside 0-%.0f", p.SentimentScore, types.MaxSentimentScore)
	}
	if !p.PriceLevel.Valid() {
		v.addf("place.priceLevel %q is not one of %v", p.PriceLevel, types.PriceLevels)
	}

	return v.err("place")
}
