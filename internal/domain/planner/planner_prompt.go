package planner

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/roammate-api/internal/types"
)

const (
	itinerarySystemInstruction = "You are an expert travel agent named RoamMate. Create highly personalized, logical, and exciting travel itineraries."
	chatSystemInstruction      = "You are RoamMate, a helpful and cheerful travel assistant. Keep answers concise and helpful."
)

func getItineraryPrompt(destination string, duration int, budget types.Budget, interests []string) string {
	interestList := strings.Join(interests, ", ")
	if interestList == "" {
		interestList = "general sightseeing, local experiences"
	}
	return fmt.Sprintf(`
        Create a detailed %d-day travel itinerary for %s.
        Budget: %s.
        Interests: %s.

        Include specific timings, varied activities, and practical transport advice.
        Ensure the itinerary is realistic and well-paced.
        Number the days from 1 to %d, one entry per day.
        Classify each activity type correctly as one of: food, transport, sightseeing, relaxation, accommodation.
    `, duration, destination, budget, interestList, duration)
}

func getPlacesPrompt(location string, category types.PlaceCategory) string {
	return fmt.Sprintf(`
        Find 3 top-rated %ss in %s.
        For each place, analyze online sentiment to provide a sentiment score (0-100) and a brief summary of what people say.
        Give each place a rating from 0 to 5 and a price level of Cheap, Moderate, Expensive or Luxury.
        Include an official booking or reservation link when one exists.
        Return the result as a JSON array.
    `, category, location)
}
