package presenter

import (
	"time"

	v1 "github.com/FACorreiaa/roammate-api/internal/api/roammatev1"
	"github.com/FACorreiaa/roammate-api/internal/domain/session"
	"github.com/FACorreiaa/roammate-api/internal/types"
)

// ToSessionState maps a session snapshot to its wire form.
func ToSessionState(s session.Snapshot) *v1.SessionState {
	return &v1.SessionState{
		SessionId:        s.SessionID,
		View:             string(s.View),
		Itinerary:        ToItinerary(s.Itinerary),
		HasItinerary:     s.HasItinerary,
		ItineraryLoading: s.ItineraryLoading,
		Notice:           s.Notice,
		Places:           ToPlaceRecommendations(s.Places),
		PlacesLocation:   s.PlacesLocation,
		PlacesCategory:   string(s.PlacesCategory),
		PlacesLoading:    s.PlacesLoading,
		Chat:             ToChatMessages(s.Chat),
		ChatOpen:         s.ChatOpen,
		ChatTyping:       s.ChatTyping,
	}
}

func ToItinerary(it *types.Itinerary) *v1.Itinerary {
	if it == nil {
		return nil
	}
	days := make([]*v1.DayPlan, 0, len(it.Days))
	for _, d := range it.Days {
		activities := make([]*v1.Activity, 0, len(d.Activities))
		for _, a := range d.Activities {
			activities = append(activities, &v1.Activity{
				Time:          a.Time,
				Activity:      a.Activity,
				Description:   a.Description,
				Location:      a.Location,
				Type:          string(a.Type),
				EstimatedCost: a.EstimatedCost,
			})
		}
		days = append(days, &v1.DayPlan{
			Day:        int32(d.Day),
			Theme:      d.Theme,
			Activities: activities,
		})
	}
	return &v1.Itinerary{
		Destination: it.Destination,
		Summary:     it.Summary,
		Days:        days,
	}
}

func ToPlaceRecommendations(items []types.PlaceRecommendation) []*v1.PlaceRecommendation {
	out := make([]*v1.PlaceRecommendation, 0, len(items))
	for _, p := range items {
		out = append(out, &v1.PlaceRecommendation{
			Name:             p.Name,
			Type:             p.Type,
			Rating:           p.Rating,
			SentimentScore:   p.SentimentScore,
			SentimentSummary: p.SentimentSummary,
			PriceLevel:       string(p.PriceLevel),
			Description:      p.Description,
			BookingLink:      p.BookingLink,
		})
	}
	return out
}

func ToChatMessages(items []types.ChatMessage) []*v1.ChatMessage {
	out := make([]*v1.ChatMessage, 0, len(items))
	for _, m := range items {
		out = append(out, &v1.ChatMessage{
			Role:      string(m.Role),
			Text:      m.Text,
			Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
		})
	}
	return out
}
