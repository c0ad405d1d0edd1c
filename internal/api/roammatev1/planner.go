// Package roammatev1 holds the request and response messages of the
// roammate.v1.PlannerService API.
package roammatev1

type Activity struct {
	Time          string `json:"time"`
	Activity      string `json:"activity"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	Type          string `json:"type"`
	EstimatedCost string `json:"estimatedCost,omitempty"`
}

type DayPlan struct {
	Day        int32       `json:"day"`
	Theme      string      `json:"theme"`
	Activities []*Activity `json:"activities"`
}

type Itinerary struct {
	Destination string     `json:"destination"`
	Summary     string     `json:"summary"`
	Days        []*DayPlan `json:"days"`
}

type PlaceRecommendation struct {
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	Rating           float64 `json:"rating"`
	SentimentScore   float64 `json:"sentimentScore"`
	SentimentSummary string  `json:"sentimentSummary"`
	PriceLevel       string  `json:"priceLevel"`
	Description      string  `json:"description"`
	BookingLink      string  `json:"bookingLink,omitempty"`
}

type ChatMessage struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// SessionState is the full client-visible state of a visitor's session.
type SessionState struct {
	SessionId        string     `json:"sessionId"`
	View             string     `json:"view"`
	Itinerary        *Itinerary `json:"itinerary,omitempty"`
	HasItinerary     bool       `json:"hasItinerary"`
	ItineraryLoading bool       `json:"itineraryLoading"`
	Notice           string     `json:"notice,omitempty"`

	Places         []*PlaceRecommendation `json:"places"`
	PlacesLocation string                 `json:"placesLocation,omitempty"`
	PlacesCategory string                 `json:"placesCategory,omitempty"`
	PlacesLoading  bool                   `json:"placesLoading"`

	Chat       []*ChatMessage `json:"chat"`
	ChatOpen   bool           `json:"chatOpen"`
	ChatTyping bool           `json:"chatTyping"`
}

// SessionResponse is returned by every PlannerService RPC.
type SessionResponse struct {
	State *SessionState `json:"state"`
}

func (x *SessionResponse) GetState() *SessionState {
	if x != nil {
		return x.State
	}
	return nil
}

type GetSessionRequest struct{}

type SubmitPreferencesRequest struct {
	Destination string   `json:"destination"`
	Duration    int32    `json:"duration"`
	Budget      string   `json:"budget"`
	Interests   []string `json:"interests,omitempty"`
}

func (x *SubmitPreferencesRequest) GetDestination() string {
	if x != nil {
		return x.Destination
	}
	return ""
}

func (x *SubmitPreferencesRequest) GetDuration() int32 {
	if x != nil {
		return x.Duration
	}
	return 0
}

func (x *SubmitPreferencesRequest) GetBudget() string {
	if x != nil {
		return x.Budget
	}
	return ""
}

func (x *SubmitPreferencesRequest) GetInterests() []string {
	if x != nil {
		return x.Interests
	}
	return nil
}

type SelectViewRequest struct {
	View string `json:"view"`
}

func (x *SelectViewRequest) GetView() string {
	if x != nil {
		return x.View
	}
	return ""
}

type ShowItineraryRequest struct{}

type ResetItineraryRequest struct{}

type SearchPlacesRequest struct {
	Location string `json:"location"`
	Category string `json:"category"`
}

func (x *SearchPlacesRequest) GetLocation() string {
	if x != nil {
		return x.Location
	}
	return ""
}

func (x *SearchPlacesRequest) GetCategory() string {
	if x != nil {
		return x.Category
	}
	return ""
}

type OpenChatRequest struct{}

type CloseChatRequest struct{}

type SendChatMessageRequest struct {
	Text string `json:"text"`
}

func (x *SendChatMessageRequest) GetText() string {
	if x != nil {
		return x.Text
	}
	return ""
}
