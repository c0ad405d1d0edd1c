package session

import (
	"slices"
	"time"

	"github.com/FACorreiaa/roammate-api/internal/types"
)

const (
	chatGreeting           = "Hi! I'm RoamMate. Ask me anything about your trip!"
	chatApology            = "Sorry, I'm having trouble connecting right now."
	itineraryFailureNotice = "Failed to generate itinerary. Please check your API Key or try again."
)

// Session is the complete UI state of one visitor. Request tokens guard the
// three asynchronous slots: a result is committed only while its token is
// still the pending one for that slot. Each pending token carries the time it
// was issued so a slot whose request died can be released.
type Session struct {
	ID        string           `json:"id"`
	View      types.View       `json:"view"`
	Itinerary *types.Itinerary `json:"itinerary,omitempty"`
	Notice    string           `json:"notice,omitempty"`

	Places         []types.PlaceRecommendation `json:"places"`
	PlacesLocation string                      `json:"placesLocation,omitempty"`
	PlacesCategory types.PlaceCategory         `json:"placesCategory,omitempty"`

	Chat     []types.ChatMessage `json:"chat"`
	ChatOpen bool                `json:"chatOpen"`

	NextToken        uint64 `json:"nextToken"`
	PendingItinerary uint64 `json:"pendingItinerary,omitempty"`
	PendingPlaces    uint64 `json:"pendingPlaces,omitempty"`
	PendingChat      uint64 `json:"pendingChat,omitempty"`

	PendingItinerarySince time.Time `json:"pendingItinerarySince"`
	PendingPlacesSince    time.Time `json:"pendingPlacesSince"`
	PendingChatSince      time.Time `json:"pendingChatSince"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		View:      types.ViewHome,
		Places:    []types.PlaceRecommendation{},
		Chat:      []types.ChatMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) issueToken() uint64 {
	s.NextToken++
	return s.NextToken
}

// expireAbandoned clears pending slots issued before cutoff and returns their
// names. The tokens stay burned, so a result arriving late is still dropped.
func (s *Session) expireAbandoned(cutoff time.Time) []string {
	var expired []string
	if s.PendingItinerary != 0 && s.PendingItinerarySince.Before(cutoff) {
		s.PendingItinerary = 0
		s.PendingItinerarySince = time.Time{}
		expired = append(expired, "itinerary")
	}
	if s.PendingPlaces != 0 && s.PendingPlacesSince.Before(cutoff) {
		s.PendingPlaces = 0
		s.PendingPlacesSince = time.Time{}
		expired = append(expired, "places")
	}
	if s.PendingChat != 0 && s.PendingChatSince.Before(cutoff) {
		s.PendingChat = 0
		s.PendingChatSince = time.Time{}
		expired = append(expired, "chat")
	}
	return expired
}

func (s *Session) seedChat(now time.Time) {
	if len(s.Chat) == 0 {
		s.Chat = append(s.Chat, types.ChatMessage{Role: types.RoleModel, Text: chatGreeting, Timestamp: now})
	}
}

// Snapshot is a read-only copy of a session handed to callers.
type Snapshot struct {
	SessionID        string
	View             types.View
	Itinerary        *types.Itinerary
	HasItinerary     bool
	ItineraryLoading bool
	Notice           string

	Places         []types.PlaceRecommendation
	PlacesLocation string
	PlacesCategory types.PlaceCategory
	PlacesLoading  bool

	Chat       []types.ChatMessage
	ChatOpen   bool
	ChatTyping bool
}

func (s *Session) snapshot() Snapshot {
	places := slices.Clone(s.Places)
	if places == nil {
		places = []types.PlaceRecommendation{}
	}
	chat := slices.Clone(s.Chat)
	if chat == nil {
		chat = []types.ChatMessage{}
	}
	return Snapshot{
		SessionID:        s.ID,
		View:             s.View,
		Itinerary:        s.Itinerary,
		HasItinerary:     s.Itinerary != nil,
		ItineraryLoading: s.PendingItinerary != 0,
		Notice:           s.Notice,
		Places:           places,
		PlacesLocation:   s.PlacesLocation,
		PlacesCategory:   s.PlacesCategory,
		PlacesLoading:    s.PendingPlaces != 0,
		Chat:             chat,
		ChatOpen:         s.ChatOpen,
		ChatTyping:       s.PendingChat != 0,
	}
}
