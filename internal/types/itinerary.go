package types

// ActivityType classifies a scheduled activity.
type ActivityType string

const (
	ActivityFood          ActivityType = "food"
	ActivityTransport     ActivityType = "transport"
	ActivitySightseeing   ActivityType = "sightseeing"
	ActivityRelaxation    ActivityType = "relaxation"
	ActivityAccommodation ActivityType = "accommodation"
)

// ActivityTypes lists every accepted activity type in schema order.
var ActivityTypes = []ActivityType{
	ActivityFood,
	ActivityTransport,
	ActivitySightseeing,
	ActivityRelaxation,
	ActivityAccommodation,
}

func (t ActivityType) Valid() bool {
	for _, v := range ActivityTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Activity is a single scheduled event within a day. Time is free text
// ("09:00", "Morning") and is not parsed.
type Activity struct {
	Time          string       `json:"time"`
	Activity      string       `json:"activity"`
	Description   string       `json:"description"`
	Location      string       `json:"location"`
	Type          ActivityType `json:"type"`
	EstimatedCost string       `json:"estimatedCost,omitempty"`
}

// DayPlan groups the activities of one themed day.
type DayPlan struct {
	Day        int        `json:"day"`
	Theme      string     `json:"theme"`
	Activities []Activity `json:"activities"`
}

// Itinerary is a destination-scoped, multi-day travel plan.
type Itinerary struct {
	Destination string    `json:"destination"`
	Summary     string    `json:"summary"`
	Days        []DayPlan `json:"days"`
}
