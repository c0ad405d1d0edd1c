package types

import (
	"strings"

	a "github.com/petar-dambovaliev/aho-corasick"
)

// PlaceCategory is the kind of place searched for on the explore screen.
type PlaceCategory string

const (
	CategoryHotel      PlaceCategory = "hotel"
	CategoryRestaurant PlaceCategory = "restaurant"
	CategoryAttraction PlaceCategory = "attraction"
)

// Aho-Corasick matcher for free-text categories ("hotels", "somewhere to eat", "museums")
var (
	categoryMatcherBuilder = a.NewAhoCorasickBuilder(a.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  true,
		MatchKind:            a.LeftMostLongestMatch,
	})

	categoryMatcher = categoryMatcherBuilder.Build([]string{
		// Hotel keywords
		"hotel", "hotels", "hostel", "hostels", "accommodation", "stay", "sleep",
		"lodging", "resort", "resorts", "guesthouse", "guesthouses", "airbnb",
		// Restaurant keywords
		"restaurant", "restaurants", "food", "eat", "dine", "dining", "cafe", "cafes",
		"bar", "bars", "lunch", "dinner", "breakfast", "brunch", "cuisine",
		// Attraction keywords
		"attraction", "attractions", "sight", "sights", "sightseeing", "museum", "museums",
		"park", "parks", "landmark", "landmarks", "tour", "tours", "activity", "activities",
	})

	keywordToCategory = map[string]PlaceCategory{
		"hotel": CategoryHotel, "hotels": CategoryHotel,
		"hostel": CategoryHotel, "hostels": CategoryHotel,
		"accommodation": CategoryHotel, "stay": CategoryHotel,
		"sleep": CategoryHotel, "lodging": CategoryHotel,
		"resort": CategoryHotel, "resorts": CategoryHotel,
		"guesthouse": CategoryHotel, "guesthouses": CategoryHotel,
		"airbnb": CategoryHotel,

		"restaurant": CategoryRestaurant, "restaurants": CategoryRestaurant,
		"food": CategoryRestaurant, "eat": CategoryRestaurant,
		"dine": CategoryRestaurant, "dining": CategoryRestaurant,
		"cafe": CategoryRestaurant, "cafes": CategoryRestaurant,
		"bar": CategoryRestaurant, "bars": CategoryRestaurant,
		"lunch": CategoryRestaurant, "dinner": CategoryRestaurant,
		"breakfast": CategoryRestaurant, "brunch": CategoryRestaurant,
		"cuisine": CategoryRestaurant,

		"attraction": CategoryAttraction, "attractions": CategoryAttraction,
		"sight": CategoryAttraction, "sights": CategoryAttraction,
		"sightseeing": CategoryAttraction, "museum": CategoryAttraction,
		"museums": CategoryAttraction, "park": CategoryAttraction,
		"parks": CategoryAttraction, "landmark": CategoryAttraction,
		"landmarks": CategoryAttraction, "tour": CategoryAttraction,
		"tours": CategoryAttraction, "activity": CategoryAttraction,
		"activities": CategoryAttraction,
	}
)

// ParseCategory maps free text onto one of the three searchable categories.
// The first keyword found wins; text without any keyword falls back to
// restaurants, the default selection of the explore screen.
func ParseCategory(s string) PlaceCategory {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryRestaurant
	}

	for _, match := range categoryMatcher.FindAll(s) {
		if category, ok := keywordToCategory[s[match.Start():match.End()]]; ok {
			return category
		}
	}
	return CategoryRestaurant
}
