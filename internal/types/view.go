package types

import (
	"fmt"
	"strings"
)

// View selects which screen of the planner is visible.
type View string

const (
	ViewHome      View = "HOME"
	ViewItinerary View = "ITINERARY"
	ViewExplore   View = "EXPLORE"
)

func ParseView(s string) (View, error) {
	switch View(strings.ToUpper(strings.TrimSpace(s))) {
	case ViewHome:
		return ViewHome, nil
	case ViewItinerary:
		return ViewItinerary, nil
	case ViewExplore:
		return ViewExplore, nil
	}
	return "", fmt.Errorf("%w: unknown view %q", ErrInvalidInput, s)
}
