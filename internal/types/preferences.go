package types

import (
	"fmt"
	"strings"
)

const (
	MinTripDays = 1
	MaxTripDays = 14
)

// Budget is the spending level the traveller picks on the planning form.
type Budget string

const (
	BudgetShoestring Budget = "Shoestring"
	BudgetMedium     Budget = "Medium"
	BudgetHigh       Budget = "High"
	BudgetLuxury     Budget = "Luxury"
)

var budgets = []Budget{BudgetShoestring, BudgetMedium, BudgetHigh, BudgetLuxury}

// ParseBudget matches s case-insensitively against the known budget levels.
func ParseBudget(s string) (Budget, error) {
	s = strings.TrimSpace(s)
	for _, b := range budgets {
		if strings.EqualFold(s, string(b)) {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: unknown budget %q", ErrInvalidInput, s)
}

// UserPreferences is one submission of the planning form.
type UserPreferences struct {
	Destination string   `json:"destination"`
	Duration    int      `json:"duration"`
	Budget      Budget   `json:"budget"`
	Interests   []string `json:"interests"`
}

// Normalize trims the destination, validates duration and budget, and
// de-duplicates interests keeping the first occurrence of each.
func (p UserPreferences) Normalize() (UserPreferences, error) {
	out := UserPreferences{
		Destination: strings.TrimSpace(p.Destination),
		Duration:    p.Duration,
	}
	if out.Destination == "" {
		return UserPreferences{}, fmt.Errorf("%w: destination is required", ErrInvalidInput)
	}
	if p.Duration < MinTripDays || p.Duration > MaxTripDays {
		return UserPreferences{}, fmt.Errorf("%w: duration must be between %d and %d days, got %d",
			ErrInvalidInput, MinTripDays, MaxTripDays, p.Duration)
	}
	budget, err := ParseBudget(string(p.Budget))
	if err != nil {
		return UserPreferences{}, err
	}
	out.Budget = budget
	out.Interests = DedupeInterests(p.Interests)
	return out, nil
}

// DedupeInterests drops blank entries and repeated interests (case-insensitive),
// preserving the order in which they were added.
func DedupeInterests(interests []string) []string {
	seen := make(map[string]struct{}, len(interests))
	out := make([]string, 0, len(interests))
	for _, interest := range interests {
		interest = strings.TrimSpace(interest)
		if interest == "" {
			continue
		}
		key := strings.ToLower(interest)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, interest)
	}
	return out
}
