// Package habit defines the client-side model for habits, users, and
// their categories as the remote service reports them.
package habit

import "time"

// Category buckets a habit for presentation. Unknown values coming off
// the wire are kept as-is and fall back to the default presentation.
type Category string

const (
	Health       Category = "health"
	Learning     Category = "learning"
	Productivity Category = "productivity"
	Social       Category = "social"
)

// Categories returns the known categories in display order.
func Categories() []Category {
	return []Category{Health, Learning, Productivity, Social}
}

// Known reports whether the category is in the catalog.
func (c Category) Known() bool {
	switch c {
	case Health, Learning, Productivity, Social:
		return true
	}
	return false
}

// Label is the category's display name, for unknown values the raw
// string is shown rather than an error.
func (c Category) Label() string {
	switch c {
	case Health:
		return "Health & Fitness"
	case Learning:
		return "Learning"
	case Productivity:
		return "Productivity"
	case Social:
		return "Social"
	}
	if c == "" {
		return string(Health)
	}
	return string(c)
}

// Habit mirrors the service's habit document. Streak and completion
// counters are bookkeeping the service owns; the client never computes
// them, it only derives views from CompletedDates.
type Habit struct {
	ID               string      `json:"_id"`
	Name             string      `json:"name"`
	Category         Category    `json:"category"`
	Streak           int         `json:"streak"`
	TotalCompletions int         `json:"totalCompletions"`
	CompletedDates   []Timestamp `json:"completedDates"`
	Created          Timestamp   `json:"createdAt"`
}

// CompletedOn reports whether the habit has a completion on the given
// calendar day, regardless of time-of-day noise in the stored dates.
func (h *Habit) CompletedOn(day time.Time) bool {
	key := DayKey(day)
	for _, d := range h.CompletedDates {
		if DayKey(d.Time) == key {
			return true
		}
	}
	return false
}
