// Package metrics derives time-windowed views from a habit's sparse
// completion history. Everything here is pure: callers pass the
// reference time so results are reproducible.
package metrics

import (
	"math"
	"time"

	"tableflip.dev/habit/pkg/habit"
)

// CompletedToday reports whether the habit has a completion on the same
// calendar day as now.
func CompletedToday(h *habit.Habit, now time.Time) bool {
	return h.CompletedOn(now)
}

// LastSevenDays returns a 7-slot completion bitmap ordered oldest to
// newest; the last slot is today.
func LastSevenDays(h *habit.Habit, now time.Time) [7]bool {
	var days [7]bool
	for i := range days {
		day := now.AddDate(0, 0, -(6 - i))
		days[i] = h.CompletedOn(day)
	}
	return days
}

// CompletionRate is the habit's completions as a rounded percentage of
// the days it has existed, counting the creation day itself. The result
// is deliberately not clamped: a count exceeding the elapsed days (clock
// skew, server bookkeeping) reads as over 100%.
func CompletionRate(h *habit.Habit, now time.Time) int {
	created := h.Created.Time
	if created.IsZero() {
		created = now
	}
	days := int(math.Floor(now.Sub(created).Hours()/24)) + 1
	if days < 1 {
		days = 1
	}
	return int(math.Round(100 * float64(h.TotalCompletions) / float64(days)))
}
