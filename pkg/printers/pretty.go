// Package printers renders habits, badges, and account stats for the
// terminal.
package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/habit/pkg/badge"
	"tableflip.dev/habit/pkg/habit"
	"tableflip.dev/habit/pkg/metrics"
)

type PrettyPrint struct {
	// Now overrides the reference time for derived metrics; nil means
	// the wall clock.
	Now func() time.Time
}

func (pp *PrettyPrint) now() time.Time {
	if pp.Now != nil {
		return pp.Now()
	}
	return time.Now()
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// Habits prints one row per habit with its derived metrics: today's
// state, streak, completion counters, rate, and the 7-day history.
func (pp *PrettyPrint) Habits(habits ...*habit.Habit) {
	if len(habits) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" no habits yet\n\n")
		return
	}

	now := pp.now()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", "NAME", "CATEGORY", "STREAK", "DONE", "RATE", "LAST 7 DAYS")
	for _, h := range habits {
		tbl.AddRow(
			todayMark(h, now),
			h.Name,
			string(h.Category),
			fmt.Sprintf("%d", h.Streak),
			fmt.Sprintf("%d", h.TotalCompletions),
			fmt.Sprintf("%d%%", metrics.CompletionRate(h, now)),
			historyStrip(h, now),
		)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Badges prints the earned badge list with catalog names.
func (pp *PrettyPrint) Badges(badges ...badge.Badge) {
	if len(badges) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, b := range badges {
		info := b.Info()
		tbl.AddRow(info.Symbol, info.Name, color.New(color.Faint).Sprint(info.ID))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Stats prints the account summary cards: points, active habits, badges.
func (pp *PrettyPrint) Stats(user *habit.User, habitCount, badgeCount int) {
	tbl := uitable.New()
	tbl.Separator = "  "
	if user != nil {
		tbl.AddRow(color.New(color.Faint).Sprint("signed in as"), fmt.Sprintf("%s <%s>", user.Username, user.Email))
	}
	tbl.AddRow(color.New(color.Faint).Sprint("total points"), color.New(color.FgHiYellow, color.Bold).Sprintf("%d", pointsOf(user)))
	tbl.AddRow(color.New(color.Faint).Sprint("active habits"), fmt.Sprintf("%d", habitCount))
	tbl.AddRow(color.New(color.Faint).Sprint("badges earned"), fmt.Sprintf("%d", badgeCount))
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// BadgeKey prints the badge catalog legend.
func (pp *PrettyPrint) BadgeKey() {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Badge"), bold("Id"), bold("Earned for"))
	meanings := map[badge.ID]string{
		badge.WeekWarrior:        "a 7 day streak on one habit",
		badge.MonthMaster:        "a 30 day streak on one habit",
		badge.HabitCollector:     "tracking five habits at once",
		badge.DedicationChampion: "one hundred total completions",
	}
	for _, info := range badge.Catalog() {
		tbl.AddRow(fmt.Sprintf("%s %s", info.Symbol, info.Name), string(info.ID), meanings[info.ID])
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func pointsOf(user *habit.User) int {
	if user == nil {
		return 0
	}
	return user.TotalPoints
}

func todayMark(h *habit.Habit, now time.Time) string {
	if metrics.CompletedToday(h, now) {
		return categoryColor(h.Category).Sprint("✔")
	}
	return color.New(color.Faint).Sprint("·")
}

func historyStrip(h *habit.Habit, now time.Time) string {
	var b strings.Builder
	for _, done := range metrics.LastSevenDays(h, now) {
		if done {
			b.WriteString(categoryColor(h.Category).Sprint("■"))
		} else {
			b.WriteString(color.New(color.Faint).Sprint("·"))
		}
	}
	return b.String()
}

// categoryColor follows the web client's palette; unknown categories
// use the health presentation.
func categoryColor(c habit.Category) *color.Color {
	switch c {
	case habit.Learning:
		return color.New(color.FgBlue)
	case habit.Productivity:
		return color.New(color.FgMagenta)
	case habit.Social:
		return color.New(color.FgHiMagenta)
	default:
		return color.New(color.FgGreen)
	}
}

func bold(in string) string {
	return color.New(color.Bold).Sprint(in)
}
