package metrics

import (
	"testing"
	"time"

	"tableflip.dev/habit/pkg/habit"
)

func ts(v string) habit.Timestamp {
	t, err := habit.ParseTime(v)
	if err != nil {
		panic(err)
	}
	return habit.Timestamp{Time: t}
}

func TestCompletedToday(t *testing.T) {
	now := time.Date(2024, time.January, 4, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		dates []habit.Timestamp
		want  bool
	}{
		{name: "no completions", want: false},
		{name: "completed this morning", dates: []habit.Timestamp{ts("2024-01-04T06:10:00Z")}, want: true},
		{name: "completed late tonight", dates: []habit.Timestamp{ts("2024-01-04T23:59:00Z")}, want: true},
		{name: "completed yesterday", dates: []habit.Timestamp{ts("2024-01-03T12:00:00Z")}, want: false},
		{name: "offset zone same utc day", dates: []habit.Timestamp{ts("2024-01-04T18:00:00-05:00")}, want: true},
		{name: "offset zone rolls to next utc day", dates: []habit.Timestamp{ts("2024-01-04T22:00:00-05:00")}, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := &habit.Habit{CompletedDates: tc.dates}
			if got := CompletedToday(h, now); got != tc.want {
				t.Fatalf("CompletedToday = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLastSevenDaysShape(t *testing.T) {
	now := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	h := &habit.Habit{CompletedDates: []habit.Timestamp{
		ts("2024-01-04T20:00:00Z"), // oldest slot, 6 days ago
		ts("2024-01-07T03:00:00Z"),
		ts("2024-01-10T01:00:00Z"), // today
	}}

	days := LastSevenDays(h, now)
	want := [7]bool{true, false, false, true, false, false, true}
	if days != want {
		t.Fatalf("bitmap = %v, want %v", days, want)
	}
	if days[6] != CompletedToday(h, now) {
		t.Fatal("last slot must agree with CompletedToday")
	}
}

func TestLastSevenDaysExcludesOutsideWindow(t *testing.T) {
	now := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	h := &habit.Habit{CompletedDates: []habit.Timestamp{
		ts("2024-01-03T12:00:00Z"), // 7 days ago, just outside
		ts("2024-01-11T12:00:00Z"), // tomorrow
	}}
	if days := LastSevenDays(h, now); days != ([7]bool{}) {
		t.Fatalf("out-of-window dates leaked into bitmap: %v", days)
	}
}

func TestCompletionRate(t *testing.T) {
	now := time.Date(2024, time.January, 4, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		created string
		total   int
		want    int
	}{
		{name: "four days three done", created: "2024-01-01T00:00:00Z", total: 3, want: 75},
		{name: "zero completions", created: "2024-01-01T00:00:00Z", total: 0, want: 0},
		{name: "created today", created: "2024-01-04T09:00:00Z", total: 1, want: 100},
		{name: "over one hundred", created: "2024-01-03T00:00:00Z", total: 5, want: 250},
		{name: "missing created defaults to now", created: "", total: 2, want: 200},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := &habit.Habit{TotalCompletions: tc.total}
			if tc.created != "" {
				h.Created = ts(tc.created)
			}
			if got := CompletionRate(h, now); got != tc.want {
				t.Fatalf("CompletionRate = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCompletionRateMonotonicInCompletions(t *testing.T) {
	now := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	created := ts("2024-01-01T00:00:00Z")
	prev := -1
	for total := 0; total <= 40; total++ {
		h := &habit.Habit{Created: created, TotalCompletions: total}
		rate := CompletionRate(h, now)
		if rate < prev {
			t.Fatalf("rate decreased: %d completions -> %d%%, previous %d%%", total, rate, prev)
		}
		prev = rate
	}
}

func TestCompletionRateFutureCreatedClampsToOneDay(t *testing.T) {
	now := time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC)
	h := &habit.Habit{Created: ts("2024-01-20T00:00:00Z"), TotalCompletions: 1}
	if got := CompletionRate(h, now); got != 100 {
		t.Fatalf("future createdAt should clamp days to 1, got %d%%", got)
	}
}
