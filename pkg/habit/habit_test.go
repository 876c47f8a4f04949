package habit

import (
	"encoding/json"
	"testing"
	"time"
)

func TestUnmarshalHabit(t *testing.T) {
	raw := `{
		"_id": "65f0c1",
		"name": "Drink water",
		"category": "health",
		"streak": 3,
		"totalCompletions": 9,
		"completedDates": ["2024-01-01T08:30:00Z", "2024-01-02T23:59:59Z"],
		"createdAt": "2023-12-20T10:00:00Z"
	}`
	var h Habit
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		t.Fatalf("unmarshal habit: %v", err)
	}
	if h.ID != "65f0c1" || h.Name != "Drink water" || h.Category != Health {
		t.Fatalf("unexpected habit: %#v", h)
	}
	if len(h.CompletedDates) != 2 {
		t.Fatalf("completedDates length = %d", len(h.CompletedDates))
	}
	if h.Streak != 3 || h.TotalCompletions != 9 {
		t.Fatalf("counters not decoded: %#v", h)
	}
}

func TestUnmarshalBadCreatedAtDegrades(t *testing.T) {
	raw := `{"_id":"x","name":"n","createdAt":"not-a-date"}`
	var h Habit
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		t.Fatalf("bad createdAt should not fail decode: %v", err)
	}
	if !h.Created.IsZero() {
		t.Fatalf("bad createdAt should decode as zero, got %v", h.Created)
	}
}

func TestCompletedOnIgnoresTimeOfDay(t *testing.T) {
	h := &Habit{CompletedDates: []Timestamp{
		{Time: time.Date(2024, time.January, 4, 23, 15, 0, 0, time.UTC)},
	}}
	morning := time.Date(2024, time.January, 4, 1, 0, 0, 0, time.UTC)
	if !h.CompletedOn(morning) {
		t.Fatal("same calendar day should match regardless of time-of-day")
	}
	nextDay := time.Date(2024, time.January, 5, 1, 0, 0, 0, time.UTC)
	if h.CompletedOn(nextDay) {
		t.Fatal("different calendar day should not match")
	}
}

func TestDayKeyNormalizesToUTC(t *testing.T) {
	east := time.FixedZone("UTC+10", 10*60*60)
	// 02:00 on Jan 5 in UTC+10 is still Jan 4 in UTC.
	local := time.Date(2024, time.January, 5, 2, 0, 0, 0, east)
	if got, want := DayKey(local), "2024-01-04"; got != want {
		t.Fatalf("DayKey = %q, want %q", got, want)
	}
}

func TestSameDay(t *testing.T) {
	ts := Timestamp{Time: time.Date(2024, time.March, 1, 0, 5, 0, 0, time.UTC)}
	if !ts.SameDay(time.Date(2024, time.March, 1, 22, 0, 0, 0, time.UTC)) {
		t.Fatal("same date should match")
	}
	if ts.SameDay(time.Date(2024, time.March, 2, 0, 5, 0, 0, time.UTC)) {
		t.Fatal("next date should not match")
	}
}

func TestCategoryFallback(t *testing.T) {
	if !Health.Known() || Category("chores").Known() {
		t.Fatal("category catalog membership wrong")
	}
	if got := Category("chores").Label(); got != "chores" {
		t.Fatalf("unknown category label = %q", got)
	}
	if got := Category("").Label(); got != "health" {
		t.Fatalf("empty category label = %q", got)
	}
	if got := Learning.Label(); got != "Learning" {
		t.Fatalf("learning label = %q", got)
	}
}
