package habit

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const layoutISO = "2006-01-02"

// ParseTime accepts the timestamp shapes the service is known to send.
func ParseTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(layoutISO, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// DayKey normalizes a timestamp to its UTC calendar date. Every date
// equality check in the client goes through this one function so the
// today check and the history bitmap can never disagree on what a day is.
func DayKey(t time.Time) string {
	return t.UTC().Format(layoutISO)
}

type Timestamp struct {
	time.Time
}

// SameDay reports whether both timestamps fall on the same calendar
// date, ignoring time-of-day.
func (t Timestamp) SameDay(then time.Time) bool {
	return DayKey(t.Time) == DayKey(then)
}

func (t *Timestamp) MarshalJSON() ([]byte, error) {
	if t == nil || t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t)), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if strings.TrimSpace(timestamp) == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTime(timestamp)
	if err != nil {
		// Unparseable timestamps degrade to zero rather than rejecting
		// the whole payload; the metrics layer substitutes a default.
		t.Time = time.Time{}
		return nil
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}
