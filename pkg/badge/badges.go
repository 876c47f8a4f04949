// Package badge holds the achievement catalog and the merge rules for
// badge lists arriving from the remote service.
package badge

import "encoding/json"

// ID identifies a badge in the remote catalog.
type ID string

const (
	WeekWarrior        ID = "week_warrior"
	MonthMaster        ID = "month_master"
	HabitCollector     ID = "habit_collector"
	DedicationChampion ID = "dedication_champion"
)

// Info describes how a badge is presented.
type Info struct {
	ID     ID
	Name   string
	Symbol string
}

var catalog = map[ID]Info{
	WeekWarrior:        {ID: WeekWarrior, Name: "7-Day Warrior", Symbol: "🔥"},
	MonthMaster:        {ID: MonthMaster, Name: "Month Master", Symbol: "👑"},
	HabitCollector:     {ID: HabitCollector, Name: "Habit Collector", Symbol: "⭐"},
	DedicationChampion: {ID: DedicationChampion, Name: "Dedication Champion", Symbol: "🏆"},
}

// Catalog returns the known badges in display order.
func Catalog() []Info {
	return []Info{
		catalog[WeekWarrior],
		catalog[MonthMaster],
		catalog[HabitCollector],
		catalog[DedicationChampion],
	}
}

// Info resolves the presentation for an id. Unknown ids get the generic
// fallback, never an error.
func (id ID) Info() Info {
	if info, ok := catalog[id]; ok {
		return info
	}
	return Info{ID: id, Name: "Badge", Symbol: "🎖"}
}

func (id ID) String() string {
	return string(id)
}

// Badge is one earned achievement. The service sends either a bare id
// string or an object carrying a badgeId, so the JSON boundary
// normalizes both shapes here.
type Badge struct {
	ID ID `json:"badgeId"`
}

func (b *Badge) UnmarshalJSON(data []byte) error {
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		b.ID = ID(bare)
		return nil
	}
	var obj struct {
		BadgeID string `json:"badgeId"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	b.ID = ID(obj.BadgeID)
	return nil
}

// Info resolves the presentation for the badge.
func (b Badge) Info() Info {
	return b.ID.Info()
}

// Merge appends incoming badges to existing in arrival order. The
// service only reports badges earned by the triggering action, so no
// dedup happens here.
func Merge(existing, incoming []Badge) []Badge {
	merged := make([]Badge, 0, len(existing)+len(incoming))
	merged = append(merged, existing...)
	merged = append(merged, incoming...)
	return merged
}

// MergeDedup appends like Merge but drops incoming badges whose id is
// already owned, guarding against the service resending an earned badge.
func MergeDedup(existing, incoming []Badge) []Badge {
	owned := make(map[ID]bool, len(existing))
	for _, b := range existing {
		owned[b.ID] = true
	}
	merged := make([]Badge, 0, len(existing)+len(incoming))
	merged = append(merged, existing...)
	for _, b := range incoming {
		if owned[b.ID] {
			continue
		}
		owned[b.ID] = true
		merged = append(merged, b)
	}
	return merged
}
