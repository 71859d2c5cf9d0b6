package schedule

import (
	"encoding/json"
	"fmt"
)

// DaysPerWeek is the fixed length of a week. Index 0 is Monday.
const DaysPerWeek = 7

// Day holds one weekday's entries. Day always equals the day's position in the week.
type Day struct {
	Day         int     `json:"day"`
	IsOffline   bool    `json:"isOffline"`
	OfflineMemo string  `json:"offlineMemo,omitempty"`
	Entries     []Entry `json:"entries"`
}

func (d Day) clone() Day {
	d.Entries = append([]Entry(nil), d.Entries...)
	return d
}

// Week is a seven-day schedule. Every operation returns a new Week and leaves
// the receiver unchanged, so a Week value can be handed around freely. Callers
// sharing one logical week across goroutines must serialise their updates.
//
// Out-of-range day or entry indices make an operation a no-op; use ValidDay
// and ValidEntry to detect them beforehand.
type Week struct {
	days [DaysPerWeek]Day
}

// NewWeek builds the default week: seven online days, one default entry each.
func NewWeek(schema *Schema) Week {
	var w Week
	for i := range w.days {
		w.days[i] = Day{Day: i, Entries: []Entry{DefaultEntry(schema)}}
	}
	return w
}

// Days returns copies of the seven days.
func (w Week) Days() []Day {
	out := make([]Day, DaysPerWeek)
	for i, d := range w.days {
		out[i] = d.clone()
	}
	return out
}

// Day returns a copy of the day at index; ok is false when index is out of range.
func (w Week) Day(index int) (Day, bool) {
	if !w.ValidDay(index) {
		return Day{}, false
	}
	return w.days[index].clone(), true
}

func (w Week) ValidDay(day int) bool {
	return day >= 0 && day < DaysPerWeek
}

func (w Week) ValidEntry(day, entry int) bool {
	return w.ValidDay(day) && entry >= 0 && entry < len(w.days[day].Entries)
}

// SetDayOffline sets the offline flag. Entries and memo are kept.
func (w Week) SetDayOffline(day int, offline bool) Week {
	if !w.ValidDay(day) {
		return w
	}
	w.days[day].IsOffline = offline
	return w
}

// SetOfflineMemo stores the memo whether or not the day is currently offline.
func (w Week) SetOfflineMemo(day int, memo string) Week {
	if !w.ValidDay(day) {
		return w
	}
	w.days[day].OfflineMemo = memo
	return w
}

// UpdateEntryField replaces one value in one entry. Keys the entry does not
// carry are ignored so an edit can never widen an entry past its schema. v is
// coerced to the kind already stored under key.
func (w Week) UpdateEntryField(day, entry int, key string, v Value) Week {
	if !w.ValidEntry(day, entry) {
		return w
	}
	cur, ok := w.days[day].Entries[entry].Get(key)
	if !ok {
		return w
	}
	d := w.days[day].clone()
	d.Entries[entry] = d.Entries[entry].With(key, coerce(cur, v))
	w.days[day] = d
	return w
}

// coerce converts v to the kind of stored through the codec. Time values are
// always recanonicalised.
func coerce(stored, v Value) Value {
	if v.kind == stored.kind && v.kind != KindTime {
		return v
	}
	return Decode(FieldDescriptor{Kind: stored.kind}, v.String())
}

// AddEntry appends a default entry while the day holds fewer than maxPerDay
// entries. At the cap the week is returned unchanged. A cap below one counts as one.
func (w Week) AddEntry(day int, schema *Schema, maxPerDay int) Week {
	if !w.ValidDay(day) {
		return w
	}
	if maxPerDay < 1 {
		maxPerDay = 1
	}
	if len(w.days[day].Entries) >= maxPerDay {
		return w
	}
	d := w.days[day].clone()
	d.Entries = append(d.Entries, DefaultEntry(schema))
	w.days[day] = d
	return w
}

// RemoveEntry deletes one entry. Removing the last entry of a day replaces it
// with a default entry, so a day never ends up empty.
func (w Week) RemoveEntry(day, entry int, schema *Schema) Week {
	if !w.ValidEntry(day, entry) {
		return w
	}
	old := w.days[day].Entries
	d := w.days[day]
	d.Entries = make([]Entry, 0, len(old))
	d.Entries = append(d.Entries, old[:entry]...)
	d.Entries = append(d.Entries, old[entry+1:]...)
	if len(d.Entries) == 0 {
		d.Entries = append(d.Entries, DefaultEntry(schema))
	}
	w.days[day] = d
	return w
}

// Normalize conforms a week loaded from storage to schema: day numbers are
// reset to their index, entries are rebuilt field by field and empty days get
// one default entry.
func (w Week) Normalize(schema *Schema) Week {
	var out Week
	for i, d := range w.days {
		nd := Day{Day: i, IsOffline: d.IsOffline, OfflineMemo: d.OfflineMemo}
		nd.Entries = make([]Entry, 0, len(d.Entries))
		for _, e := range d.Entries {
			nd.Entries = append(nd.Entries, e.conform(schema))
		}
		if len(nd.Entries) == 0 {
			nd.Entries = append(nd.Entries, DefaultEntry(schema))
		}
		out.days[i] = nd
	}
	return out
}

// EntryCount is the total number of entries across the week.
func (w Week) EntryCount() int {
	n := 0
	for _, d := range w.days {
		n += len(d.Entries)
	}
	return n
}

func (w Week) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.days[:])
}

func (w *Week) UnmarshalJSON(data []byte) error {
	var days []Day
	if err := json.Unmarshal(data, &days); err != nil {
		return err
	}
	if len(days) != DaysPerWeek {
		return fmt.Errorf("week must have %d days, got %d", DaysPerWeek, len(days))
	}
	copy(w.days[:], days)
	return nil
}

// DecodeWeek parses a stored week and normalises it against schema.
func DecodeWeek(data []byte, schema *Schema) (Week, error) {
	var w Week
	if err := json.Unmarshal(data, &w); err != nil {
		return Week{}, fmt.Errorf("decoding week: %w", err)
	}
	return w.Normalize(schema), nil
}
