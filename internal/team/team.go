// Package team holds the reduced, template-independent week shape used when a
// schedule is shared between owners, along with the converter that produces it
// and the validator that gates anything loaded from outside the process.
package team

import (
	"encoding/json"

	"github.com/KwakOri/Temis-sub000/internal/schedule"
)

// Entry is the only per-event data that survives sharing.
type Entry struct {
	Time        string `json:"time"`
	MainTitle   string `json:"mainTitle"`
	IsGuerrilla bool   `json:"isGuerrilla"`
}

type Day struct {
	Day       int     `json:"day"`
	IsOffline bool    `json:"isOffline"`
	Entries   []Entry `json:"entries"`
}

// Week is exactly seven index-aligned days.
type Week [schedule.DaysPerWeek]Day

// DefaultWeek is the week a caller substitutes for a rejected payload: seven
// online days without entries.
func DefaultWeek() Week {
	var w Week
	for i := range w {
		w[i] = Day{Day: i, Entries: []Entry{}}
	}
	return w
}

// EntryCount is the total number of entries across the week.
func (w Week) EntryCount() int {
	n := 0
	for _, d := range w {
		n += len(d.Entries)
	}
	return n
}

// MarshalJSON keeps empty entry lists as [] so the payload always passes validation.
func (w Week) MarshalJSON() ([]byte, error) {
	days := make([]Day, len(w))
	for i, d := range w {
		if d.Entries == nil {
			d.Entries = []Entry{}
		}
		days[i] = d
	}
	return json.Marshal(days)
}
