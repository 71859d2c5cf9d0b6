package team

import (
	"github.com/KwakOri/Temis-sub000/internal/domain"
	"github.com/KwakOri/Temis-sub000/internal/schedule"
)

const (
	fallbackTimeKey = "time"
	guerrillaKey    = "isGuerrilla"
)

// titleKeys is the order in which headline fields are tried. Templates name
// their headline differently; the first non-empty one wins.
var titleKeys = []string{"mainTitle", "title", "subject", "content"}

// ToTeamWeek reduces a rich week to the shared shape. Entries whose time or
// title resolves to "" are dropped; offline memos and all other fields are
// not carried. The result shares no memory with week.
func ToTeamWeek(week schedule.Week, schema *schedule.Schema) Week {
	timeKey, ok := schema.TimeKey()
	if !ok {
		timeKey = fallbackTimeKey
	}

	var out Week
	for i, d := range week.Days() {
		td := Day{Day: i, IsOffline: d.IsOffline, Entries: make([]Entry, 0, len(d.Entries))}
		for _, e := range d.Entries {
			te, keep := toTeamEntry(e, timeKey)
			if !keep {
				continue
			}
			td.Entries = append(td.Entries, te)
		}
		out[i] = td
	}
	return out
}

func toTeamEntry(e schedule.Entry, timeKey string) (Entry, bool) {
	titles := make([]string, len(titleKeys))
	for i, k := range titleKeys {
		titles[i] = e.Text(k)
	}
	te := Entry{
		Time:      resolveTime(e, timeKey),
		MainTitle: domain.CoalesceStr(titles...),
	}
	if v, ok := e.Get(guerrillaKey); ok && v.Kind() == schedule.KindBool {
		te.IsGuerrilla = v.Bool()
	}
	if te.Time == "" || te.MainTitle == "" {
		return Entry{}, false
	}
	return te, true
}

func resolveTime(e schedule.Entry, key string) string {
	v, ok := e.Get(key)
	if !ok || v.String() == "" {
		return ""
	}
	return schedule.CanonicalTime(v.String())
}
