package schedule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEntry_HasEveryField(t *testing.T) {
	s, err := NewSchema(
		FieldDescriptor{Key: "time", Kind: KindTime},
		FieldDescriptor{Key: "title", Kind: KindText},
		FieldDescriptor{Key: "memo", Kind: KindMultiline},
		FieldDescriptor{Key: "category", Kind: KindSelect, Options: []Option{{Value: "game"}}},
		FieldDescriptor{Key: "minutes", Kind: KindNumber},
		FieldDescriptor{Key: "slot", Kind: KindNumber, Default: ptrValue(Number(2))},
		FieldDescriptor{Key: "isGuerrilla", Kind: KindBool},
	)
	require.NoError(t, err)

	e := DefaultEntry(s)
	assert.Equal(t, s.Len(), e.Len())
	assert.Equal(t, s.Keys(), e.Keys())

	want := map[string]Value{
		"time":        Time("09:00"),
		"title":       Text(""),
		"memo":        Text(""),
		"category":    Text(""),
		"minutes":     Number(0),
		"slot":        Number(2),
		"isGuerrilla": Bool(false),
	}
	for k, v := range want {
		got, ok := e.Get(k)
		require.True(t, ok, k)
		assert.Equal(t, v, got, k)
	}
}

func TestEntry_WithIsCopyOnWrite(t *testing.T) {
	e := DefaultEntry(topicSchema(t))
	changed := e.With("topic", Text("Q&A"))

	assert.Equal(t, "", e.Text("topic"))
	assert.Equal(t, "Q&A", changed.Text("topic"))
	assert.Equal(t, e.Keys(), changed.Keys())
}

func TestNewWeek_SevenDaysOneEntryEach(t *testing.T) {
	s := topicSchema(t)
	w := NewWeek(s)

	days := w.Days()
	require.Len(t, days, DaysPerWeek)
	for i, d := range days {
		assert.Equal(t, i, d.Day)
		assert.False(t, d.IsOffline)
		require.Len(t, d.Entries, 1)
		assert.Equal(t, DefaultEntry(s), d.Entries[0])
	}
}

func TestWeek_SetDayOffline(t *testing.T) {
	s := topicSchema(t)
	w := NewWeek(s).SetOfflineMemo(2, "holiday")
	off := w.SetDayOffline(2, true)

	d, _ := off.Day(2)
	assert.True(t, d.IsOffline)
	assert.Equal(t, "holiday", d.OfflineMemo)
	assert.Len(t, d.Entries, 1)

	orig, _ := w.Day(2)
	assert.False(t, orig.IsOffline, "receiver must not change")
}

func TestWeek_SetOfflineMemoOnOnlineDay(t *testing.T) {
	w := NewWeek(topicSchema(t)).SetOfflineMemo(0, "note")
	d, _ := w.Day(0)
	assert.False(t, d.IsOffline)
	assert.Equal(t, "note", d.OfflineMemo)
}

func TestWeek_UpdateEntryField(t *testing.T) {
	s := topicSchema(t)
	w := NewWeek(s)
	updated := w.UpdateEntryField(3, 0, "topic", Text("Q&A"))

	d, _ := updated.Day(3)
	assert.Equal(t, "Q&A", d.Entries[0].Text("topic"))
	orig, _ := w.Day(3)
	assert.Equal(t, "", orig.Entries[0].Text("topic"))

	same := w.UpdateEntryField(3, 0, "undeclared", Text("x"))
	assert.Equal(t, w, same)
}

func TestWeek_UpdateEntryFieldKeepsFieldKinds(t *testing.T) {
	s, err := NewSchema(
		FieldDescriptor{Key: "time", Kind: KindTime},
		FieldDescriptor{Key: "n", Kind: KindNumber},
		FieldDescriptor{Key: "title", Kind: KindText},
		FieldDescriptor{Key: "isGuerrilla", Kind: KindBool},
	)
	require.NoError(t, err)

	tests := []struct {
		name string
		key  string
		in   Value
		want Value
	}{
		{"garbage time", "time", Text("garbage"), Time("00:00")},
		{"text time", "time", Text("10:37"), Time("10:35")},
		{"text number", "n", Text("x"), Number(0)},
		{"numeric text number", "n", Text("42min"), Number(42)},
		{"number into text", "title", Number(7), Text("7")},
		{"text bool", "isGuerrilla", Text("true"), Bool(true)},
		{"number bool", "isGuerrilla", Number(3), Bool(false)},
		{"matching kind kept", "n", Number(5), Number(5)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWeek(s).UpdateEntryField(0, 0, tc.key, tc.in)
			d, _ := w.Day(0)
			got, ok := d.Entries[0].Get(tc.key)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWeek_OutOfRangeIsNoOp(t *testing.T) {
	s := topicSchema(t)
	w := NewWeek(s)

	assert.Equal(t, w, w.SetDayOffline(-1, true))
	assert.Equal(t, w, w.SetDayOffline(7, true))
	assert.Equal(t, w, w.SetOfflineMemo(9, "x"))
	assert.Equal(t, w, w.UpdateEntryField(0, 5, "topic", Text("x")))
	assert.Equal(t, w, w.UpdateEntryField(8, 0, "topic", Text("x")))
	assert.Equal(t, w, w.AddEntry(7, s, 3))
	assert.Equal(t, w, w.RemoveEntry(0, 1, s))
	assert.Equal(t, w, w.RemoveEntry(-1, 0, s))

	for i, d := range w.Days() {
		assert.Equal(t, i, d.Day)
	}
}

func TestWeek_AddEntryRespectsCap(t *testing.T) {
	s := topicSchema(t)
	w := NewWeek(s)

	w = w.AddEntry(0, s, 2)
	d, _ := w.Day(0)
	require.Len(t, d.Entries, 2)
	assert.Equal(t, DefaultEntry(s), d.Entries[1])

	capped := w.AddEntry(0, s, 2)
	assert.Equal(t, w, capped)

	for _, max := range []int{0, -3} {
		one := NewWeek(s).AddEntry(1, s, max)
		d, _ := one.Day(1)
		assert.Len(t, d.Entries, 1, "cap %d counts as one", max)
	}
}

func TestWeek_AddEntryDoesNotAliasReceiver(t *testing.T) {
	s := topicSchema(t)
	base := NewWeek(s).AddEntry(0, s, 5)
	a := base.AddEntry(0, s, 5).UpdateEntryField(0, 2, "topic", Text("A"))
	b := base.AddEntry(0, s, 5).UpdateEntryField(0, 2, "topic", Text("B"))

	da, _ := a.Day(0)
	db, _ := b.Day(0)
	assert.Equal(t, "A", da.Entries[2].Text("topic"))
	assert.Equal(t, "B", db.Entries[2].Text("topic"))
	dbase, _ := base.Day(0)
	assert.Len(t, dbase.Entries, 2)
}

func TestWeek_RemoveEntryNeverLeavesDayEmpty(t *testing.T) {
	s := topicSchema(t)
	w := NewWeek(s).UpdateEntryField(4, 0, "topic", Text("only"))

	removed := w.RemoveEntry(4, 0, s)
	d, _ := removed.Day(4)
	require.Len(t, d.Entries, 1)
	assert.Equal(t, DefaultEntry(s), d.Entries[0])

	for day := 0; day < DaysPerWeek; day++ {
		for i := 0; i < 3; i++ {
			out := w.RemoveEntry(day, i, s)
			d, _ := out.Day(day)
			assert.GreaterOrEqual(t, len(d.Entries), 1)
		}
	}
}

func TestWeek_RemoveEntryKeepsOrder(t *testing.T) {
	s := topicSchema(t)
	w := NewWeek(s).AddEntry(0, s, 3).AddEntry(0, s, 3)
	w = w.UpdateEntryField(0, 0, "topic", Text("a")).
		UpdateEntryField(0, 1, "topic", Text("b")).
		UpdateEntryField(0, 2, "topic", Text("c"))

	out := w.RemoveEntry(0, 1, s)
	d, _ := out.Day(0)
	require.Len(t, d.Entries, 2)
	assert.Equal(t, "a", d.Entries[0].Text("topic"))
	assert.Equal(t, "c", d.Entries[1].Text("topic"))

	orig, _ := w.Day(0)
	assert.Len(t, orig.Entries, 3)
	assert.Equal(t, "b", orig.Entries[1].Text("topic"))
}

func TestWeek_JSONRoundTripNormalizes(t *testing.T) {
	s := topicSchema(t)
	w := NewWeek(s).
		UpdateEntryField(0, 0, "topic", Text("Q&A")).
		SetDayOffline(6, true).
		SetOfflineMemo(6, "rest")

	data, err := json.Marshal(w)
	require.NoError(t, err)

	back, err := DecodeWeek(data, s)
	require.NoError(t, err)
	assert.Equal(t, w, back)
}

func TestDecodeWeek_RepairsStoredData(t *testing.T) {
	s := topicSchema(t)
	raw := `[
		{"day":5,"isOffline":false,"entries":[{"time":"10:37","topic":"x","legacy":"drop me"}]},
		{"day":1,"isOffline":true,"entries":[]},
		{"day":2,"isOffline":false,"entries":[{"topic":7}]},
		{"day":3,"isOffline":false,"entries":null},
		{"day":4,"isOffline":false,"entries":[]},
		{"day":5,"isOffline":false,"entries":[]},
		{"day":6,"isOffline":false,"entries":[]}
	]`
	w, err := DecodeWeek([]byte(raw), s)
	require.NoError(t, err)

	days := w.Days()
	for i, d := range days {
		assert.Equal(t, i, d.Day)
		assert.GreaterOrEqual(t, len(d.Entries), 1)
	}
	first := days[0].Entries[0]
	assert.Equal(t, s.Keys(), first.Keys())
	assert.Equal(t, "10:35", first.Text("time"))
	assert.False(t, first.Has("legacy"))
	assert.Equal(t, "09:00", days[2].Entries[0].Text("time"))
	assert.Equal(t, "7", days[2].Entries[0].Text("topic"))
	assert.True(t, days[1].IsOffline)
}

func TestDecodeWeek_RejectsWrongLength(t *testing.T) {
	_, err := DecodeWeek([]byte(`[]`), topicSchema(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "7 days")

	_, err = DecodeWeek([]byte(`{`), topicSchema(t))
	assert.Error(t, err)
}
