package schedule

import (
	"encoding/json"
	"sort"
)

// Entry is one event's field values. Entries are immutable: With returns a
// modified copy and leaves the receiver untouched.
type Entry struct {
	keys   []string
	values map[string]Value
}

// DefaultEntry builds an entry holding every field of the schema at its
// default (or kind zero) value.
func DefaultEntry(schema *Schema) Entry {
	e := Entry{
		keys:   make([]string, 0, schema.Len()),
		values: make(map[string]Value, schema.Len()),
	}
	for _, f := range schema.fields {
		e.keys = append(e.keys, f.Key)
		e.values[f.Key] = f.Zero()
	}
	return e
}

// NewEntry builds an entry from explicit values, in the given key order.
func NewEntry(keys []string, values map[string]Value) Entry {
	e := Entry{
		keys:   make([]string, 0, len(keys)),
		values: make(map[string]Value, len(keys)),
	}
	for _, k := range keys {
		v, ok := values[k]
		if !ok {
			continue
		}
		if _, seen := e.values[k]; seen {
			continue
		}
		e.keys = append(e.keys, k)
		e.values[k] = v
	}
	return e
}

func (e Entry) Get(key string) (Value, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Text returns the string form of key's value, or "" when absent.
func (e Entry) Text(key string) string {
	v, ok := e.values[key]
	if !ok {
		return ""
	}
	return v.String()
}

func (e Entry) Has(key string) bool {
	_, ok := e.values[key]
	return ok
}

func (e Entry) Keys() []string {
	return append([]string(nil), e.keys...)
}

func (e Entry) Len() int { return len(e.keys) }

// With returns a copy of e with key set to v. Unknown keys are appended.
func (e Entry) With(key string, v Value) Entry {
	out := Entry{
		keys:   append([]string(nil), e.keys...),
		values: make(map[string]Value, len(e.values)+1),
	}
	for k, val := range e.values {
		out.values[k] = val
	}
	if _, ok := out.values[key]; !ok {
		out.keys = append(out.keys, key)
	}
	out.values[key] = v
	return out
}

// Map exposes the entry as plain JSON-friendly values.
func (e Entry) Map() map[string]any {
	m := make(map[string]any, len(e.values))
	for k, v := range e.values {
		switch v.Kind() {
		case KindNumber:
			m[k] = v.Int()
		case KindBool:
			m[k] = v.Bool()
		default:
			m[k] = v.String()
		}
	}
	return m
}

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(e.values)
}

// UnmarshalJSON reads a flat object. JSON objects carry no key order, so keys
// are sorted here and put back into schema order by Week.Normalize.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var values map[string]Value
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	*e = NewEntry(keys, values)
	return nil
}

// conform rebuilds e against schema: declared fields in order, values coerced
// through the codec, missing fields defaulted and undeclared keys dropped.
func (e Entry) conform(schema *Schema) Entry {
	out := Entry{
		keys:   make([]string, 0, schema.Len()),
		values: make(map[string]Value, schema.Len()),
	}
	for _, f := range schema.fields {
		out.keys = append(out.keys, f.Key)
		v, ok := e.values[f.Key]
		switch {
		case !ok:
			out.values[f.Key] = f.Zero()
		case fits(f.Kind, v) && f.Kind != KindTime:
			out.values[f.Key] = v
		default:
			out.values[f.Key] = Decode(f, v.String())
		}
	}
	return out
}
