package team

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/KwakOri/Temis-sub000/internal/schedule"
)

// ErrInvalidShape marks a payload that is not a team week.
var ErrInvalidShape = errors.New("invalid team week")

// ValidateWeek checks that v, a value decoded from JSON into interface{}
// (slices, maps, float64, bool, string), has the team week shape. It returns
// every problem found; an empty result means the value is acceptable.
//
// Typed values (Week, []Day, json.RawMessage, []byte) are converted to their
// generic JSON form first.
func ValidateWeek(v any) []error {
	generic, err := toGeneric(v)
	if err != nil {
		return []error{err}
	}

	days, ok := generic.([]any)
	if !ok {
		return []error{fmt.Errorf("week: expected array, got %s", typeName(generic))}
	}
	if len(days) != schedule.DaysPerWeek {
		return []error{fmt.Errorf("week: expected %d days, got %d", schedule.DaysPerWeek, len(days))}
	}

	var errs []error
	for i, raw := range days {
		errs = append(errs, validateDay(i, raw)...)
	}
	return errs
}

// IsValidWeek reports whether v has the team week shape. There is no partial
// acceptance: one bad entry rejects the whole value.
func IsValidWeek(v any) bool {
	return len(ValidateWeek(v)) == 0
}

// Decode validates data and, only if it is a team week, converts it. Callers
// substitute DefaultWeek when an error is returned.
//
// The week is built from the same tree the validator checked, so keys that
// differ only in case from the validated ones never reach the result.
func Decode(data []byte) (Week, error) {
	generic, err := decodeGeneric(data)
	if err != nil {
		return Week{}, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}
	if errs := ValidateWeek(generic); len(errs) > 0 {
		return Week{}, fmt.Errorf("%w: %w", ErrInvalidShape, errors.Join(errs...))
	}
	return fromGeneric(generic.([]any)), nil
}

// fromGeneric converts a tree that passed ValidateWeek.
func fromGeneric(days []any) Week {
	var w Week
	for i, raw := range days {
		day := raw.(map[string]any)
		entries := day["entries"].([]any)
		d := Day{Day: i, IsOffline: day["isOffline"].(bool), Entries: make([]Entry, 0, len(entries))}
		for _, re := range entries {
			e := re.(map[string]any)
			d.Entries = append(d.Entries, Entry{
				Time:        e["time"].(string),
				MainTitle:   e["mainTitle"].(string),
				IsGuerrilla: e["isGuerrilla"].(bool),
			})
		}
		w[i] = d
	}
	return w
}

func validateDay(i int, raw any) []error {
	prefix := fmt.Sprintf("[%d]", i)
	day, ok := raw.(map[string]any)
	if !ok {
		return []error{fmt.Errorf("%s: expected object, got %s", prefix, typeName(raw))}
	}

	var errs []error
	if n, ok := intValue(day["day"]); !ok {
		errs = append(errs, fmt.Errorf("%s.day: expected integer, got %s", prefix, typeName(day["day"])))
	} else if n != i {
		errs = append(errs, fmt.Errorf("%s.day: expected %d, got %d", prefix, i, n))
	}
	if _, ok := day["isOffline"].(bool); !ok {
		errs = append(errs, fmt.Errorf("%s.isOffline: expected boolean, got %s", prefix, typeName(day["isOffline"])))
	}

	entries, ok := day["entries"].([]any)
	if !ok {
		errs = append(errs, fmt.Errorf("%s.entries: expected array, got %s", prefix, typeName(day["entries"])))
		return errs
	}
	for j, e := range entries {
		errs = append(errs, validateEntry(fmt.Sprintf("%s.entries[%d]", prefix, j), e)...)
	}
	return errs
}

func validateEntry(prefix string, raw any) []error {
	entry, ok := raw.(map[string]any)
	if !ok {
		return []error{fmt.Errorf("%s: expected object, got %s", prefix, typeName(raw))}
	}
	var errs []error
	if _, ok := entry["time"].(string); !ok {
		errs = append(errs, fmt.Errorf("%s.time: expected string, got %s", prefix, typeName(entry["time"])))
	}
	if _, ok := entry["mainTitle"].(string); !ok {
		errs = append(errs, fmt.Errorf("%s.mainTitle: expected string, got %s", prefix, typeName(entry["mainTitle"])))
	}
	if _, ok := entry["isGuerrilla"].(bool); !ok {
		errs = append(errs, fmt.Errorf("%s.isGuerrilla: expected boolean, got %s", prefix, typeName(entry["isGuerrilla"])))
	}
	return errs
}

// toGeneric turns typed Go values into the interface{} form json.Unmarshal produces.
func toGeneric(v any) (any, error) {
	switch x := v.(type) {
	case nil, []any, map[string]any:
		return x, nil
	case json.RawMessage:
		return decodeGeneric(x)
	case []byte:
		return decodeGeneric(x)
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return nil, fmt.Errorf("week: cannot inspect %T: %v", v, err)
		}
		return decodeGeneric(data)
	}
}

func decodeGeneric(data []byte) (any, error) {
	var out any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("week: malformed JSON: %v", err)
	}
	return out, nil
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		// "0.0" and "1e0" are integers written as floats.
		f, err := n.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, false
		}
		return int(f), true
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, json.Number, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
