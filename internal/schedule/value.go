package schedule

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is a kind-tagged field value. The zero Value is an empty text value.
//
// Text, multiline and select fields all store KindText values; time fields store
// KindTime values that are always in canonical HH:MM form.
type Value struct {
	kind Kind
	s    string
	n    int
	b    bool
}

func Text(s string) Value { return Value{kind: KindText, s: s} }

func Number(n int) Value { return Value{kind: KindNumber, n: n} }

// Time canonicalises s before storing it.
func Time(s string) Value { return Value{kind: KindTime, s: CanonicalTime(s)} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind reports the storage kind of the value.
func (v Value) Kind() Kind { return v.kind }

// String renders the value the way an input control would show it.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.Itoa(v.n)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

// Int returns the numeric payload, or 0 for non-number values.
func (v Value) Int() int {
	if v.kind != KindNumber {
		return 0
	}
	return v.n
}

// Bool returns the boolean payload, or false for non-bool values.
func (v Value) Bool() bool {
	if v.kind != KindBool {
		return false
	}
	return v.b
}

// IsZero reports whether the value is the zero of its own kind.
func (v Value) IsZero() bool {
	switch v.kind {
	case KindNumber:
		return v.n == 0
	case KindBool:
		return !v.b
	default:
		return v.s == ""
	}
}

// storesAs reports the value kind a field of kind k holds.
func storesAs(k Kind) Kind {
	switch k {
	case KindText, KindMultiline, KindSelect:
		return KindText
	case KindTime:
		return KindTime
	case KindNumber:
		return KindNumber
	case KindBool:
		return KindBool
	default:
		return KindText
	}
}

// fits reports whether v can be stored in a field of kind k without conversion.
func fits(k Kind, v Value) bool {
	return storesAs(k) == v.kind
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.n)
	case KindBool:
		return json.Marshal(v.b)
	default:
		return json.Marshal(v.s)
	}
}

// UnmarshalJSON accepts a bare string, number or boolean. Strings decode as
// text; time fields are re-tagged when a week is normalised against its schema.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := valueFromAny(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

func valueFromAny(raw any) (Value, error) {
	switch x := raw.(type) {
	case string:
		return Text(x), nil
	case float64:
		return Number(int(x)), nil
	case bool:
		return Bool(x), nil
	case nil:
		return Text(""), nil
	default:
		return Value{}, fmt.Errorf("unsupported field value of type %T", raw)
	}
}
