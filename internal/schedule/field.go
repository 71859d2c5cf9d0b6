package schedule

import (
	"errors"
	"fmt"
)

// Option is one choice of a select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldDescriptor declares one editable field of an entry.
type FieldDescriptor struct {
	Key         string
	Kind        Kind
	Label       string
	Placeholder string
	Required    bool
	MaxLength   int
	Options     []Option
	// Default, when set, is used verbatim by DefaultEntry.
	Default *Value
}

// DisplayName is the label, or the key when no label was given.
func (f FieldDescriptor) DisplayName() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Key
}

// Zero returns the value a fresh entry gets for this field.
func (f FieldDescriptor) Zero() Value {
	if f.Default != nil {
		return *f.Default
	}
	switch f.Kind {
	case KindText, KindMultiline, KindSelect:
		return Text("")
	case KindTime:
		return Time(DefaultTime)
	case KindNumber:
		return Number(0)
	case KindBool:
		return Bool(false)
	default:
		return Text("")
	}
}

func (f FieldDescriptor) hasOption(v string) bool {
	for _, o := range f.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

// Schema is an ordered, validated list of field descriptors. Build one with
// NewSchema; a Schema is never mutated after construction.
type Schema struct {
	fields []FieldDescriptor
	index  map[string]int
}

// NewSchema validates the descriptors and returns the schema. Every problem
// found is reported, joined into a single error.
func NewSchema(fields ...FieldDescriptor) (*Schema, error) {
	var errs []error
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		prefix := fmt.Sprintf("fields[%d]", i)
		if f.Key == "" {
			errs = append(errs, fmt.Errorf("%s.key is required", prefix))
		} else if _, dup := index[f.Key]; dup {
			errs = append(errs, fmt.Errorf("%s.key: duplicate key %q", prefix, f.Key))
		} else {
			index[f.Key] = i
		}
		errs = append(errs, validateDescriptor(prefix, f)...)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid field schema: %w", errors.Join(errs...))
	}

	owned := make([]FieldDescriptor, len(fields))
	for i, f := range fields {
		owned[i] = cloneDescriptor(f)
	}
	return &Schema{fields: owned, index: index}, nil
}

// MustSchema is NewSchema for static built-in schemas; it panics on error.
func MustSchema(fields ...FieldDescriptor) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func validateDescriptor(prefix string, f FieldDescriptor) []error {
	var errs []error
	switch f.Kind {
	case KindSelect:
		if len(f.Options) == 0 {
			errs = append(errs, fmt.Errorf("%s.options: select field %q needs at least one option", prefix, f.Key))
		}
	case KindText, KindMultiline, KindTime, KindNumber, KindBool:
		if len(f.Options) > 0 {
			errs = append(errs, fmt.Errorf("%s.options: only select fields take options (kind %s)", prefix, f.Kind))
		}
	default:
		errs = append(errs, fmt.Errorf("%s.kind: unknown kind %s", prefix, f.Kind))
	}
	if f.MaxLength < 0 {
		errs = append(errs, fmt.Errorf("%s.maxLength must not be negative", prefix))
	}
	if f.Default != nil && !fits(f.Kind, *f.Default) {
		errs = append(errs, fmt.Errorf("%s.default: %s value does not fit %s field", prefix, f.Default.Kind(), f.Kind))
	}
	return errs
}

func cloneDescriptor(f FieldDescriptor) FieldDescriptor {
	if f.Options != nil {
		f.Options = append([]Option(nil), f.Options...)
	}
	if f.Default != nil {
		d := *f.Default
		f.Default = &d
	}
	return f
}

// Fields returns a copy of the descriptors in declaration order.
func (s *Schema) Fields() []FieldDescriptor {
	out := make([]FieldDescriptor, len(s.fields))
	for i, f := range s.fields {
		out[i] = cloneDescriptor(f)
	}
	return out
}

// Field looks a descriptor up by key.
func (s *Schema) Field(key string) (FieldDescriptor, bool) {
	i, ok := s.index[key]
	if !ok {
		return FieldDescriptor{}, false
	}
	return cloneDescriptor(s.fields[i]), true
}

// Keys returns the declared keys in order.
func (s *Schema) Keys() []string {
	keys := make([]string, len(s.fields))
	for i, f := range s.fields {
		keys[i] = f.Key
	}
	return keys
}

func (s *Schema) Len() int { return len(s.fields) }

// TimeKey is the key of the first time field; the team converter reads event times from it.
func (s *Schema) TimeKey() (string, bool) {
	for _, f := range s.fields {
		if f.Kind == KindTime {
			return f.Key, true
		}
	}
	return "", false
}

// DecodeField converts raw input for key through the codec, applying the
// field's MaxLength. ok is false when the schema does not declare key.
func (s *Schema) DecodeField(key, raw string) (v Value, ok bool) {
	f, ok := s.Field(key)
	if !ok {
		return Value{}, false
	}
	return Decode(f, Truncate(f, raw)), true
}
