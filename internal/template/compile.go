package template

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KwakOri/Temis-sub000/internal/domain"
	"github.com/KwakOri/Temis-sub000/internal/schedule"
)

// DefaultMaxPerDay caps entries per day for templates that do not set maxPerDay.
const DefaultMaxPerDay = 3

// Compiled is a validated template: the field schema every editing session
// and converter call is given, plus the per-day entry cap.
type Compiled struct {
	ID          string
	Name        string
	Version     string
	Description string
	MaxPerDay   int
	Schema      *schedule.Schema
	Source      domain.TemplateSource

	raw *TemplateSchema
}

// Compile validates ts and builds its field schema. fallbackMax is used when
// the template leaves maxPerDay unset; values below one fall back to DefaultMaxPerDay.
func Compile(ts *TemplateSchema, fallbackMax int) (*Compiled, error) {
	if errs := ValidateSchema(ts); len(errs) > 0 {
		return nil, fmt.Errorf("template %q: %w", ts.ID, errors.Join(errs...))
	}

	fields := make([]schedule.FieldDescriptor, 0, len(ts.Fields)+len(ts.Flags))
	var errs []error
	for i, fc := range ts.Fields {
		f, err := compileField(fc)
		if err != nil {
			errs = append(errs, fmt.Errorf("field[%d]: %w", i, err))
			continue
		}
		fields = append(fields, f)
	}
	for _, flag := range ts.Flags {
		fields = append(fields, schedule.FieldDescriptor{Key: flag, Kind: schedule.KindBool})
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("template %q: %w", ts.ID, errors.Join(errs...))
	}

	schema, err := schedule.NewSchema(fields...)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", ts.ID, err)
	}

	if fallbackMax < 1 {
		fallbackMax = DefaultMaxPerDay
	}
	return &Compiled{
		ID:          ts.ID,
		Name:        ts.Name,
		Version:     ts.Version,
		Description: ts.Description,
		MaxPerDay:   domain.IntFromPtrWithDefault(fallbackMax, ts.MaxPerDay),
		Schema:      schema,
		Source:      domain.SourceFile,
		raw:         ts,
	}, nil
}

func compileField(fc FieldConfig) (schedule.FieldDescriptor, error) {
	kind, err := schedule.ParseKind(fc.Kind)
	if err != nil {
		return schedule.FieldDescriptor{}, err
	}
	f := schedule.FieldDescriptor{
		Key:         fc.Key,
		Kind:        kind,
		Label:       fc.Label,
		Placeholder: fc.Placeholder,
		Required:    fc.Required,
		MaxLength:   fc.MaxLength,
	}
	for _, o := range fc.Options {
		f.Options = append(f.Options, schedule.Option{Value: o.Value, Label: o.Label})
	}
	if def, ok, err := parseDefault(kind, fc.Default); err != nil {
		return schedule.FieldDescriptor{}, fmt.Errorf("default for %q: %w", fc.Key, err)
	} else if ok {
		f.Default = &def
	}
	return f, nil
}

// parseDefault reads a raw default (a JSON string or number) for a field of kind k.
func parseDefault(k schedule.Kind, raw json.RawMessage) (schedule.Value, bool, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return schedule.Value{}, false, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return schedule.Value{}, false, err
	}

	switch k {
	case schedule.KindNumber:
		n, ok := v.(json.Number)
		if !ok {
			return schedule.Value{}, false, fmt.Errorf("expected a number, got %s", raw)
		}
		i, err := n.Int64()
		if err != nil {
			return schedule.Value{}, false, fmt.Errorf("expected an integer, got %s", raw)
		}
		return schedule.Number(int(i)), true, nil
	case schedule.KindTime:
		s, ok := v.(string)
		if !ok {
			return schedule.Value{}, false, fmt.Errorf("expected a time string, got %s", raw)
		}
		return schedule.Time(s), true, nil
	case schedule.KindText, schedule.KindMultiline, schedule.KindSelect:
		s, ok := v.(string)
		if !ok {
			return schedule.Value{}, false, fmt.Errorf("expected a string, got %s", raw)
		}
		return schedule.Text(s), true, nil
	default:
		return schedule.Value{}, false, fmt.Errorf("kind %s takes no default", k)
	}
}

// Summary describes the template for listings.
func (c *Compiled) Summary() domain.Template {
	t := domain.Template{
		ID:          c.ID,
		Name:        c.Name,
		Version:     c.Version,
		Description: c.Description,
		MaxPerDay:   c.MaxPerDay,
		FieldKeys:   c.Schema.Keys(),
		Source:      c.Source,
	}
	if c.raw != nil {
		if data, err := json.MarshalIndent(c.raw, "", "  "); err == nil {
			t.ConfigJSON = string(data)
		}
	}
	return t
}
