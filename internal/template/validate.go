package template

import (
	"fmt"

	"github.com/KwakOri/Temis-sub000/internal/schedule"
)

// ValidateSchema checks a TemplateSchema for structural errors.
// Returns a slice of errors (empty if valid). Field-level rules that the
// schedule package owns (duplicate keys, select options) are checked again
// when the template is compiled.
func ValidateSchema(schema *TemplateSchema) []error {
	var errs []error

	if schema.ID == "" {
		errs = append(errs, fmt.Errorf("template id is required"))
	}
	if schema.Name == "" {
		errs = append(errs, fmt.Errorf("template name is required"))
	}
	if schema.MaxPerDay != nil && *schema.MaxPerDay < 1 {
		errs = append(errs, fmt.Errorf("maxPerDay must be at least 1, got %d", *schema.MaxPerDay))
	}
	if len(schema.Fields) == 0 {
		errs = append(errs, fmt.Errorf("at least one field is required"))
	}

	keys := map[string]bool{}
	for i, f := range schema.Fields {
		if f.Key == "" {
			errs = append(errs, fmt.Errorf("field[%d]: key is required", i))
		} else if keys[f.Key] {
			errs = append(errs, fmt.Errorf("field[%d]: duplicate key %q", i, f.Key))
		}
		keys[f.Key] = true

		if f.Kind == "" {
			errs = append(errs, fmt.Errorf("field[%d]: kind is required", i))
		} else if _, err := schedule.ParseKind(f.Kind); err != nil {
			errs = append(errs, fmt.Errorf("field[%d]: %w", i, err))
		}
		if f.Kind == "select" && len(f.Options) == 0 {
			errs = append(errs, fmt.Errorf("field[%d]: select field %q needs options", i, f.Key))
		}
		for j, o := range f.Options {
			if o.Value == "" {
				errs = append(errs, fmt.Errorf("field[%d].options[%d]: value is required", i, j))
			}
		}
	}

	for i, flag := range schema.Flags {
		if flag == "" {
			errs = append(errs, fmt.Errorf("flag[%d]: name is required", i))
		} else if keys[flag] {
			errs = append(errs, fmt.Errorf("flag[%d]: %q collides with another key", i, flag))
		}
		keys[flag] = true
	}

	return errs
}
