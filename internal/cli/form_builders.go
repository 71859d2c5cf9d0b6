package cli

import (
	"strings"

	"github.com/KwakOri/Temis-sub000/internal/schedule"
	"github.com/charmbracelet/huh"
)

const textareaLines = 4

// fieldInput returns the huh field for one schema field. Text-like kinds bind
// to text, bool fields bind to flag.
func fieldInput(f schedule.FieldDescriptor, text *string, flag *bool) huh.Field {
	title := f.DisplayName()
	if f.Required {
		title += " *"
	}
	validate := func(s string) error { return schedule.ValidateInput(f, s) }

	switch f.Kind {
	case schedule.KindBool:
		return huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(flag)
	case schedule.KindSelect:
		options := make([]huh.Option[string], 0, len(f.Options))
		for _, o := range f.Options {
			label := o.Label
			if label == "" {
				label = o.Value
			}
			options = append(options, huh.NewOption(label, o.Value))
		}
		return huh.NewSelect[string]().
			Title(title).
			Options(options...).
			Value(text)
	case schedule.KindMultiline:
		t := huh.NewText().
			Title(title).
			Placeholder(f.Placeholder).
			Lines(textareaLines).
			Value(text).
			Validate(validate)
		if f.MaxLength > 0 {
			t = t.CharLimit(f.MaxLength)
		}
		return t
	default:
		in := huh.NewInput().
			Title(title).
			Description(kindHint(f.Kind)).
			Placeholder(f.Placeholder).
			Value(text).
			Validate(validate)
		if f.MaxLength > 0 {
			in = in.CharLimit(f.MaxLength)
		}
		return in
	}
}

func kindHint(k schedule.Kind) string {
	switch k {
	case schedule.KindTime:
		return "HH:MM, snapped down to 5 minutes"
	case schedule.KindNumber:
		return "whole number"
	default:
		return ""
	}
}

// memoInput returns the free-text input for a day's offline memo.
func memoInput(memo *string) *huh.Input {
	return huh.NewInput().
		Title("Offline memo").
		Placeholder("Why you are off").
		Value(memo).
		Validate(func(s string) error {
			if strings.ContainsAny(s, "\n\r") {
				return errSingleLine
			}
			return nil
		})
}
