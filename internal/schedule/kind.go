package schedule

import "fmt"

// Kind identifies how a field's value is stored and edited.
type Kind int

const (
	KindText Kind = iota
	KindMultiline
	KindTime
	KindSelect
	KindNumber
	// KindBool is not authorable; it tags reserved extension values such as isGuerrilla.
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindMultiline:
		return "textarea"
	case KindTime:
		return "time"
	case KindSelect:
		return "select"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a template's kind string onto a Kind. Only authorable kinds are accepted.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "text":
		return KindText, nil
	case "textarea", "multiline":
		return KindMultiline, nil
	case "time":
		return KindTime, nil
	case "select":
		return KindSelect, nil
	case "number":
		return KindNumber, nil
	default:
		return 0, fmt.Errorf("unknown field kind %q", s)
	}
}

// MarshalText lets kinds appear as strings in JSON.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
