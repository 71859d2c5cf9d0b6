package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	maxHour    = 24
	maxMinute  = 55
	minuteStep = 5

	// DefaultTime is the value a time field takes when its descriptor has no default.
	DefaultTime = "09:00"
)

// Clock is a parsed time of day. Minutes always snap down to a multiple of five.
type Clock struct {
	Hour   int
	Minute int
}

// ParseTime reads "H:M" leniently. A missing or non-numeric part becomes 0,
// the hour is clamped to [0,24] and the minute is floored to a multiple of
// five, then clamped to [0,55].
func ParseTime(s string) Clock {
	parts := strings.Split(s, ":")
	hour := ParseNumber(parts[0])
	minute := 0
	if len(parts) > 1 {
		minute = ParseNumber(parts[1])
	}
	return Clock{Hour: hour, Minute: minute}.canonical()
}

// FormatTime renders c as zero-padded HH:MM after re-applying the clamp and snap.
func FormatTime(c Clock) string {
	c = c.canonical()
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// CanonicalTime is FormatTime(ParseTime(s)).
func CanonicalTime(s string) string {
	return FormatTime(ParseTime(s))
}

func (c Clock) canonical() Clock {
	return Clock{
		Hour:   clamp(c.Hour, 0, maxHour),
		Minute: clamp(floorTo(c.Minute, minuteStep), 0, maxMinute),
	}
}

// ParseNumber parses the leading base-10 integer of s. Anything unparsable is 0.
func ParseNumber(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// Decode converts an input control's raw string into the stored value for f.
func Decode(f FieldDescriptor, raw string) Value {
	switch f.Kind {
	case KindText, KindMultiline, KindSelect:
		return Text(raw)
	case KindTime:
		return Time(raw)
	case KindNumber:
		return Number(ParseNumber(raw))
	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return Bool(false)
		}
		return Bool(b)
	default:
		return Text(raw)
	}
}

// Encode renders v the way an input control for f expects it.
func Encode(f FieldDescriptor, v Value) string {
	if f.Kind == KindTime {
		return CanonicalTime(v.String())
	}
	return v.String()
}

// Truncate cuts s to the field's MaxLength, counted in runes. It is applied at
// input time only; stored values are never shortened retroactively.
func Truncate(f FieldDescriptor, s string) string {
	if f.MaxLength <= 0 || utf8.RuneCountInString(s) <= f.MaxLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:f.MaxLength])
}

// ValidateInput checks raw input for f before it is decoded. It reports the
// constraints an editor should surface; Decode itself never fails.
func ValidateInput(f FieldDescriptor, raw string) error {
	if f.Required && strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%s is required", f.DisplayName())
	}
	if f.MaxLength > 0 && utf8.RuneCountInString(raw) > f.MaxLength {
		return fmt.Errorf("%s must be at most %d characters", f.DisplayName(), f.MaxLength)
	}
	if f.Kind == KindSelect && raw != "" && !f.hasOption(raw) {
		return fmt.Errorf("%s: %q is not one of the allowed options", f.DisplayName(), raw)
	}
	return nil
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func floorTo(n, step int) int {
	q := n / step
	if n%step != 0 && n < 0 {
		q--
	}
	return q * step
}
