package domain

// TemplateSource tells where a template definition was loaded from.
type TemplateSource string

const (
	SourceBuiltin TemplateSource = "builtin"
	SourceFile    TemplateSource = "file"
)

// Weekday names indexed the way weeks are stored: Monday first.
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// ParseWeekday accepts a day index ("0".."6") or a weekday name prefix
// ("mon", "Tuesday"). ok is false for anything else.
func ParseWeekday(s string) (int, bool) {
	if len(s) == 1 && s[0] >= '0' && s[0] <= '6' {
		return int(s[0] - '0'), true
	}
	if len(s) < 3 {
		return 0, false
	}
	prefix := lowerASCII(s[:3])
	for i, name := range Weekdays {
		if lowerASCII(name) == prefix {
			return i, true
		}
	}
	return 0, false
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
