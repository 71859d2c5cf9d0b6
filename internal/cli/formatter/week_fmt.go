package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KwakOri/Temis-sub000/internal/domain"
	"github.com/KwakOri/Temis-sub000/internal/schedule"
)

const cellWidth = 32

// FormatWeek renders an owner's week day by day, one table row per entry.
// Entry numbers are 1-based, matching the CLI arguments.
func FormatWeek(title string, schema *schedule.Schema, w schedule.Week) string {
	var b strings.Builder
	for i, d := range w.Days() {
		b.WriteString(renderDay(schema, i, d))
		if i < schedule.DaysPerWeek-1 {
			b.WriteString("\n")
		}
	}

	summary := fmt.Sprintf("%s across the week", Plural(w.EntryCount(), "entry", "entries"))
	return RenderBox(title, b.String()+"\n"+Dim(summary))
}

// FormatDay renders a single day of a week.
func FormatDay(title string, schema *schedule.Schema, index int, d schedule.Day) string {
	return RenderBox(title, strings.TrimRight(renderDay(schema, index, d), "\n"))
}

func renderDay(schema *schedule.Schema, index int, d schedule.Day) string {
	fields := schema.Fields()
	headers := make([]string, 0, len(fields)+1)
	headers = append(headers, "#")
	for _, f := range fields {
		headers = append(headers, strings.ToUpper(f.DisplayName()))
	}

	var b strings.Builder
	line := StyleHeader.Render(domain.Weekdays[index])
	if d.IsOffline {
		line += "  " + OfflineBadge()
	}
	if d.OfflineMemo != "" {
		line += "  " + Dim(d.OfflineMemo)
	}
	b.WriteString(line + "\n")

	t := Table{Headers: headers, Right: map[int]bool{0: true}}
	for j, e := range d.Entries {
		row := make([]string, 0, len(headers))
		row = append(row, Dim(strconv.Itoa(j+1)))
		for _, f := range fields {
			row = append(row, formatCell(f, e))
		}
		t.Rows = append(t.Rows, row)
	}
	b.WriteString(indent(t.Render(), "  "))
	return b.String()
}

func formatCell(f schedule.FieldDescriptor, e schedule.Entry) string {
	v, ok := e.Get(f.Key)
	if !ok {
		return ""
	}
	if f.Kind == schedule.KindBool {
		if v.Bool() {
			return StyleGreen.Render("yes")
		}
		return Dim("no")
	}
	return Ellipsize(OneLine(schedule.Encode(f, v)), cellWidth)
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}
