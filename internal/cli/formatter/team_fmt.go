package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KwakOri/Temis-sub000/internal/domain"
	"github.com/KwakOri/Temis-sub000/internal/team"
)

// FormatTeamWeek renders one member's shared week as a compact agenda.
func FormatTeamWeek(title string, w team.Week, fallback bool) string {
	var b strings.Builder
	if fallback {
		b.WriteString(StyleYellow.Render("stored week was rejected; showing an empty week") + "\n\n")
	}
	for i, d := range w {
		day := StyleHeader.Render(fmt.Sprintf("%-3s", domain.Weekdays[i]))
		switch {
		case d.IsOffline:
			fmt.Fprintf(&b, "%s  %s\n", day, OfflineBadge())
		case len(d.Entries) == 0:
			fmt.Fprintf(&b, "%s  %s\n", day, Dim("—"))
		default:
			for j, e := range d.Entries {
				label := day
				if j > 0 {
					label = "   "
				}
				line := fmt.Sprintf("%s  %s  %s", label, StyleBlue.Render(e.Time), e.MainTitle)
				if e.IsGuerrilla {
					line += "  " + GuerrillaBadge()
				}
				b.WriteString(line + "\n")
			}
		}
	}
	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}

// BoardRow is one member line of a team board.
type BoardRow struct {
	Owner    string
	Template string
	Week     team.Week
	Fallback bool
}

// FormatBoard renders a team board: one row per member, one column per day
// holding the entry count, or "off" for offline days.
func FormatBoard(teamName string, rows []BoardRow) string {
	if len(rows) == 0 {
		return RenderBox("Team "+teamName, Dim("No members have published a week yet."))
	}

	headers := []string{"MEMBER", "TEMPLATE"}
	for _, d := range domain.Weekdays {
		headers = append(headers, strings.ToUpper(d))
	}
	headers = append(headers, "TOTAL")

	right := map[int]bool{}
	for i := 2; i < len(headers); i++ {
		right[i] = true
	}
	t := Table{Headers: headers, Right: right}
	for _, r := range rows {
		owner := Bold(r.Owner)
		if r.Fallback {
			owner += " " + StyleYellow.Render("!")
		}
		row := []string{owner, Dim(r.Template)}
		for _, d := range r.Week {
			switch {
			case d.IsOffline:
				row = append(row, StyleRed.Render("off"))
			case len(d.Entries) == 0:
				row = append(row, Dim("·"))
			default:
				row = append(row, strconv.Itoa(len(d.Entries)))
			}
		}
		row = append(row, StyleBold.Render(strconv.Itoa(r.Week.EntryCount())))
		t.Rows = append(t.Rows, row)
	}
	return RenderBox("Team "+teamName, t.Render())
}
