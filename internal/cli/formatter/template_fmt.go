package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KwakOri/Temis-sub000/internal/domain"
	"github.com/KwakOri/Temis-sub000/internal/schedule"
)

// FormatTemplateList renders the template catalogue. The # column is the
// selector accepted by commands that take a template reference.
func FormatTemplateList(templates []domain.Template) string {
	t := Table{
		Headers: []string{"#", "ID", "NAME", "FIELDS", "PER DAY", "VERSION", "SOURCE"},
		Right:   map[int]bool{0: true, 4: true},
	}
	for i, tpl := range templates {
		t.Rows = append(t.Rows, []string{
			Dim(strconv.Itoa(i + 1)),
			Bold(tpl.ID),
			tpl.Name,
			strings.Join(tpl.FieldKeys, ", "),
			strconv.Itoa(tpl.MaxPerDay),
			Dim(tpl.Version),
			SourceBadge(string(tpl.Source)),
		})
	}
	return RenderBox("Templates", t.Render())
}

// FormatTemplateShow renders a template's metadata and its field schema.
func FormatTemplateShow(tpl domain.Template, schema *schedule.Schema) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", StyleBold.Render(tpl.Name), SourceBadge(string(tpl.Source)))
	if tpl.Description != "" {
		b.WriteString(Dim(tpl.Description) + "\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render("ID       "), tpl.ID)
	fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render("VERSION  "), tpl.Version)
	fmt.Fprintf(&b, "  %s  %d\n", StyleDim.Render("PER DAY  "), tpl.MaxPerDay)
	b.WriteString("\n")
	b.WriteString(Header("Fields"))
	b.WriteString("\n")

	t := Table{Headers: []string{"KEY", "KIND", "LABEL", "DEFAULT", "RULES"}}
	for _, f := range schema.Fields() {
		t.Rows = append(t.Rows, []string{
			Bold(f.Key),
			f.Kind.String(),
			f.DisplayName(),
			formatDefault(f),
			fieldRules(f),
		})
	}
	b.WriteString(t.Render())

	return RenderBox("", b.String())
}

func formatDefault(f schedule.FieldDescriptor) string {
	v := f.Zero()
	if f.Default != nil {
		v = *f.Default
	}
	s := schedule.Encode(f, v)
	if s == "" {
		return Dim(`""`)
	}
	return s
}

func fieldRules(f schedule.FieldDescriptor) string {
	var rules []string
	if f.Required {
		rules = append(rules, "required")
	}
	if f.MaxLength > 0 {
		rules = append(rules, fmt.Sprintf("max %d", f.MaxLength))
	}
	if len(f.Options) > 0 {
		vals := make([]string, len(f.Options))
		for i, o := range f.Options {
			vals[i] = o.Value
		}
		rules = append(rules, "one of "+strings.Join(vals, "|"))
	}
	return Dim(strings.Join(rules, ", "))
}
