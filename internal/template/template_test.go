package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KwakOri/Temis-sub000/internal/domain"
	"github.com/KwakOri/Temis-sub000/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrInt(i int) *int { return &i }

func validTemplate() *TemplateSchema {
	return &TemplateSchema{
		ID:   "test_template",
		Name: "Test Template",
		Fields: []FieldConfig{
			{Key: "time", Kind: "time", Default: []byte(`"9:07"`)},
			{Key: "title", Kind: "text", MaxLength: 20},
			{Key: "minutes", Kind: "number", Default: []byte(`45`)},
			{Key: "category", Kind: "select", Options: []OptionConfig{{Value: "game", Label: "Game"}}},
		},
		Flags: []string{"isGuerrilla"},
	}
}

func TestLoadSchema(t *testing.T) {
	dir := t.TempDir()

	validPath := filepath.Join(dir, "valid.json")
	require.NoError(t, os.WriteFile(validPath, []byte(`{
  "id":"test_template",
  "name":"Test Template",
  "version":"1.0.0",
  "fields":[{"key":"time","kind":"time"}]
}`), 0o644))

	schema, err := LoadSchema(validPath)
	require.NoError(t, err)
	assert.Equal(t, "test_template", schema.ID)
	assert.Equal(t, "Test Template", schema.Name)

	invalidPath := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalidPath, []byte(`{"id":"broken"`), 0o644))

	_, err = LoadSchema(invalidPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing template")

	_, err = LoadSchema(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestValidateSchema_Valid(t *testing.T) {
	assert.Empty(t, ValidateSchema(validTemplate()))
}

func TestValidateSchema_MissingRequiredFields(t *testing.T) {
	errs := ValidateSchema(&TemplateSchema{MaxPerDay: ptrInt(0)})

	errMsgs := make([]string, len(errs))
	for i, e := range errs {
		errMsgs[i] = e.Error()
	}
	assert.Contains(t, errMsgs, "template id is required")
	assert.Contains(t, errMsgs, "template name is required")
	assert.Contains(t, errMsgs, "at least one field is required")
	assert.Contains(t, errMsgs, "maxPerDay must be at least 1, got 0")
}

func TestValidateSchema_FieldProblems(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *TemplateSchema)
		wantMsg string
	}{
		{"duplicate key", func(s *TemplateSchema) { s.Fields[1].Key = "time" }, `duplicate key "time"`},
		{"missing key", func(s *TemplateSchema) { s.Fields[1].Key = "" }, "key is required"},
		{"missing kind", func(s *TemplateSchema) { s.Fields[1].Kind = "" }, "kind is required"},
		{"unknown kind", func(s *TemplateSchema) { s.Fields[1].Kind = "color" }, `unknown field kind "color"`},
		{"select without options", func(s *TemplateSchema) { s.Fields[3].Options = nil }, "needs options"},
		{"empty option value", func(s *TemplateSchema) { s.Fields[3].Options[0].Value = "" }, "value is required"},
		{"flag collides", func(s *TemplateSchema) { s.Flags = []string{"title"} }, "collides"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validTemplate()
			tc.mutate(s)
			errs := ValidateSchema(s)
			require.NotEmpty(t, errs)
			found := false
			for _, e := range errs {
				if strings.Contains(e.Error(), tc.wantMsg) {
					found = true
				}
			}
			assert.True(t, found, "want %q in %v", tc.wantMsg, errs)
		})
	}
}

func TestCompile(t *testing.T) {
	c, err := Compile(validTemplate(), 0)
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxPerDay, c.MaxPerDay)
	assert.Equal(t, []string{"time", "title", "minutes", "category", "isGuerrilla"}, c.Schema.Keys())

	e := schedule.DefaultEntry(c.Schema)
	assert.Equal(t, "09:05", e.Text("time"))
	minutes, _ := e.Get("minutes")
	assert.Equal(t, 45, minutes.Int())
	flag, _ := e.Get("isGuerrilla")
	assert.Equal(t, schedule.KindBool, flag.Kind())
	assert.False(t, flag.Bool())

	withMax := validTemplate()
	withMax.MaxPerDay = ptrInt(5)
	c, err = Compile(withMax, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, c.MaxPerDay)

	c, err = Compile(validTemplate(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, c.MaxPerDay)
}

func TestCompile_BadDefaults(t *testing.T) {
	tests := []struct {
		name    string
		field   FieldConfig
		wantMsg string
	}{
		{"number from string", FieldConfig{Key: "n", Kind: "number", Default: []byte(`"ten"`)}, "expected a number"},
		{"fractional number", FieldConfig{Key: "n", Kind: "number", Default: []byte(`1.5`)}, "expected an integer"},
		{"time from number", FieldConfig{Key: "t", Kind: "time", Default: []byte(`900`)}, "expected a time string"},
		{"text from bool", FieldConfig{Key: "s", Kind: "text", Default: []byte(`true`)}, "expected a string"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := &TemplateSchema{ID: "x", Name: "X", Fields: []FieldConfig{tc.field}}
			_, err := Compile(ts, 0)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestCompile_RejectsInvalidTemplate(t *testing.T) {
	s := validTemplate()
	s.Fields[1].Key = "time"
	_, err := Compile(s, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")
}

func TestSummary(t *testing.T) {
	c, err := Compile(validTemplate(), 0)
	require.NoError(t, err)
	sum := c.Summary()
	assert.Equal(t, "test_template", sum.ID)
	assert.Equal(t, domain.SourceFile, sum.Source)
	assert.Contains(t, sum.ConfigJSON, `"fields"`)
	assert.Len(t, sum.FieldKeys, 5)
}

// Every built-in template must compile, or the binary cannot start an editing session.
func TestBuiltins_AllCompile(t *testing.T) {
	builtins, err := Builtins(0)
	require.NoError(t, err)
	require.NotEmpty(t, builtins)

	ids := map[string]bool{}
	for _, c := range builtins {
		t.Run(c.ID, func(t *testing.T) {
			assert.False(t, ids[c.ID], "duplicate builtin id")
			ids[c.ID] = true
			assert.Equal(t, domain.SourceBuiltin, c.Source)
			assert.GreaterOrEqual(t, c.MaxPerDay, 1)
			_, hasTime := c.Schema.TimeKey()
			assert.True(t, hasTime, "builtins carry a time field")

			w := schedule.NewWeek(c.Schema)
			assert.Equal(t, schedule.DaysPerWeek, len(w.Days()))
		})
	}
	assert.True(t, ids["topic"])
	assert.True(t, ids["classic"])
}
