package template

import (
	"encoding/json"
	"fmt"
	"os"
)

// TemplateSchema is the top-level JSON template structure.
type TemplateSchema struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Version     string        `json:"version"`
	Description string        `json:"description,omitempty"`
	MaxPerDay   *int          `json:"maxPerDay,omitempty"`
	Fields      []FieldConfig `json:"fields"`
	// Flags are boolean extension keys carried by every entry (e.g. "isGuerrilla").
	Flags []string `json:"flags,omitempty"`
}

type FieldConfig struct {
	Key         string          `json:"key"`
	Kind        string          `json:"kind"` // "text", "textarea", "time", "select", "number"
	Label       string          `json:"label,omitempty"`
	Placeholder string          `json:"placeholder"`
	Required    bool            `json:"required,omitempty"`
	MaxLength   int             `json:"maxLength,omitempty"`
	Options     []OptionConfig  `json:"options,omitempty"`
	Default     json.RawMessage `json:"default,omitempty"` // string or number
}

type OptionConfig struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// LoadSchema reads and parses a template JSON file.
func LoadSchema(path string) (*TemplateSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSchema(data)
}

// ParseSchema parses template JSON.
func ParseSchema(data []byte) (*TemplateSchema, error) {
	var schema TemplateSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return &schema, nil
}
