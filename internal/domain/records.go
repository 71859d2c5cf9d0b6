package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("not found")

// Template summarises a schedule template for listings.
type Template struct {
	ID          string
	Name        string
	Version     string
	Description string
	MaxPerDay   int
	FieldKeys   []string
	Source      TemplateSource
	ConfigJSON  string
}

// WeekRecord is an owner's rich week for one template. Payload is the week's
// JSON; it is normalised against the template schema when loaded.
type WeekRecord struct {
	ID         string
	Owner      string
	TemplateID string
	Payload    []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TeamWeekRecord is one member's shared week on a team board. Payload is
// untrusted until it passes the team week validator.
type TeamWeekRecord struct {
	ID         string
	Team       string
	Owner      string
	TemplateID string
	Payload    []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
