package repository

import (
	"time"

	"github.com/google/uuid"
)

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// parseTime parses an RFC3339 column value, yielding the zero time on failure.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ensureID assigns a fresh UUID when id is empty.
func ensureID(id *string) {
	if *id == "" {
		*id = uuid.New().String()
	}
}
