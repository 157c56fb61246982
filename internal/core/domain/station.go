package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type PollingStation struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	Location            string     `json:"location"`
	PresidentNationalID string     `json:"president_national_id"`
	PresidentName       string     `json:"president_name,omitempty"`
	IsOpen              bool       `json:"is_open"`
	OpenedAt            *time.Time `json:"opened_at,omitempty"`
	ClosedAt            *time.Time `json:"closed_at,omitempty"`
	Votes               int        `json:"votes"`
	CreatedAt           time.Time  `json:"created_at"`
	// CreatedDay is the calendar day of CreatedAt in the configured time zone.
	// Duplicate detection is scoped to it.
	CreatedDay Day `json:"created_day"`
}

// DuplicateKey is the case-insensitive identity of a station within a day.
func (s PollingStation) DuplicateKey() string {
	return StationKey(s.Name, s.Location, s.CreatedDay)
}

func StationKey(name, location string, day Day) string {
	return strings.ToLower(strings.TrimSpace(name)) + "\x00" +
		strings.ToLower(strings.TrimSpace(location)) + "\x00" +
		day.String()
}
