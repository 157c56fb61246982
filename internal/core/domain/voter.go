package domain

import (
	"regexp"
	"strings"
	"time"
)

var nationalIDPattern = regexp.MustCompile(`^\d{8}$`)

// ValidNationalID reports whether id matches the 8-digit national ID format.
func ValidNationalID(id string) bool {
	return nationalIDPattern.MatchString(id)
}

type Voter struct {
	NationalID string    `json:"national_id"`
	GivenName  string    `json:"given_name"`
	FamilyName string    `json:"family_name"`
	Category   string    `json:"category"`
	Enabled    bool      `json:"enabled"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// VoterStatus is a voter joined with the ledger. Voted is derived, never stored.
type VoterStatus struct {
	Voter
	Voted           bool       `json:"voted"`
	VotedAt         *time.Time `json:"voted_at,omitempty"`
	StationName     string     `json:"station_name,omitempty"`
	StationLocation string     `json:"station_location,omitempty"`
}

// VoterRecord is one row of a roll import.
type VoterRecord struct {
	NationalID string `json:"national_id"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Category   string `json:"category"`
}

// Normalize trims surrounding whitespace from every field.
func (r VoterRecord) Normalize() VoterRecord {
	return VoterRecord{
		NationalID: strings.TrimSpace(r.NationalID),
		GivenName:  strings.TrimSpace(r.GivenName),
		FamilyName: strings.TrimSpace(r.FamilyName),
		Category:   strings.TrimSpace(r.Category),
	}
}

// Complete reports whether no required field is empty.
func (r VoterRecord) Complete() bool {
	return r.NationalID != "" && r.GivenName != "" && r.FamilyName != "" && r.Category != ""
}

// UpsertResult counts the outcome of a bulk upsert. Errors counts rows the
// store failed to write; Rejected counts rows refused before reaching it.
type UpsertResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Rejected int `json:"rejected"`
	Errors   int `json:"errors"`
}

func (r *UpsertResult) Add(o UpsertResult) {
	r.Inserted += o.Inserted
	r.Updated += o.Updated
	r.Rejected += o.Rejected
	r.Errors += o.Errors
}
