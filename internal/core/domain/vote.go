package domain

import (
	"time"

	"github.com/google/uuid"
)

type VoteStatus string

const (
	VoteValid VoteStatus = "valid"
	// VoteAnnulled is reserved; no operation produces it yet.
	VoteAnnulled VoteStatus = "annulled"
)

type Vote struct {
	ID              uuid.UUID  `json:"id"`
	VoterNationalID string     `json:"voter_national_id"`
	StationID       uuid.UUID  `json:"station_id"`
	CastAt          time.Time  `json:"cast_at"`
	Status          VoteStatus `json:"status"`
}
