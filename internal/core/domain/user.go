package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RolePresident  Role = "president"
)

func (r Role) Valid() bool {
	return r == RoleSuperAdmin || r == RolePresident
}

// Principal is an authenticated caller. StationID is set only for presidents.
type Principal struct {
	Role       Role       `json:"role"`
	NationalID string     `json:"national_id"`
	Name       string     `json:"name,omitempty"`
	StationID  *uuid.UUID `json:"station_id,omitempty"`
}

// SystemUser is an operator account able to log in with a password.
type SystemUser struct {
	ID           uuid.UUID `json:"id"`
	NationalID   string    `json:"national_id"`
	GivenName    string    `json:"given_name"`
	FamilyName   string    `json:"family_name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
