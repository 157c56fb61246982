package domain

import "errors"

// Category sentinels. Every specific error below unwraps to exactly one of
// them so adapters can map outcomes without knowing every case.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

var (
	ErrMissingField          = categorized(ErrValidation, "required field is empty")
	ErrInvalidNationalID     = categorized(ErrValidation, "national id must be exactly 8 digits")
	ErrInvalidPresidentID    = categorized(ErrValidation, "president national id must be exactly 8 digits")
	ErrInvalidDateRange      = categorized(ErrValidation, "start date must not be after end date")
	ErrInvalidConfigValue    = categorized(ErrValidation, "invalid configuration value")
	ErrInvalidDay            = categorized(ErrValidation, "invalid calendar day")
	ErrConfirmationRequired  = categorized(ErrValidation, "destructive operation requires confirmation")
	ErrUnknownReportType     = categorized(ErrValidation, "unknown report type")
	ErrInvalidImportFile     = categorized(ErrValidation, "invalid import file")
	ErrVoterNotFound         = categorized(ErrNotFound, "voter not found")
	ErrStationNotFound       = categorized(ErrNotFound, "polling station not found")
	ErrUnknownConfigKey      = categorized(ErrNotFound, "unknown configuration key")
	ErrUserNotFound          = categorized(ErrNotFound, "user not found")
	ErrAlreadyVoted          = categorized(ErrConflict, "voter has already voted")
	ErrDuplicateStation      = categorized(ErrConflict, "a station with this name and location was already created today")
	ErrStationClosed         = categorized(ErrConflict, "polling station is closed")
	ErrStationFull           = categorized(ErrConflict, "polling station reached its vote cap")
	ErrStationStateChanged   = categorized(ErrConflict, "polling station state changed concurrently")
	ErrWindowClosed          = categorized(ErrConflict, "voting window closed")
	ErrVoterDisabled         = categorized(ErrConflict, "voter is disabled")
	ErrInvalidCredentials    = categorized(ErrUnauthorized, "invalid credentials")
	ErrInvalidToken          = categorized(ErrUnauthorized, "invalid or expired token")
	ErrInsufficientRole      = categorized(ErrForbidden, "insufficient role")
	ErrStationScopeViolation = categorized(ErrForbidden, "principal is not assigned to this station")
)

type categorizedError struct {
	category error
	msg      string
}

func categorized(category error, msg string) error {
	return &categorizedError{category: category, msg: msg}
}

func (e *categorizedError) Error() string { return e.msg }

func (e *categorizedError) Unwrap() error { return e.category }
