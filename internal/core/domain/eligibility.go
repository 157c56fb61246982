package domain

import "time"

// Reasons reported by Evaluate when the window is closed.
const (
	ReasonSystemDisabled = "system disabled"
	ReasonNotVotingDay   = "not a voting day"
	ReasonOutsideHours   = "outside voting hours"
	ReasonOutsidePeriod  = "outside voting period"
)

type WindowStatus struct {
	Active bool   `json:"active"`
	Reason string `json:"reason,omitempty"`
}

// Evaluate decides whether voting and station opening are permitted at now.
// Weekday, time of day and date are read in now's location. The checks run
// in a fixed order and the first failing one is reported.
func Evaluate(cfg VotingConfig, now time.Time) WindowStatus {
	if !cfg.SystemEnabled {
		return WindowStatus{Reason: ReasonSystemDisabled}
	}
	if !cfg.AllowedDays.Contains(now.Weekday()) {
		return WindowStatus{Reason: ReasonNotVotingDay}
	}
	if tod := TimeOfDayOf(now); tod < cfg.StartTime || tod > cfg.EndTime {
		return WindowStatus{Reason: ReasonOutsideHours}
	}
	if !cfg.StartDate.IsZero() && !cfg.EndDate.IsZero() {
		today := DayOf(now)
		if today.Before(cfg.StartDate) || today.After(cfg.EndDate) {
			return WindowStatus{Reason: ReasonOutsidePeriod}
		}
	}
	return WindowStatus{Active: true}
}
