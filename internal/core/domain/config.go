package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	KeySystemStatus       = "system_status"
	KeyVotingPeriod       = "voting_period"
	KeyStartDate          = "voting_start_date"
	KeyEndDate            = "voting_end_date"
	KeyScheduleStart      = "voting_schedule_start"
	KeyScheduleEnd        = "voting_schedule_end"
	KeyAllowedDays        = "allowed_voting_days"
	KeyMaxVotesPerStation = "max_votes_per_table"
)

const (
	SystemStatusActive   = "active"
	SystemStatusInactive = "inactive"
)

// ConfigKeys lists every persisted setting in display order.
var ConfigKeys = []string{
	KeySystemStatus,
	KeyVotingPeriod,
	KeyStartDate,
	KeyEndDate,
	KeyScheduleStart,
	KeyScheduleEnd,
	KeyAllowedDays,
	KeyMaxVotesPerStation,
}

var configDescriptions = map[string]string{
	KeySystemStatus:       "Voting system status (active/inactive)",
	KeyVotingPeriod:       "Label of the current voting period",
	KeyStartDate:          "First day of the voting period (YYYY-MM-DD, empty for none)",
	KeyEndDate:            "Last day of the voting period (YYYY-MM-DD, empty for none)",
	KeyScheduleStart:      "Daily opening time (HH:MM)",
	KeyScheduleEnd:        "Daily closing time (HH:MM, inclusive)",
	KeyAllowedDays:        "Allowed weekdays, 1=Monday .. 7=Sunday",
	KeyMaxVotesPerStation: "Maximum votes per polling station (0 = unlimited)",
}

// DefaultConfigEntries is the snapshot restored by a configuration reset.
func DefaultConfigEntries() map[string]string {
	return map[string]string{
		KeySystemStatus:       SystemStatusActive,
		KeyVotingPeriod:       "2024",
		KeyStartDate:          "2024-10-10",
		KeyEndDate:            "2024-10-17",
		KeyScheduleStart:      "08:00",
		KeyScheduleEnd:        "18:00",
		KeyAllowedDays:        "1,2,3,4,5",
		KeyMaxVotesPerStation: "200",
	}
}

func IsConfigKey(key string) bool {
	return slices.Contains(ConfigKeys, key)
}

func ConfigDescription(key string) string {
	return configDescriptions[key]
}

// ConfigEntry is one persisted key/value setting.
type ConfigEntry struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VotingConfig is the typed snapshot the eligibility evaluator consumes.
// A zero StartDate or EndDate means the bound is unset.
type VotingConfig struct {
	SystemEnabled      bool       `json:"system_enabled"`
	Period             string     `json:"period"`
	StartDate          Day        `json:"start_date"`
	EndDate            Day        `json:"end_date"`
	StartTime          TimeOfDay  `json:"start_time"`
	EndTime            TimeOfDay  `json:"end_time"`
	AllowedDays        WeekdaySet `json:"allowed_days"`
	MaxVotesPerStation int        `json:"max_votes_per_station"`
}

func (c VotingConfig) Validate() error {
	if !c.StartDate.IsZero() && !c.EndDate.IsZero() && c.StartDate.After(c.EndDate) {
		return ErrInvalidDateRange
	}
	return nil
}

// Entries renders c back to its persisted key/value form.
func (c VotingConfig) Entries() map[string]string {
	status := SystemStatusInactive
	if c.SystemEnabled {
		status = SystemStatusActive
	}
	return map[string]string{
		KeySystemStatus:       status,
		KeyVotingPeriod:       c.Period,
		KeyStartDate:          c.StartDate.String(),
		KeyEndDate:            c.EndDate.String(),
		KeyScheduleStart:      c.StartTime.String(),
		KeyScheduleEnd:        c.EndTime.String(),
		KeyAllowedDays:        c.AllowedDays.String(),
		KeyMaxVotesPerStation: strconv.Itoa(c.MaxVotesPerStation),
	}
}

// DefaultVotingConfig returns the parsed default snapshot.
func DefaultVotingConfig() VotingConfig {
	cfg, err := ParseConfig(DefaultConfigEntries())
	if err != nil {
		panic(fmt.Sprintf("default voting config is invalid: %v", err))
	}
	return cfg
}

// ParseConfig builds a snapshot from raw entries. Missing keys take their
// default value; a malformed value or an inverted date range is an error.
func ParseConfig(entries map[string]string) (VotingConfig, error) {
	var cfg VotingConfig
	defaults := DefaultConfigEntries()
	for _, key := range ConfigKeys {
		value, ok := entries[key]
		if !ok {
			value = defaults[key]
		}
		if err := applyConfigValue(&cfg, key, value); err != nil {
			return VotingConfig{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return VotingConfig{}, err
	}
	return cfg, nil
}

// ParseConfigLenient never fails: a malformed value falls back to the default
// for that key and is reported through onInvalid. An inverted date range
// drops both date bounds back to their defaults.
func ParseConfigLenient(entries map[string]string, onInvalid func(key, value string, err error)) VotingConfig {
	var cfg VotingConfig
	defaults := DefaultConfigEntries()
	for _, key := range ConfigKeys {
		value, ok := entries[key]
		if !ok {
			value = defaults[key]
		}
		if err := applyConfigValue(&cfg, key, value); err != nil {
			if onInvalid != nil {
				onInvalid(key, value, err)
			}
			_ = applyConfigValue(&cfg, key, defaults[key])
		}
	}
	if err := cfg.Validate(); err != nil {
		if onInvalid != nil {
			onInvalid(KeyStartDate, cfg.StartDate.String(), err)
		}
		_ = applyConfigValue(&cfg, KeyStartDate, defaults[KeyStartDate])
		_ = applyConfigValue(&cfg, KeyEndDate, defaults[KeyEndDate])
	}
	return cfg
}

func applyConfigValue(cfg *VotingConfig, key, raw string) error {
	value := strings.TrimSpace(raw)
	invalid := func(err error) error {
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfigValue, key, raw, err)
		}
		return fmt.Errorf("%w: %s=%q", ErrInvalidConfigValue, key, raw)
	}

	switch key {
	case KeySystemStatus:
		switch strings.ToLower(value) {
		case SystemStatusActive:
			cfg.SystemEnabled = true
		case SystemStatusInactive:
			cfg.SystemEnabled = false
		default:
			return invalid(nil)
		}
	case KeyVotingPeriod:
		cfg.Period = value
	case KeyStartDate, KeyEndDate:
		var day Day
		if value != "" {
			parsed, err := ParseDay(value)
			if err != nil {
				return invalid(nil)
			}
			day = parsed
		}
		if key == KeyStartDate {
			cfg.StartDate = day
		} else {
			cfg.EndDate = day
		}
	case KeyScheduleStart, KeyScheduleEnd:
		tod, err := ParseTimeOfDay(value)
		if err != nil {
			return invalid(nil)
		}
		if key == KeyScheduleStart {
			cfg.StartTime = tod
		} else {
			cfg.EndTime = tod
		}
	case KeyAllowedDays:
		days, err := ParseWeekdaySet(value)
		if err != nil {
			return invalid(err)
		}
		cfg.AllowedDays = days
	case KeyMaxVotesPerStation:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return invalid(nil)
		}
		cfg.MaxVotesPerStation = n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}
	return nil
}

// TimeOfDay is a wall-clock time with minute resolution, in minutes since midnight.
type TimeOfDay int

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// TimeOfDayOf truncates t to the minute in t's own location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return fmt.Errorf("%w: time of day %q", ErrInvalidConfigValue, string(b))
	}
	*t = parsed
	return nil
}

// WeekdaySet is a set of weekdays. It renders as ISO day numbers,
// 1=Monday through 7=Sunday.
type WeekdaySet uint8

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

func ParseWeekdaySet(s string) (WeekdaySet, error) {
	var set WeekdaySet
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 || n > 7 {
			return 0, fmt.Errorf("weekday %q out of range 1..7", part)
		}
		set |= NewWeekdaySet(time.Weekday(n % 7))
	}
	return set, nil
}

func (s WeekdaySet) Contains(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// ISODays lists the members as ISO day numbers in ascending order.
func (s WeekdaySet) ISODays() []int {
	days := []int{}
	for iso := 1; iso <= 7; iso++ {
		if s.Contains(time.Weekday(iso % 7)) {
			days = append(days, iso)
		}
	}
	return days
}

func (s WeekdaySet) String() string {
	parts := make([]string, 0, 7)
	for _, iso := range s.ISODays() {
		parts = append(parts, strconv.Itoa(iso))
	}
	return strings.Join(parts, ",")
}

func (s WeekdaySet) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *WeekdaySet) UnmarshalText(b []byte) error {
	parsed, err := ParseWeekdaySet(string(b))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfigValue, err)
	}
	*s = parsed
	return nil
}
