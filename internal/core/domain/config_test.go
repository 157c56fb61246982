package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)

	assert.True(t, cfg.SystemEnabled)
	assert.Equal(t, "2024", cfg.Period)
	assert.Equal(t, NewDay(2024, 10, 10), cfg.StartDate)
	assert.Equal(t, NewDay(2024, 10, 17), cfg.EndDate)
	assert.Equal(t, "08:00", cfg.StartTime.String())
	assert.Equal(t, "18:00", cfg.EndTime.String())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, cfg.AllowedDays.ISODays())
	assert.Equal(t, 200, cfg.MaxVotesPerStation)
	assert.Equal(t, DefaultConfigEntries(), cfg.Entries())
}

func TestParseConfigRejects(t *testing.T) {
	tests := map[string]map[string]string{
		"status":        {KeySystemStatus: "on"},
		"date":          {KeyStartDate: "10/10/2024"},
		"time":          {KeyScheduleEnd: "6pm"},
		"weekday":       {KeyAllowedDays: "0,1"},
		"negative cap":  {KeyMaxVotesPerStation: "-1"},
		"inverted date": {KeyStartDate: "2024-10-20"},
	}
	for name, entries := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig(entries)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	_, err := ParseConfig(map[string]string{KeyEndDate: "2024-10-01"})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestParseConfigLenientFallsBack(t *testing.T) {
	var invalid []string
	cfg := ParseConfigLenient(map[string]string{
		KeySystemStatus: "INACTIVE",
		KeyScheduleEnd:  "late",
		KeyStartDate:    "2024-12-01",
	}, func(key, _ string, _ error) {
		invalid = append(invalid, key)
	})

	assert.False(t, cfg.SystemEnabled)
	assert.Equal(t, "18:00", cfg.EndTime.String())
	assert.Equal(t, NewDay(2024, 10, 10), cfg.StartDate)
	assert.Equal(t, []string{KeyScheduleEnd, KeyStartDate}, invalid)
}

func TestWeekdaySet(t *testing.T) {
	set, err := ParseWeekdaySet("7, 1,1")
	require.NoError(t, err)
	assert.True(t, set.Contains(time.Sunday))
	assert.True(t, set.Contains(time.Monday))
	assert.False(t, set.Contains(time.Tuesday))
	assert.Equal(t, "1,7", set.String())

	empty, err := ParseWeekdaySet("")
	require.NoError(t, err)
	assert.Empty(t, empty.ISODays())

	_, err = ParseWeekdaySet("8")
	assert.Error(t, err)
}

func TestVotingConfigJSON(t *testing.T) {
	cfg := DefaultVotingConfig()

	raw, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"system_enabled": true,
		"period": "2024",
		"start_date": "2024-10-10",
		"end_date": "2024-10-17",
		"start_time": "08:00",
		"end_time": "18:00",
		"allowed_days": "1,2,3,4,5",
		"max_votes_per_station": 200
	}`, string(raw))

	var decoded VotingConfig
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, cfg, decoded)
}
