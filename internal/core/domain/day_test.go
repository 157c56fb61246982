package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDay(t *testing.T) {
	d, err := ParseDay("2024-02-28")
	require.NoError(t, err)

	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.AddDays(1).After(d))
	assert.Equal(t, d, DayOf(d.Start(time.UTC).Add(23*time.Hour)))

	_, err = ParseDay("2024-02-30")
	assert.ErrorIs(t, err, ErrInvalidDay)

	var zero Day
	assert.True(t, zero.IsZero())
	assert.Empty(t, zero.String())
}

func TestDayOfUsesLocation(t *testing.T) {
	instant := time.Date(2024, 10, 15, 1, 0, 0, 0, time.UTC)
	west := time.FixedZone("W", -5*60*60)

	assert.Equal(t, NewDay(2024, 10, 15), DayOf(instant))
	assert.Equal(t, NewDay(2024, 10, 14), DayOf(instant.In(west)))
}
