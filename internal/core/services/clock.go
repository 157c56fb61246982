package services

import (
	"time"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
)

// Clock reads the current instant in the election's time zone. Calendar days,
// weekdays and report buckets are all taken in that zone.
type Clock struct {
	now func() time.Time
	loc *time.Location
}

func NewClock(loc *time.Location, now func() time.Time) Clock {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return Clock{now: now, loc: loc}
}

func (c Clock) Now() time.Time {
	if c.now == nil {
		return time.Now().In(c.location())
	}
	return c.now().In(c.location())
}

func (c Clock) Today() domain.Day {
	return domain.DayOf(c.Now())
}

func (c Clock) Location() *time.Location {
	return c.location()
}

func (c Clock) location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}
