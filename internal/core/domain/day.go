package domain

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// Day is a calendar date without a time zone. Comparable with ==.
type Day struct {
	year  int
	month time.Month
	day   int
}

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{year: y, month: m, day: d}
}

func NewDay(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	return DayOf(t), nil
}

func (d Day) IsZero() bool { return d == Day{} }

func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

func (d Day) Before(o Day) bool { return d.compare(o) < 0 }

func (d Day) After(o Day) bool { return d.compare(o) > 0 }

func (d Day) AddDays(n int) Day {
	return DayOf(d.Start(time.UTC).AddDate(0, 0, n))
}

// Start is midnight of d in loc.
func (d Day) Start(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

func (d Day) compare(o Day) int {
	switch {
	case d.year != o.year:
		return d.year - o.year
	case d.month != o.month:
		return int(d.month) - int(o.month)
	default:
		return d.day - o.day
	}
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
