package tracker

import (
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"
	// parseLayout also accepts months and days without a leading zero.
	parseLayout = "2006-1-2"
)

// unixEpochOrdinal is the proleptic Gregorian ordinal of 1970-01-01, where 0001-01-01 is 1.
const unixEpochOrdinal = 719163

// Date is a calendar date without a time of day.
// The zero value is not a valid date; use IsZero to check.
type Date struct {
	t time.Time
}

// NewDate returns the date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar date in loc.
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return DateOf(time.Now().In(loc))
}

// ParseDate parses a YYYY-MM-DD string. 2025-3-5 is read as 2025-03-05.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(parseLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("unable to parse date '%s': expected YYYY-MM-DD format", s)
	}
	return Date{t: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// AddDays returns the date n days after d. n may be negative.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysSince returns the number of whole days from other to d.
func (d Date) DaysSince(other Date) int {
	return int((d.t.Unix() - other.t.Unix()) / 86400)
}

func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// Ordinal returns the proleptic Gregorian ordinal of the date, where 0001-01-01 is day 1.
func (d Date) Ordinal() int {
	return int(d.t.Unix()/86400) + unixEpochOrdinal
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return d.t
}

// MarshalText implements encoding.TextMarshaler
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
