package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const calendarDateLayout = "2006-01-02"

// ErrInvalidDate is returned for date strings that are not a calendar date
var ErrInvalidDate = errors.New("invalid date")

// CalendarDate is a year-month-day value without time-of-day
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseCalendarDate parses YYYY-MM-DD or an RFC 3339 timestamp.
// Timestamps keep the calendar date written in the string; the offset is not applied.
func ParseCalendarDate(s string) (CalendarDate, error) {
	value := strings.TrimSpace(s)

	if t, err := time.Parse(calendarDateLayout, value); err == nil {
		return calendarDateFromTime(t), nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return calendarDateFromTime(t), nil
	}

	return CalendarDate{}, fmt.Errorf("%w: %q (use YYYY-MM-DD)", ErrInvalidDate, s)
}

// MustParseCalendarDate is ParseCalendarDate for literals known to be valid
func MustParseCalendarDate(s string) CalendarDate {
	d, err := ParseCalendarDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func calendarDateFromTime(t time.Time) CalendarDate {
	return CalendarDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Compare returns -1, 0 or 1 depending on whether d is before, equal to or after other
func (d CalendarDate) Compare(other CalendarDate) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	default:
		return sign(d.Day - other.Day)
	}
}

// Before reports whether d is strictly before other
func (d CalendarDate) Before(other CalendarDate) bool {
	return d.Compare(other) < 0
}

// After reports whether d is strictly after other
func (d CalendarDate) After(other CalendarDate) bool {
	return d.Compare(other) > 0
}

// MonthKey formats the year-month group key, e.g. "2019-01"
func (d CalendarDate) MonthKey() string {
	return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
