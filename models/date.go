package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CalendarDate is a calendar day with no time-of-day component. It carries
// local-day semantics: a date built from a time.Time uses the wall-clock day,
// never the UTC day, so a check started between midnight and 02:00 in a
// GMT+2 venue still targets the right day.
type CalendarDate struct {
	Year  int
	Month int
	Day   int
}

// DateOf returns the CalendarDate of t in t's location.
func DateOf(t time.Time) CalendarDate {
	return CalendarDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Today returns the current local calendar day.
func Today() CalendarDate {
	return DateOf(time.Now())
}

// AddDays returns the date n days after d.
func (d CalendarDate) AddDays(n int) CalendarDate {
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 12, 0, 0, 0, time.Local)
	return DateOf(t.AddDate(0, 0, n))
}

// String renders the date as yyyy/mm/dd, the form used in reports.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// FieldValue renders the date as d/m/yyyy, the form the backoffice #date
// input expects (no zero padding).
func (d CalendarDate) FieldValue() string {
	return fmt.Sprintf("%d/%d/%d", d.Day, d.Month, d.Year)
}

// ParseDate parses the report form yyyy/mm/dd back into a CalendarDate.
func ParseDate(s string) (CalendarDate, error) {
	var d CalendarDate
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d/%d/%d", &d.Year, &d.Month, &d.Day); err != nil {
		return CalendarDate{}, fmt.Errorf("date %q: want yyyy/mm/dd: %w", s, err)
	}
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return CalendarDate{}, fmt.Errorf("date %q: out of range", s)
	}
	return d, nil
}

// ParseBookingDate converts the widget's dd/mm/yyyy booking-date attribute
// into a CalendarDate.
func ParseBookingDate(s string) (CalendarDate, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "/", 3)
	if len(parts) != 3 {
		return CalendarDate{}, fmt.Errorf("booking date %q: want dd/mm/yyyy", s)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return CalendarDate{}, fmt.Errorf("booking date %q: bad day: %w", s, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return CalendarDate{}, fmt.Errorf("booking date %q: bad month: %w", s, err)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return CalendarDate{}, fmt.Errorf("booking date %q: bad year: %w", s, err)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return CalendarDate{}, fmt.Errorf("booking date %q: out of range", s)
	}
	return CalendarDate{Year: year, Month: month, Day: day}, nil
}
