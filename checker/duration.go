package checker

import (
	"fmt"
	"strconv"
	"strings"
)

// SplitTimeLabel breaks a rendered "HH:MM - HH:MM" slot label into its start
// and end clock labels.
func SplitTimeLabel(label string) (start, end string, err error) {
	parts := strings.SplitN(label, "-", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("time label %q: want \"HH:MM - HH:MM\"", label)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

// parseClock converts an HH:MM label into its integer HHMM form
// (e.g. "14:32" -> 1432).
func parseClock(label string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(label), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("clock label %q: want HH:MM", label)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("clock label %q: bad hour: %w", label, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("clock label %q: bad minute: %w", label, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock label %q: out of range", label)
	}
	return h*100 + m, nil
}

// SessionHours computes a session's length in decimal hours from its start
// and end clock labels.
//
// Sessions that cross midnight render the end time as a small value like
// "0:45". The correction assumes no wrapping session starts before 14:00:
// when the end is before 10:00 and the start after 14:00, the end gets a
// day's worth of clock added before subtracting. This is a deliberate
// narrow heuristic matching how the venues actually book, not a general
// wraparound rule.
//
// A non-positive duration means the rendered slot data is inconsistent and
// is returned as an error, never clamped.
func SessionHours(start, end string) (float64, error) {
	s, err := parseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := parseClock(end)
	if err != nil {
		return 0, err
	}

	if e < 1000 && s > 1400 {
		e += 2400
	}

	hours := float64(e-s) / 100.0
	if hours <= 0 {
		return 0, fmt.Errorf("session %s - %s: non-positive duration %.2fh", start, end, hours)
	}
	return hours, nil
}
