// Package dates handles the date-only fields (purchase, sanction, payment
// and receipt dates) that the API exchanges as "YYYY-MM-DD" strings.
package dates

import (
	"errors"
	"strings"
	"time"
)

const Layout = "2006-01-02"

var ErrInvalid = errors.New("date must be YYYY-MM-DD or RFC3339")

// Parse accepts "YYYY-MM-DD" or RFC3339 and returns the date at midnight UTC.
func Parse(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalid
	}
	if t, err := time.Parse(Layout, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		y, m, d := t.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, ErrInvalid
}

// ParseOptional returns nil for an empty input.
func ParseOptional(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func Format(t time.Time) string { return t.UTC().Format(Layout) }

// FormatOptional returns "" for a nil date.
func FormatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Format(*t)
}
