package utils

import (
	"fmt"
	"time"
)

// ISODate is the layout used for every date exchanged over the API.
const ISODate = "2006-01-02"

// DateProvider supplies "today" for date defaults.
type DateProvider interface {
	Today() time.Time
}

// SystemDateProvider reads the local wall clock.
type SystemDateProvider struct{}

func (SystemDateProvider) Today() time.Time {
	return time.Now()
}

// FixedDateProvider always returns the same day.
type FixedDateProvider struct {
	Date time.Time
}

func (f FixedDateProvider) Today() time.Time {
	return f.Date
}

func FormatISODate(t time.Time) string {
	return t.Format(ISODate)
}

// ParseISODate parses a YYYY-MM-DD string.
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// StringOr returns value, or fallback when value is empty.
func StringOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
