package model

import (
	"fmt"
	"time"
)

const (
	dayKeyLayout  = "Mon Jan 02 2006"
	isoDateLayout = "2006-01-02"
)

// DayKey identifies the calendar day of t in local time, e.g. "Sun Oct 18 2026".
func DayKey(t time.Time) string {
	return t.Local().Format(dayKeyLayout)
}

func ISODate(t time.Time) string {
	return t.Local().Format(isoDateLayout)
}

// ParseISODate parses a YYYY-MM-DD date at local midnight.
func ParseISODate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(isoDateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return t, nil
}

// DayKeyFromISO converts YYYY-MM-DD into a day key.
func DayKeyFromISO(raw string) (string, error) {
	t, err := ParseISODate(raw)
	if err != nil {
		return "", err
	}
	return DayKey(t), nil
}
