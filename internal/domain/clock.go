package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidDate      = errors.New("invalid date")
)

const (
	MinutesPerDay = 24 * 60
	Day           = 24 * time.Hour
	DateLayout    = "2006-01-02"
)

// Layouts accepted for ISO instants. Zone-less values are read as UTC so that
// "2025-03-01T10:00:00" and "2025-03-01T10:00:00Z" are the same instant.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// ParseInstant parses an ISO-8601 timestamp and returns it in UTC.
func ParseInstant(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, fmt.Errorf("parse instant: empty value: %w", ErrInvalidTimestamp)
	}

	for _, layout := range instantLayouts {
		t, err := time.ParseInLocation(layout, v, time.UTC)
		if err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("parse instant %q: %w", s, ErrInvalidTimestamp)
}

// ParseDay parses a "YYYY-MM-DD" bucket date into its UTC midnight.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", s, ErrInvalidDate)
	}
	return t, nil
}

// StartOfDay truncates t to midnight UTC of its calendar day.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// RoundMinutes converts a duration to whole minutes, rounding half away from zero.
func RoundMinutes(d time.Duration) int {
	return int(math.Round(float64(d) / float64(time.Minute)))
}

// MinutesFromFloat rounds a fractional minute count the way RoundMinutes
// rounds durations (half away from zero).
func MinutesFromFloat(m float64) int {
	return RoundMinutes(time.Duration(m * float64(time.Minute)))
}

// FormatHours renders minutes as hours with one decimal place ("7.5").
func FormatHours(minutes int) string {
	h := math.Round(float64(minutes)/60*10) / 10
	return strconv.FormatFloat(h, 'f', 1, 64)
}

// FormatHHMM renders minutes as "H:MM".
func FormatHHMM(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
