package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseInstantZoneSuffix(t *testing.T) {
	want := time.Date(2025, 3, 1, 10, 0, 30, 0, time.UTC)

	for _, s := range []string{
		"2025-03-01T10:00:30Z",
		"2025-03-01T10:00:30+00:00",
		"2025-03-01T10:00:30",
		"2025-03-01T12:00:30+02:00",
	} {
		got, err := ParseInstant(s)
		if err != nil {
			t.Fatalf("ParseInstant(%q): unexpected error: %v", s, err)
		}
		if !got.Equal(want) {
			t.Errorf("ParseInstant(%q) = %v, want %v", s, got, want)
		}
		if got.Location() != time.UTC {
			t.Errorf("ParseInstant(%q) location = %v, want UTC", s, got.Location())
		}
	}
}

func TestParseInstantMalformed(t *testing.T) {
	for _, s := range []string{"", "tomorrow", "2025-13-01T00:00:00Z", "2025-03-01"} {
		if _, err := ParseInstant(s); !errors.Is(err, ErrInvalidTimestamp) {
			t.Errorf("ParseInstant(%q) err = %v, want ErrInvalidTimestamp", s, err)
		}
	}
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2025-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDay = %v", got)
	}

	if _, err := ParseDay("03/01/2025"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("ParseDay err = %v, want ErrInvalidDate", err)
	}
}

func TestFormatting(t *testing.T) {
	if got := FormatHours(1440); got != "24.0" {
		t.Errorf("FormatHours(1440) = %q", got)
	}
	if got := FormatHours(30); got != "0.5" {
		t.Errorf("FormatHours(30) = %q", got)
	}
	if got := FormatHours(0); got != "0.0" {
		t.Errorf("FormatHours(0) = %q", got)
	}
	if got := FormatHHMM(605); got != "10:05" {
		t.Errorf("FormatHHMM(605) = %q", got)
	}
	if got := FormatHHMM(59); got != "0:59" {
		t.Errorf("FormatHHMM(59) = %q", got)
	}
}

func TestMinutesFromFloat(t *testing.T) {
	cases := map[float64]int{
		0:     0,
		30:    30,
		12.4:  12,
		12.5:  13,
		0.25:  0,
		-12.5: -13,
	}
	for in, want := range cases {
		if got := MinutesFromFloat(in); got != want {
			t.Errorf("MinutesFromFloat(%v) = %d, want %d", in, got, want)
		}
	}
}
