package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	Format12H = "12h"
	Format24H = "24h"
)

// ParseClock converts an HH:MM wall-clock string to minutes since midnight.
func ParseClock(clock string) (int, error) {
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinutes renders minutes since midnight as zero-padded HH:MM.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatClock renders an HH:MM time in the requested display format.
// 12h maps hour 0 to 12 AM, 12 to 12 PM and 13-23 to (h-12) PM; minutes
// stay zero-padded in both formats.
func FormatClock(clock, format string) (string, error) {
	if format == Format24H || format == "" {
		if _, err := ParseClock(clock); err != nil {
			return "", err
		}
		return clock, nil
	}
	if format != Format12H {
		return "", fmt.Errorf("unknown time format %q", format)
	}

	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return "", fmt.Errorf("invalid clock time %q: %w", clock, err)
	}

	hour := t.Hour()
	period := "AM"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		period = "PM"
	case hour > 12:
		hour -= 12
		period = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute(), period), nil
}

// ConvertWallClock reinterprets a wall-clock time authored in sourceZone as
// an instant on the given date, converts it to targetZone and returns the
// resulting local HH:MM. Identical zones are a no-op.
func ConvertWallClock(date, clock, sourceZone, targetZone string) (string, error) {
	if sourceZone == targetZone {
		if _, err := ParseClock(clock); err != nil {
			return "", err
		}
		return clock, nil
	}

	src, err := time.LoadLocation(sourceZone)
	if err != nil {
		return "", fmt.Errorf("unknown source timezone %q: %w", sourceZone, err)
	}
	dst, err := time.LoadLocation(targetZone)
	if err != nil {
		return "", fmt.Errorf("unknown target timezone %q: %w", targetZone, err)
	}

	day, err := time.ParseInLocation(DateLayout, date, src)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	minutes, err := ParseClock(clock)
	if err != nil {
		return "", err
	}

	instant := time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, src)
	return instant.In(dst).Format(ClockLayout), nil
}

// Weekday returns the lowercase weekday name for a YYYY-MM-DD date.
func Weekday(date string) (string, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return strings.ToLower(d.Weekday().String()), nil
}
