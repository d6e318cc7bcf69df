package timeutil

import (
	"fmt"
	"time"
)

// Today returns the current UTC date as YYYY-MM-DD. Past-date exclusion is
// computed against UTC midnight regardless of the requester's zone.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

// ParseDate validates a YYYY-MM-DD string.
func ParseDate(date string) (time.Time, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return d, nil
}

// AddDays shifts a YYYY-MM-DD date by n calendar days.
func AddDays(date string, n int) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, n).Format(DateLayout), nil
}

// DaysBetween returns the signed number of days from start to end.
func DaysBetween(start, end string) (int, error) {
	s, err := ParseDate(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return 0, err
	}
	return int(e.Sub(s).Hours() / 24), nil
}

// MonthBounds returns the first and last date of a month as YYYY-MM-DD.
func MonthBounds(year, month int) (string, string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(DateLayout), last.Format(DateLayout)
}

// WeekStart returns the date of the Monday (or Sunday, when sundayStart is
// set) of the week containing the given date.
func WeekStart(date string, sundayStart bool) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	dow := int(d.Weekday()) // Sunday == 0
	var back int
	if sundayStart {
		back = dow
	} else if dow == 0 {
		back = 6
	} else {
		back = dow - 1
	}
	return d.AddDate(0, 0, -back).Format(DateLayout), nil
}

// WeekEnd returns the date six days after the week start.
func WeekEnd(weekStart string) (string, error) {
	return AddDays(weekStart, 6)
}
