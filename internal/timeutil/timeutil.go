// Package timeutil provides utility functions for working with
// time-related operations.
package timeutil

import (
	"math"
	"strconv"
	"time"

	"github.com/markusmobius/go-dateparser"
)

const minutesInAnHour = 60

const (
	// Format24Hour renders timestamps like "2006-01-02 15:04".
	Format24Hour = "2006-01-02 15:04"
	// Format12Hour renders timestamps like "2006-01-02 03:04 PM".
	Format12Hour = "2006-01-02 03:04 PM"
)

// FormatDelta renders a duration as H:MM with the minute component
// rounded to the nearest whole minute. Negative durations render as 0:00.
func FormatDelta(d time.Duration) string {
	mins := int(math.Round(d.Minutes()))
	if mins < 0 {
		mins = 0
	}

	hours := mins / minutesInAnHour
	mins %= minutesInAnHour

	m := strconv.Itoa(mins)
	if mins < 10 {
		m = "0" + m
	}

	return strconv.Itoa(hours) + ":" + m
}

// FromStr parses a natural-language timestamp such as "20 mins ago"
// or "2023-02-10 14:00" relative to the current time.
func FromStr(s string) (time.Time, error) {
	dt, err := dateparser.Parse(&dateparser.Configuration{
		CurrentTime: time.Now(),
	}, s)
	if err != nil {
		return time.Time{}, err
	}

	return dt.Time, nil
}
