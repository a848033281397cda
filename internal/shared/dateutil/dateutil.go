package dateutil

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate parses a strict zero-padded YYYY-MM-DD date and normalizes it to
// UTC midnight. All date comparisons in the module go through typed values;
// formatted strings are display-only.
func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current date truncated to UTC midnight.
func Today() time.Time {
	return Midnight(time.Now().UTC())
}

// Midnight truncates a timestamp to its UTC date.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseClock parses a time of day in HH:MM:SS or HH:MM form and returns
// seconds since midnight.
func ParseClock(v string) (int, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
		}
	}
	return 0, fmt.Errorf("invalid time %q, expected HH:MM or HH:MM:SS", v)
}

// ClockOf returns an instant's time of day as seconds since midnight.
func ClockOf(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

func FormatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}
