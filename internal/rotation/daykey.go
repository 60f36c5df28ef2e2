package rotation

import "time"

const dayKeyLayout = "2006-01-02"

// DayKey formats a clock reading as a YYYY-MM-DD key in its own location.
// Day boundaries follow the user's local timezone, not UTC.
func DayKey(now time.Time) string {
	return now.Format(dayKeyLayout)
}

// ParseDayKey parses a YYYY-MM-DD key back into a date (midnight, UTC).
func ParseDayKey(key string) (time.Time, error) {
	return time.Parse(dayKeyLayout, key)
}

// DaysBetween returns the whole calendar days from the "from" key to the
// "to" key. Malformed keys count as no gap.
func DaysBetween(from, to string) int {
	a, err := ParseDayKey(from)
	if err != nil {
		return 0
	}
	b, err := ParseDayKey(to)
	if err != nil {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}

// MinutesUntilRotation returns the minutes from now until the next rotation
// slot, 00:05 local time. The five-minute buffer past midnight avoids races
// with timezone and DST edge effects. Always at least 1.
func MinutesUntilRotation(now time.Time) int {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 5, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	minutes := int(next.Sub(now).Minutes())
	if minutes < 1 {
		return 1
	}
	return minutes
}

// WeekStart returns the day key of the ISO Monday on or before the given
// date.
func WeekStart(now time.Time) string {
	offset := (int(now.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return DayKey(now.AddDate(0, 0, -offset))
}
