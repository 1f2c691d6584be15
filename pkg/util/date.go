package util

import (
	"strconv"
	"time"
)

// All calendar math anchors at UTC midnight. Mixing midnight and
// end-of-day anchors between helpers is how off-by-one day counts creep
// in, so every function here normalizes through Midnight first.

// ParseDate parses an ISO calendar date (2006-01-02). Returns (t, true)
// if it worked. RFC3339 timestamps and unix seconds are accepted and
// truncated to their calendar day.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Midnight(t), true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return Midnight(time.Unix(ts, 0)), true
	}
	return time.Time{}, false
}

// Midnight truncates t to 00:00:00 UTC of its calendar day.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last second of t's calendar day in UTC. Series
// lookups use this so a target date matches its own close.
func EndOfDay(t time.Time) time.Time {
	return Midnight(t).Add(24*time.Hour - time.Second)
}

// DaysBetween returns whole calendar days from a to b (positive when b
// is after a).
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)).Hours() / 24)
}

// AddDays shifts t by n calendar days, keeping the midnight anchor.
func AddDays(t time.Time, n int) time.Time {
	return Midnight(t).AddDate(0, 0, n)
}
