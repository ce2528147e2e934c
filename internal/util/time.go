package util

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// WindowFromHours returns the [since, until) window ending at now.
func WindowFromHours(now time.Time, hours float64) (time.Time, time.Time, error) {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("hours must be a positive number, got %v", hours)
	}
	if hours > float64(math.MaxInt64)/float64(time.Hour) {
		return time.Time{}, time.Time{}, fmt.Errorf("hours %v is too large", hours)
	}
	span := time.Duration(hours * float64(time.Hour))
	if span <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("hours %v is too small to form a window", hours)
	}
	return now.Add(-span), now, nil
}

// UnixNanoString formats t the way Loki expects start/end query parameters.
func UnixNanoString(t time.Time) string {
	return strconv.FormatInt(t.UnixNano(), 10)
}

// ParseUnixNano parses a Loki nanosecond epoch timestamp.
func ParseUnixNano(s string) (time.Time, error) {
	ns, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid nanosecond timestamp %q: %w", s, err)
	}
	return time.Unix(0, ns).UTC(), nil
}
