package util

import "time"

// Clock returns the current time. Stores take one so tests can pin timestamps.
type Clock func() time.Time

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}
