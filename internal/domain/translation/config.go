package translation

import "time"

// Config holds runtime knobs for the translation service.
type Config struct {
	CacheTTL time.Duration
	// Timeout bounds a single provider call. Zero disables the bound.
	Timeout time.Duration
}
