package translation

import (
	"context"
	"time"
)

const keyPrefix = "translation"

// Cache stores translated text keyed by the exact source text and target language.
// Implementations enforce expiry themselves and must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, text, lang string) (string, bool, error)
	Set(ctx context.Context, text, lang, translated string, ttl time.Duration) error
}

// CacheKey builds the storage key for a (text, lang) pair.
func CacheKey(text, lang string) string {
	return keyPrefix + ":" + text + ":" + lang
}
