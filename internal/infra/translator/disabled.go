package translator

import (
	"context"
	"errors"
)

// ErrDisabled is returned when no translation backend is configured.
var ErrDisabled = errors.New("translation provider disabled")

// DisabledProvider fails every call so reads fall back to the original text.
type DisabledProvider struct{}

// NewDisabledProvider returns a provider that never translates.
func NewDisabledProvider() DisabledProvider {
	return DisabledProvider{}
}

// Translate always returns ErrDisabled.
func (DisabledProvider) Translate(context.Context, string, string) (string, error) {
	return "", ErrDisabled
}
