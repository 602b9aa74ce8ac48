package translation

import "context"

// Provider translates text into a target language. Any error is treated the same way.
type Provider interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}
