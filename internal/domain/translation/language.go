package translation

import "strings"

const maxLangLen = 35

// NormalizeLang trims a caller supplied language code and reports whether it is usable.
// Codes are kept case-sensitive because they form part of the cache key.
func NormalizeLang(raw string) (string, bool) {
	lang := strings.TrimSpace(raw)
	if lang == "" || len(lang) > maxLangLen {
		return "", false
	}
	for _, r := range lang {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return "", false
		}
	}
	return lang, true
}
