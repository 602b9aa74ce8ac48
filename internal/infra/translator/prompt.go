package translator

import (
	"fmt"
	"strings"
)

// Config carries the prompt and model settings shared by the LLM backed providers.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	SourceLang  string
}

const (
	defaultModel       = "gpt-4o-mini"
	defaultTemperature = 0.2
)

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.Model) == "" {
		c.Model = defaultModel
	}
	if c.Temperature <= 0 {
		c.Temperature = defaultTemperature
	}
	return c
}

func systemPrompt(targetLang, sourceLang string) string {
	target := LanguageName(targetLang)
	source := "the source language"
	if strings.TrimSpace(sourceLang) != "" {
		source = LanguageName(sourceLang)
	}
	return fmt.Sprintf(`You translate FAQ content from %s into %s.
- Keep HTML tags, attributes, URLs and email addresses exactly as they are; translate only the human readable text.
- Preserve line breaks and surrounding whitespace.
- Reply with the translated text only, without quotes, notes or Markdown code fences.`, source, target)
}

// cleanReply strips wrapping the model sometimes adds despite the prompt.
func cleanReply(reply string) string {
	out := strings.TrimSpace(reply)
	if strings.HasPrefix(out, "```") {
		out = strings.TrimPrefix(out, "```")
		if idx := strings.IndexByte(out, '\n'); idx >= 0 {
			out = out[idx+1:]
		}
		out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	}
	return strings.TrimSpace(out)
}
