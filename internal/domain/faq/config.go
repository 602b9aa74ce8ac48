package faq

const (
	defaultMaxQuestionLen = 1000
	defaultMaxAnswerLen   = 20000
)

// Config holds runtime knobs for the FAQ service.
type Config struct {
	// MaxConcurrency caps in-flight record translations per list request. Zero means unbounded.
	MaxConcurrency int
	MaxQuestionLen int
	MaxAnswerLen   int
}

func (c Config) withDefaults() Config {
	if c.MaxQuestionLen <= 0 {
		c.MaxQuestionLen = defaultMaxQuestionLen
	}
	if c.MaxAnswerLen <= 0 {
		c.MaxAnswerLen = defaultMaxAnswerLen
	}
	return c
}
