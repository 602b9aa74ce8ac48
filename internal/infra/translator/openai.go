package translator

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider translates text through the go-openai chat completion client.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
	sourceLang  string
}

// NewOpenAIProvider creates a provider backed by the OpenAI API or any compatible endpoint.
func NewOpenAIProvider(cfg Config) *OpenAIProvider {
	cfg = cfg.withDefaults()
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		sourceLang:  cfg.SourceLang,
	}
}

// Translate returns text rendered in targetLang.
func (p *OpenAIProvider) Translate(ctx context.Context, text, targetLang string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(targetLang, p.sourceLang)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: p.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai translate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai translate: no choices returned")
	}
	return cleanReply(resp.Choices[0].Message.Content), nil
}
