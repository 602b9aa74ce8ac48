package translator

import (
	"context"
	"errors"
	"fmt"

	"github.com/yanqian/faq-translate/internal/infra/llm/chatgpt"
)

// ChatGPTProvider translates text through the in-house ChatGPT HTTP client.
type ChatGPTProvider struct {
	client      *chatgpt.Client
	model       string
	temperature float32
	sourceLang  string
}

// NewChatGPTProvider wires a chatgpt.Client into the translation provider contract.
func NewChatGPTProvider(client *chatgpt.Client, cfg Config) *ChatGPTProvider {
	cfg = cfg.withDefaults()
	return &ChatGPTProvider{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		sourceLang:  cfg.SourceLang,
	}
}

// Translate returns text rendered in targetLang.
func (p *ChatGPTProvider) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if p.client == nil {
		return "", errors.New("chatgpt client not configured")
	}
	resp, err := p.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model: p.model,
		Messages: []chatgpt.Message{
			{Role: "system", Content: systemPrompt(targetLang, p.sourceLang)},
			{Role: "user", Content: text},
		},
		Temperature: p.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chatgpt translate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chatgpt translate: no choices returned")
	}
	return cleanReply(resp.Choices[0].Message.Content), nil
}
