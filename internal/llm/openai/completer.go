package openai

import (
	"context"
	"errors"

	"github.com/sales-advisor/backend/internal/llm"
	"github.com/sashabaranov/go-openai"
)

const DefaultModel = openai.GPT4oMini

type Completer struct {
	client  *openai.Client
	options llm.Options
}

// NewCompleter creates an OpenAI chat completion client.
func NewCompleter(opts ...llm.Option) (*Completer, error) {
	options := llm.NewOptions(opts...)
	if options.APIKey == "" {
		return nil, llm.ErrNotConfigured
	}
	if options.Model == "" {
		options.Model = DefaultModel
	}

	cfg := openai.DefaultConfig(options.APIKey)
	if options.BaseURL != "" {
		cfg.BaseURL = options.BaseURL
	}

	return &Completer{
		client:  openai.NewClientWithConfig(cfg),
		options: options,
	}, nil
}

func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.options.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: c.options.Temperature,
		MaxTokens:   c.options.MaxTokens,
	}

	rsp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}

	if len(rsp.Choices) == 0 || len(rsp.Choices[0].Message.Content) == 0 {
		return "", errors.New("no response from OpenAI")
	}

	return rsp.Choices[0].Message.Content, nil
}
