package anthropic

import (
	"context"
	"errors"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sales-advisor/backend/internal/llm"
)

const (
	DefaultModel     = "claude-3-5-haiku-latest"
	defaultMaxTokens = 2048
)

type Completer struct {
	client  *anthropic.Client
	options llm.Options
}

// NewCompleter creates an Anthropic messages client.
func NewCompleter(opts ...llm.Option) (*Completer, error) {
	options := llm.NewOptions(opts...)
	if options.APIKey == "" {
		return nil, llm.ErrNotConfigured
	}
	if options.Model == "" {
		options.Model = DefaultModel
	}
	if options.MaxTokens <= 0 {
		options.MaxTokens = defaultMaxTokens
	}

	requestOpts := []anthropicopt.RequestOption{
		anthropicopt.WithAPIKey(options.APIKey),
	}
	if options.BaseURL != "" {
		requestOpts = append(requestOpts, anthropicopt.WithBaseURL(options.BaseURL))
	}
	client := anthropic.NewClient(requestOpts...)

	return &Completer{
		client:  &client,
		options: options,
	}, nil
}

func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	req := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.options.Model),
		MaxTokens: int64(c.options.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if c.options.Temperature > 0 {
		req.Temperature = anthropic.Float(float64(c.options.Temperature))
	}

	rsp, err := c.client.Messages.New(ctx, req)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, content := range rsp.Content {
		if text, ok := content.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}

	result := b.String()
	if len(result) == 0 {
		return "", errors.New("no response from Anthropic")
	}

	return result, nil
}
