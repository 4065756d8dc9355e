package gemini

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sales-advisor/backend/internal/llm"
	"google.golang.org/api/option"
)

const DefaultModel = "gemini-2.0-flash"

type Completer struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewCompleter creates a Gemini client with the given API key.
func NewCompleter(ctx context.Context, opts ...llm.Option) (*Completer, error) {
	options := llm.NewOptions(opts...)
	if options.APIKey == "" {
		return nil, llm.ErrNotConfigured
	}
	if options.Model == "" {
		options.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(options.APIKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(options.Model)
	if options.Temperature > 0 {
		model.SetTemperature(options.Temperature)
	}
	if options.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(options.MaxTokens))
	}

	return &Completer{
		client: client,
		model:  model,
	}, nil
}

func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return parseResponse(resp)
}

func (c *Completer) Close() error {
	return c.client.Close()
}

func parseResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response from Gemini")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		text, ok := part.(genai.Text)
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(string(text))
	}
	return b.String(), nil
}
