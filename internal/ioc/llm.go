// Package ioc builds the long-lived components from configuration.
package ioc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sales-advisor/backend/internal/config"
	"github.com/sales-advisor/backend/internal/llm"
	"github.com/sales-advisor/backend/internal/llm/anthropic"
	"github.com/sales-advisor/backend/internal/llm/gemini"
	"github.com/sales-advisor/backend/internal/llm/openai"
)

// LLM is the completion client chosen at startup.
type LLM struct {
	llm.Completer
	Provider   string
	Configured bool

	closeFn func() error
}

// Close releases the provider client, if it holds any connection.
func (l *LLM) Close() error {
	if l.closeFn == nil {
		return nil
	}
	return l.closeFn()
}

// InitCompleter builds the configured provider once.
// A missing key or a construction failure is logged and yields a completer
// whose every call fails, so the server still starts.
func InitCompleter(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) *LLM {
	if logger == nil {
		logger = slog.Default()
	}

	opts := []llm.Option{
		llm.WithAPIKey(cfg.APIKey),
		llm.WithBaseURL(cfg.BaseURL),
		llm.WithModel(cfg.Model),
		llm.WithTemperature(cfg.Temperature),
		llm.WithMaxTokens(cfg.MaxTokens),
	}

	out := &LLM{Provider: cfg.Provider}
	var (
		next llm.Completer
		err  error
	)
	switch cfg.Provider {
	case config.ProviderGemini:
		var c *gemini.Completer
		if c, err = gemini.NewCompleter(ctx, opts...); err == nil {
			next, out.closeFn = c, c.Close
		}
	case config.ProviderOpenAI:
		next, err = openai.NewCompleter(opts...)
	case config.ProviderAnthropic:
		next, err = anthropic.NewCompleter(opts...)
	default:
		err = fmt.Errorf("unknown llm provider: %q", cfg.Provider)
	}

	if err != nil {
		logger.Error("completion service unavailable", "provider", cfg.Provider, "error", err)
		out.Completer = llm.Unavailable(cfg.Provider, err)
		return out
	}

	logger.Info("completion service configured", "provider", cfg.Provider, "model", cfg.Model)
	out.Completer = llm.Guard(cfg.Provider, next, logger)
	out.Configured = true
	return out
}
