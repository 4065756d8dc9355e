// Package llm defines the completion client used to turn prompts into text.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Completer sends a prompt to a generative-text service and returns its output.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned by completers built without usable credentials.
var ErrNotConfigured = errors.New("completion service is not configured")

// ErrEmptyResponse is returned when the provider answered without any text.
var ErrEmptyResponse = errors.New("empty response from completion service")

// UpstreamError wraps every failure of the completion service.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s completion failed: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// unavailable fails every call; it stands in when startup configuration failed.
type unavailable struct {
	provider string
	reason   error
}

// Unavailable returns a Completer whose calls always fail with an UpstreamError.
func Unavailable(provider string, reason error) Completer {
	if reason == nil {
		reason = ErrNotConfigured
	}
	return &unavailable{provider: provider, reason: reason}
}

func (u *unavailable) Complete(context.Context, string) (string, error) {
	return "", &UpstreamError{Provider: u.provider, Err: u.reason}
}

// guarded wraps provider errors and logs each call outcome.
type guarded struct {
	provider string
	next     Completer
	logger   *slog.Logger
}

// Guard makes every failure of next an *UpstreamError and logs it.
// No retry is attempted.
func Guard(provider string, next Completer, logger *slog.Logger) Completer {
	if logger == nil {
		logger = slog.Default()
	}
	return &guarded{provider: provider, next: next, logger: logger}
}

func (g *guarded) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := g.next.Complete(ctx, prompt)
	if err == nil && text == "" {
		err = ErrEmptyResponse
	}
	if err != nil {
		var upstream *UpstreamError
		if !errors.As(err, &upstream) {
			upstream = &UpstreamError{Provider: g.provider, Err: err}
		}
		g.logger.Error("error generating response",
			"provider", g.provider,
			"prompt_chars", len(prompt),
			"duration", time.Since(start),
			"error", upstream.Err,
		)
		return "", upstream
	}

	g.logger.Debug("completion generated",
		"provider", g.provider,
		"prompt_chars", len(prompt),
		"response_chars", len(text),
		"duration", time.Since(start),
	)
	return text, nil
}
