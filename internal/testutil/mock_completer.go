// mock_completer.go - Mock completion client for testing
package testutil

import (
	"context"
	"sync"
)

// MockCompleter implements llm.Completer for testing.
// It returns Response or Err and records every prompt it receives.
type MockCompleter struct {
	Response string
	Err      error

	mu      sync.Mutex
	prompts []string
	ctxErrs []error
}

// NewMockCompleter creates a mock that answers every prompt with response
func NewMockCompleter(response string) *MockCompleter {
	return &MockCompleter{Response: response}
}

// NewFailingCompleter creates a mock whose calls always fail with err
func NewFailingCompleter(err error) *MockCompleter {
	return &MockCompleter{Err: err}
}

func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.ctxErrs = append(m.ctxErrs, ctx.Err())
	m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Prompts returns a copy of the prompts received so far
func (m *MockCompleter) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Calls returns the number of Complete calls
func (m *MockCompleter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// ContextErrors returns ctx.Err() as observed at the start of each call
func (m *MockCompleter) ContextErrors() []error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]error(nil), m.ctxErrs...)
}
