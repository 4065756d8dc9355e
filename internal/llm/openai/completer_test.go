package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sales-advisor/backend/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompleter_RequiresKey(t *testing.T) {
	_, err := NewCompleter()
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
}

func TestCompleter_Complete(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4o-mini",
			"choices":[{"index":0,"message":{"role":"assistant","content":"1. Upsell"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c, err := NewCompleter(llm.WithAPIKey("test-key"), llm.WithBaseURL(srv.URL))
	require.NoError(t, err)

	got, err := c.Complete(context.Background(), "advise me")
	require.NoError(t, err)
	assert.Equal(t, "1. Upsell", got)
	assert.Equal(t, DefaultModel, gotBody["model"])
}

func TestCompleter_CompleteErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"auth failure", http.StatusUnauthorized, `{"error":{"message":"invalid api key","type":"invalid_request_error"}}`},
		{"no choices", http.StatusOK, `{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := NewCompleter(llm.WithAPIKey("k"), llm.WithBaseURL(srv.URL))
			require.NoError(t, err)

			_, err = c.Complete(context.Background(), "prompt")
			assert.Error(t, err)
		})
	}
}
