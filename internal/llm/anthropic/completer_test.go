package anthropic

import (
	"testing"

	"github.com/sales-advisor/backend/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompleter(t *testing.T) {
	_, err := NewCompleter(llm.WithModel(DefaultModel))
	assert.ErrorIs(t, err, llm.ErrNotConfigured)

	c, err := NewCompleter(llm.WithAPIKey("k"))
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.options.Model)
	assert.Equal(t, defaultMaxTokens, c.options.MaxTokens)
}
