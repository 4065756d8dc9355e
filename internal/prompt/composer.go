package prompt

import (
	"encoding/json"
	"fmt"

	"github.com/sales-advisor/backend/internal/analysis"
	"github.com/sales-advisor/backend/internal/models"
)

const contextIntro = "Based on the following data analysis:"

// Compose merges a template with an optional analysis.
// Without an analysis the template text is returned unchanged. JSON object
// keys are emitted in sorted order, so equal inputs give byte-identical prompts.
func Compose(t Template, a *models.Analysis) (string, error) {
	if a == nil {
		return t.Text, nil
	}

	block, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", &analysis.Error{Err: fmt.Errorf("serializing analysis: %w", err)}
	}

	return fmt.Sprintf("%s\n%s\n\n%s", contextIntro, block, t.Text), nil
}
