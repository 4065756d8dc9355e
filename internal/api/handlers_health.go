// handlers_health.go - Health check handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandlerImpl implements the HealthHandler interface
type HealthHandlerImpl struct {
	version       string
	provider      string
	llmConfigured bool
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version, provider string, llmConfigured bool) HealthHandler {
	return &HealthHandlerImpl{
		version:       version,
		provider:      provider,
		llmConfigured: llmConfigured,
	}
}

type healthResponse struct {
	Status        string `json:"status" msgpack:"status"`
	Version       string `json:"version" msgpack:"version"`
	Provider      string `json:"provider" msgpack:"provider"`
	LLMConfigured bool   `json:"llm_configured" msgpack:"llm_configured"`
}

// HandleHealth returns server health status
func (h *HealthHandlerImpl) HandleHealth(c echo.Context) error {
	return respond(c, http.StatusOK, healthResponse{
		Status:        "ok",
		Version:       h.version,
		Provider:      h.provider,
		LLMConfigured: h.llmConfigured,
	})
}
