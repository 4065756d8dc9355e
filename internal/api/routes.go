// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/sales-advisor/backend/internal/llm"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Parser        TableParser
	Analyzer      TableAnalyzer
	Completer     llm.Completer
	Provider      string
	LLMConfigured bool
	Version       string
	Logger        *slog.Logger
}

// Handlers holds all handler instances
type Handlers struct {
	Health HealthHandler
	Upload UploadHandler
	Advice AdviceHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(deps.Version, deps.Provider, deps.LLMConfigured),
		Upload: NewUploadHandler(deps.Parser, deps.Analyzer, deps.Logger),
		Advice: NewAdviceHandler(deps.Completer, deps.Logger),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	apiGroup := e.Group("/api")

	apiGroup.GET("/health", handlers.Health.HandleHealth)

	apiGroup.POST("/upload-csv", handlers.Upload.HandleUploadCSV)

	apiGroup.POST("/sales-recommendations", handlers.Advice.HandleSalesRecommendations)
	apiGroup.POST("/sales-strategies", handlers.Advice.HandleSalesStrategies)
	apiGroup.POST("/marketing-funnels", handlers.Advice.HandleMarketingFunnels)
}
