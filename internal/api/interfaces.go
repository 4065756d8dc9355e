// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/sales-advisor/backend/internal/models"
)

// UploadHandler handles CSV upload and analysis
type UploadHandler interface {
	HandleUploadCSV(c echo.Context) error
}

// AdviceHandler handles the generated-advice endpoints
type AdviceHandler interface {
	HandleSalesRecommendations(c echo.Context) error
	HandleSalesStrategies(c echo.Context) error
	HandleMarketingFunnels(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// TableParser turns an uploaded file into a table.
// This allows mocking in tests
type TableParser interface {
	Parse(file models.UploadedFile) (*models.Table, error)
	MaxBytes() int64
}

// TableAnalyzer summarizes a parsed table.
type TableAnalyzer interface {
	Analyze(ctx context.Context, table *models.Table) (*models.Analysis, error)
}
