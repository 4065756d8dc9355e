package ioc

import (
	"log/slog"

	"github.com/sales-advisor/backend/internal/analysis"
	"github.com/sales-advisor/backend/internal/config"
	"github.com/sales-advisor/backend/internal/parser"
)

func InitAnalyzer(cfg config.AnalysisConfig, logger *slog.Logger) (*analysis.Analyzer, error) {
	engine, err := analysis.NewEngine(cfg.Engine, cfg.DuckDBThreads, cfg.DuckDBMemoryLimit, logger)
	if err != nil {
		return nil, err
	}
	return analysis.NewAnalyzer(engine,
		analysis.WithSampleRows(cfg.SampleRows),
		analysis.WithLogger(logger),
	), nil
}

// InitParser caps uploads at the server body limit.
func InitParser(cfg config.ServerConfig) *parser.CSVTableParser {
	return parser.NewCSVTableParser(cfg.BodyLimitBytes)
}
