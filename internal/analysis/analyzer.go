// Package analysis computes the statistical digest of an uploaded table.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sales-advisor/backend/internal/models"
)

// DefaultSampleRows is the number of leading rows included in the sample.
const DefaultSampleRows = 5

// ErrNoColumns is returned for tables without any column.
var ErrNoColumns = errors.New("table has no columns")

// Error wraps any failure raised while summarizing a table.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to analyze CSV data: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatsEngine computes descriptive statistics for numeric columns.
type StatsEngine interface {
	Name() string
	// Describe returns statistic name -> column name -> value for the given columns.
	Describe(ctx context.Context, columns []models.Column) (models.Summary, error)
}

// Analyzer builds an Analysis from a Table.
type Analyzer struct {
	engine     StatsEngine
	sampleRows int
	logger     *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithSampleRows overrides how many rows are copied into the sample.
func WithSampleRows(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.sampleRows = n
		}
	}
}

// WithLogger sets the logger used for analysis diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnalyzer creates an Analyzer backed by the given statistics engine.
func NewAnalyzer(engine StatsEngine, opts ...Option) *Analyzer {
	a := &Analyzer{
		engine:     engine,
		sampleRows: DefaultSampleRows,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze summarizes the table. The table is only read.
func (a *Analyzer) Analyze(ctx context.Context, table *models.Table) (*models.Analysis, error) {
	if table == nil || len(table.Columns) == 0 {
		return nil, &Error{Err: ErrNoColumns}
	}

	summary, err := a.engine.Describe(ctx, table.NumericColumns())
	if err != nil {
		a.logger.Error("statistics engine failed", "engine", a.engine.Name(), "error", err)
		return nil, &Error{Err: err}
	}

	analysis := &models.Analysis{
		TotalRows:  table.Rows,
		Columns:    table.ColumnNames(),
		Summary:    summary,
		SampleData: sample(table, a.sampleRows),
	}

	a.logger.Debug("table analyzed",
		"rows", analysis.TotalRows,
		"columns", len(analysis.Columns),
		"numeric_columns", countNumeric(summary),
	)
	return analysis, nil
}

func sample(table *models.Table, n int) models.SampleData {
	out := make(models.SampleData, len(table.Columns))
	for _, col := range table.Columns {
		rows := make(map[int]interface{}, n)
		for i := 0; i < n && i < len(col.Values); i++ {
			rows[i] = col.Values[i].Interface()
		}
		out[col.Name] = rows
	}
	return out
}

func countNumeric(s models.Summary) int {
	return len(s[models.StatCount])
}

// newSummary returns a summary with every statistic key present only when
// at least one column is described; an all-text table yields an empty map.
func newSummary(columns int) models.Summary {
	s := make(models.Summary)
	if columns == 0 {
		return s
	}
	for _, name := range models.StatNames {
		s[name] = make(map[string]float64, columns)
	}
	return s
}

// prune drops statistic keys that ended up without any column.
func prune(s models.Summary) models.Summary {
	for name, byCol := range s {
		if len(byCol) == 0 {
			delete(s, name)
		}
	}
	return s
}
