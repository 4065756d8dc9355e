package analysis

import (
	"context"
	"math"
	"sort"

	"github.com/sales-advisor/backend/internal/models"
)

// MemoryEngine computes statistics in process.
// It matches DuckDBEngine: sample standard deviation and linearly interpolated quartiles.
type MemoryEngine struct{}

func NewMemoryEngine() *MemoryEngine {
	return &MemoryEngine{}
}

func (e *MemoryEngine) Name() string {
	return "memory"
}

func (e *MemoryEngine) Describe(ctx context.Context, columns []models.Column) (models.Summary, error) {
	summary := newSummary(len(columns))
	for _, col := range columns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		values := make([]float64, 0, len(col.Values))
		for _, v := range col.Values {
			if !v.Missing && v.Numeric {
				values = append(values, v.Num)
			}
		}
		describe(summary, col.Name, values)
	}
	return prune(summary), nil
}

func describe(summary models.Summary, name string, values []float64) {
	n := len(values)
	summary[models.StatCount][name] = float64(n)
	if n == 0 {
		return
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	summary[models.StatMean][name] = mean
	summary[models.StatMin][name] = sorted[0]
	summary[models.StatMax][name] = sorted[n-1]
	summary[models.StatQ1][name] = quantile(sorted, 0.25)
	summary[models.StatQ2][name] = quantile(sorted, 0.5)
	summary[models.StatQ3][name] = quantile(sorted, 0.75)

	if n > 1 {
		var ss float64
		for _, v := range sorted {
			d := v - mean
			ss += d * d
		}
		summary[models.StatStd][name] = math.Sqrt(ss / float64(n-1))
	}
}

// quantile interpolates linearly between the closest ranks of sorted values.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
