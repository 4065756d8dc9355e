package analysis

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/sales-advisor/backend/internal/models"
	"github.com/sales-advisor/backend/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engines(t *testing.T) map[string]StatsEngine {
	t.Helper()
	return map[string]StatsEngine{
		EngineMemory: NewMemoryEngine(),
		EngineDuckDB: NewDuckDBEngine(1, "256MB", nil),
	}
}

func mustTable(t *testing.T, content string) *models.Table {
	t.Helper()
	table, err := parser.ParseCSVBytes([]byte(content))
	require.NoError(t, err)
	return table
}

func TestAnalyzer_ExampleScenario(t *testing.T) {
	for name, engine := range engines(t) {
		t.Run(name, func(t *testing.T) {
			a := NewAnalyzer(engine)

			got, err := a.Analyze(context.Background(), mustTable(t, "a,b\n1,2\n3,4\n"))
			require.NoError(t, err)

			assert.Equal(t, 2, got.TotalRows)
			assert.Equal(t, []string{"a", "b"}, got.Columns)

			assert.Equal(t, map[string]float64{"a": 2, "b": 3}, got.Summary[models.StatMean])
			assert.Equal(t, map[string]float64{"a": 2, "b": 2}, got.Summary[models.StatCount])
			assert.Equal(t, map[string]float64{"a": 1, "b": 2}, got.Summary[models.StatMin])
			assert.Equal(t, map[string]float64{"a": 3, "b": 4}, got.Summary[models.StatMax])
			assert.Equal(t, map[string]float64{"a": 1.5, "b": 2.5}, got.Summary[models.StatQ1])
			assert.Equal(t, map[string]float64{"a": 2, "b": 3}, got.Summary[models.StatQ2])
			assert.Equal(t, map[string]float64{"a": 2.5, "b": 3.5}, got.Summary[models.StatQ3])
			assert.InDelta(t, math.Sqrt2, got.Summary[models.StatStd]["a"], 1e-9)
			assert.InDelta(t, math.Sqrt2, got.Summary[models.StatStd]["b"], 1e-9)

			assert.Equal(t, models.SampleData{
				"a": {0: 1.0, 1: 3.0},
				"b": {0: 2.0, 1: 4.0},
			}, got.SampleData)
		})
	}
}

func TestAnalyzer_MixedTable(t *testing.T) {
	content := "region,revenue,units\n" +
		"north,10,1\n" +
		"south,,2\n" +
		"east,30,3\n" +
		"west,40,4\n" +
		"north,50,5\n" +
		"south,60,6\n"

	for name, engine := range engines(t) {
		t.Run(name, func(t *testing.T) {
			a := NewAnalyzer(engine)

			got, err := a.Analyze(context.Background(), mustTable(t, content))
			require.NoError(t, err)

			assert.Equal(t, 6, got.TotalRows)
			assert.Equal(t, []string{"region", "revenue", "units"}, got.Columns)

			// Text columns are not described.
			for _, stat := range models.StatNames {
				_, ok := got.Summary[stat]["region"]
				assert.False(t, ok, "region should not appear in %s", stat)
			}

			assert.Equal(t, 5.0, got.Summary[models.StatCount]["revenue"])
			assert.Equal(t, 38.0, got.Summary[models.StatMean]["revenue"])
			assert.Equal(t, 30.0, got.Summary[models.StatQ1]["revenue"])
			assert.Equal(t, 40.0, got.Summary[models.StatQ2]["revenue"])
			assert.Equal(t, 50.0, got.Summary[models.StatQ3]["revenue"])
			assert.Equal(t, 3.5, got.Summary[models.StatMean]["units"])

			// Sample keeps the first five rows, missing cells as nil.
			require.Len(t, got.SampleData["region"], DefaultSampleRows)
			assert.Equal(t, "north", got.SampleData["region"][0])
			assert.Nil(t, got.SampleData["revenue"][1])
			_, ok := got.SampleData["units"][5]
			assert.False(t, ok)
		})
	}
}

func TestAnalyzer_SingleRowOmitsStd(t *testing.T) {
	for name, engine := range engines(t) {
		t.Run(name, func(t *testing.T) {
			got, err := NewAnalyzer(engine).Analyze(context.Background(), mustTable(t, "x\n7\n"))
			require.NoError(t, err)

			assert.Equal(t, 1.0, got.Summary[models.StatCount]["x"])
			assert.Equal(t, 7.0, got.Summary[models.StatQ2]["x"])
			_, ok := got.Summary[models.StatStd]
			assert.False(t, ok)
		})
	}
}

func TestAnalyzer_AllTextYieldsEmptySummary(t *testing.T) {
	for name, engine := range engines(t) {
		t.Run(name, func(t *testing.T) {
			got, err := NewAnalyzer(engine).Analyze(context.Background(), mustTable(t, "name,city\nann,paris\nbob,rome\n"))
			require.NoError(t, err)

			assert.Empty(t, got.Summary)
			assert.NotNil(t, got.Summary)
			assert.Equal(t, 2, got.TotalRows)
		})
	}
}

func TestAnalyzer_HeaderOnly(t *testing.T) {
	got, err := NewAnalyzer(NewMemoryEngine()).Analyze(context.Background(), mustTable(t, "a,b\n"))
	require.NoError(t, err)

	assert.Equal(t, 0, got.TotalRows)
	assert.Equal(t, []string{"a", "b"}, got.Columns)
	assert.Empty(t, got.SampleData["a"])
	assert.NoError(t, got.Validate())
}

func TestAnalyzer_NoColumns(t *testing.T) {
	a := NewAnalyzer(NewMemoryEngine())

	for _, table := range []*models.Table{nil, {}} {
		_, err := a.Analyze(context.Background(), table)
		var ae *Error
		require.True(t, errors.As(err, &ae))
		assert.ErrorIs(t, err, ErrNoColumns)
		assert.Contains(t, err.Error(), "failed to analyze CSV data")
	}
}

type failingEngine struct{}

func (failingEngine) Name() string { return "failing" }

func (failingEngine) Describe(context.Context, []models.Column) (models.Summary, error) {
	return nil, errors.New("boom")
}

func TestAnalyzer_EngineFailure(t *testing.T) {
	a := NewAnalyzer(failingEngine{})

	_, err := a.Analyze(context.Background(), mustTable(t, "a\n1\n"))
	var ae *Error
	require.True(t, errors.As(err, &ae))
	assert.Contains(t, err.Error(), "boom")
}

func TestAnalyzer_WithSampleRows(t *testing.T) {
	a := NewAnalyzer(NewMemoryEngine(), WithSampleRows(2))

	got, err := a.Analyze(context.Background(), mustTable(t, "a\n1\n2\n3\n"))
	require.NoError(t, err)
	assert.Len(t, got.SampleData["a"], 2)
}

func TestAnalyzer_DoesNotMutateTable(t *testing.T) {
	table := mustTable(t, "a,b\n3,x\n1,y\n2,z\n")
	before := append([]models.Value(nil), table.Columns[0].Values...)

	_, err := NewAnalyzer(NewMemoryEngine()).Analyze(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, before, table.Columns[0].Values)
}

func TestNewEngine(t *testing.T) {
	e, err := NewEngine("", 0, "", nil)
	require.NoError(t, err)
	assert.Equal(t, EngineDuckDB, e.Name())

	e, err = NewEngine("Memory", 0, "", nil)
	require.NoError(t, err)
	assert.Equal(t, EngineMemory, e.Name())

	_, err = NewEngine("spark", 0, "", nil)
	assert.Error(t, err)
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.Equal(t, 1.75, quantile(sorted, 0.25))
	assert.Equal(t, 2.5, quantile(sorted, 0.5))
	assert.Equal(t, 3.25, quantile(sorted, 0.75))
	assert.Equal(t, 4.0, quantile([]float64{4}, 0.75))
}
