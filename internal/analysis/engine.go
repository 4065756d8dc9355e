package analysis

import (
	"fmt"
	"log/slog"
	"strings"
)

// Engine names accepted by NewEngine.
const (
	EngineDuckDB = "duckdb"
	EngineMemory = "memory"
)

// NewEngine returns the statistics engine registered under name.
func NewEngine(name string, threads int, memoryLimit string, logger *slog.Logger) (StatsEngine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineDuckDB:
		return NewDuckDBEngine(threads, memoryLimit, logger), nil
	case EngineMemory:
		return NewMemoryEngine(), nil
	default:
		return nil, fmt.Errorf("unknown statistics engine: %s", name)
	}
}
