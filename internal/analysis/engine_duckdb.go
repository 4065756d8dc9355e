package analysis

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"log/slog"
	"strings"

	"github.com/marcboeker/go-duckdb"
	"github.com/sales-advisor/backend/internal/models"
)

const duckTable = "dataset"

// DuckDBEngine computes statistics with an in-memory DuckDB database.
// Each Describe call loads the numeric columns into a fresh database and
// closes it before returning, so no state survives between requests.
type DuckDBEngine struct {
	threads     int
	memoryLimit string
	logger      *slog.Logger
}

// NewDuckDBEngine creates a DuckDB-backed engine. Zero threads or an empty
// memory limit leave the DuckDB defaults in place.
func NewDuckDBEngine(threads int, memoryLimit string, logger *slog.Logger) *DuckDBEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &DuckDBEngine{
		threads:     threads,
		memoryLimit: memoryLimit,
		logger:      logger,
	}
}

func (e *DuckDBEngine) Name() string {
	return "duckdb"
}

func (e *DuckDBEngine) Describe(ctx context.Context, columns []models.Column) (models.Summary, error) {
	summary := newSummary(len(columns))
	if len(columns) == 0 {
		return summary, nil
	}

	db, err := e.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	// In-memory tables are only visible to the connection that created them.
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get connection: %w", err)
	}
	defer conn.Close()

	defs := make([]string, len(columns))
	for i := range columns {
		defs[i] = fmt.Sprintf("c%d DOUBLE", i)
	}
	if _, err := conn.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", duckTable, strings.Join(defs, ", "))); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	if err := appendColumns(conn, columns); err != nil {
		return nil, err
	}

	for i, col := range columns {
		if err := e.describeColumn(ctx, conn, i, col.Name, summary); err != nil {
			return nil, err
		}
	}

	e.logger.Debug("duckdb describe complete", "columns", len(columns))
	return prune(summary), nil
}

func (e *DuckDBEngine) open() (*sql.DB, error) {
	var pragmas []string
	if e.threads > 0 {
		pragmas = append(pragmas, fmt.Sprintf("PRAGMA threads=%d", e.threads))
	}
	if e.memoryLimit != "" {
		pragmas = append(pragmas, fmt.Sprintf("PRAGMA memory_limit='%s'", strings.ReplaceAll(e.memoryLimit, "'", "")))
	}

	connector, err := duckdb.NewConnector("", func(execer driver.ExecerContext) error {
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				return fmt.Errorf("%s: %w", pragma, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB connector: %w", err)
	}
	return sql.OpenDB(connector), nil
}

// appendColumns loads the values row by row through the native Appender API.
func appendColumns(conn *sql.Conn, columns []models.Column) error {
	rows := len(columns[0].Values)

	err := conn.Raw(func(driverConn interface{}) error {
		dConn, ok := driverConn.(*duckdb.Conn)
		if !ok {
			return fmt.Errorf("failed to cast to duckdb.Conn")
		}

		appender, err := duckdb.NewAppenderFromConn(dConn, "", duckTable)
		if err != nil {
			return fmt.Errorf("failed to create appender: %w", err)
		}
		defer appender.Close()

		row := make([]driver.Value, len(columns))
		for r := 0; r < rows; r++ {
			for c, col := range columns {
				v := col.Values[r]
				if v.Missing || !v.Numeric {
					row[c] = nil
				} else {
					row[c] = v.Num
				}
			}
			if err := appender.AppendRow(row...); err != nil {
				return fmt.Errorf("failed to append row %d: %w", r, err)
			}
		}

		return appender.Flush()
	})
	if err != nil {
		return fmt.Errorf("appender error: %w", err)
	}
	return nil
}

func (e *DuckDBEngine) describeColumn(ctx context.Context, conn *sql.Conn, idx int, name string, summary models.Summary) error {
	c := fmt.Sprintf("c%d", idx)
	query := fmt.Sprintf(`
		SELECT
			count(%[1]s),
			avg(%[1]s),
			stddev_samp(%[1]s),
			min(%[1]s),
			quantile_cont(%[1]s, 0.25),
			quantile_cont(%[1]s, 0.5),
			quantile_cont(%[1]s, 0.75),
			max(%[1]s)
		FROM %[2]s
	`, c, duckTable)

	var count int64
	var mean, std, lowest, q1, q2, q3, highest sql.NullFloat64
	if err := conn.QueryRowContext(ctx, query).Scan(&count, &mean, &std, &lowest, &q1, &q2, &q3, &highest); err != nil {
		return fmt.Errorf("describe query failed for column %q: %w", name, err)
	}

	summary[models.StatCount][name] = float64(count)
	for stat, v := range map[string]sql.NullFloat64{
		models.StatMean: mean,
		models.StatStd:  std,
		models.StatMin:  lowest,
		models.StatQ1:   q1,
		models.StatQ2:   q2,
		models.StatQ3:   q3,
		models.StatMax:  highest,
	} {
		if v.Valid {
			summary[stat][name] = v.Float64
		}
	}
	return nil
}
