package models

import (
	"errors"
	"fmt"
)

// Statistic names, keyed the way a dataframe "describe" reports them.
const (
	StatCount = "count"
	StatMean  = "mean"
	StatStd   = "std"
	StatMin   = "min"
	StatQ1    = "25%"
	StatQ2    = "50%"
	StatQ3    = "75%"
	StatMax   = "max"
)

// StatNames lists statistics in report order.
var StatNames = []string{StatCount, StatMean, StatStd, StatMin, StatQ1, StatQ2, StatQ3, StatMax}

// Summary maps statistic name -> column name -> value.
type Summary map[string]map[string]float64

// SampleData maps column name -> row index -> cell value (float64, string or nil).
type SampleData map[string]map[int]interface{}

// Analysis is the statistical digest of an uploaded table.
// It is returned to the client and re-submitted on recommendation requests.
type Analysis struct {
	TotalRows  int        `json:"total_rows" msgpack:"total_rows"`
	Columns    []string   `json:"columns" msgpack:"columns"`
	Summary    Summary    `json:"summary" msgpack:"summary"`
	SampleData SampleData `json:"sample_data" msgpack:"sample_data"`
}

// Validate checks a client-supplied analysis before it is used in a prompt.
func (a *Analysis) Validate() error {
	if a.TotalRows < 0 {
		return errors.New("total_rows must not be negative")
	}
	if len(a.Columns) == 0 {
		return errors.New("columns must not be empty")
	}

	known := make(map[string]struct{}, len(a.Columns))
	for _, c := range a.Columns {
		known[c] = struct{}{}
	}

	for stat, byCol := range a.Summary {
		for col := range byCol {
			if _, ok := known[col]; !ok {
				return fmt.Errorf("summary.%s references unknown column %q", stat, col)
			}
		}
	}
	for col := range a.SampleData {
		if _, ok := known[col]; !ok {
			return fmt.Errorf("sample_data references unknown column %q", col)
		}
	}
	return nil
}
