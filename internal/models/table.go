// Package models contains domain types for the sales advisor backend.
package models

import (
	"io"

	"github.com/samber/lo"
)

// ColumnKind represents the inferred type of a table column.
type ColumnKind string

const (
	ColumnKindNumeric ColumnKind = "numeric"
	ColumnKindText    ColumnKind = "text"
)

// UploadedFile is a client upload for the duration of one request.
type UploadedFile struct {
	Name   string
	Reader io.Reader
}

// Value is a single table cell. A cell is either a number, a string, or missing.
type Value struct {
	Num     float64
	Str     string
	Numeric bool
	Missing bool
}

// NumberValue creates a numeric cell.
func NumberValue(f float64) Value {
	return Value{Num: f, Numeric: true}
}

// TextValue creates a textual cell.
func TextValue(s string) Value {
	return Value{Str: s}
}

// MissingValue creates an empty cell.
func MissingValue() Value {
	return Value{Missing: true}
}

// Interface returns the cell as a JSON-friendly value: float64, string or nil.
func (v Value) Interface() interface{} {
	switch {
	case v.Missing:
		return nil
	case v.Numeric:
		return v.Num
	default:
		return v.Str
	}
}

// Column is a named, ordered sequence of values.
type Column struct {
	Name   string     `json:"name"`
	Kind   ColumnKind `json:"kind"`
	Values []Value    `json:"-"`
}

// Table is an ordered sequence of equally long columns.
// It is built once by the parser and only read afterwards.
type Table struct {
	Columns []Column
	Rows    int
}

// ColumnNames returns the column labels in file order.
func (t *Table) ColumnNames() []string {
	return lo.Map(t.Columns, func(c Column, _ int) string { return c.Name })
}

// NumericColumns returns the columns inferred as numeric, in order.
func (t *Table) NumericColumns() []Column {
	return lo.Filter(t.Columns, func(c Column, _ int) bool { return c.Kind == ColumnKindNumeric })
}
