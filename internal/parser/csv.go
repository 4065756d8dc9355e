package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/sales-advisor/backend/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVTableParser turns uploaded comma-separated text into a models.Table.
type CSVTableParser struct {
	maxBytes int64
}

// NewCSVTableParser creates a parser that refuses inputs larger than maxBytes.
// A non-positive maxBytes falls back to MaxUploadBytes.
func NewCSVTableParser(maxBytes int64) *CSVTableParser {
	if maxBytes <= 0 {
		maxBytes = MaxUploadBytes
	}
	return &CSVTableParser{maxBytes: maxBytes}
}

func (p *CSVTableParser) Name() string {
	return "csv_table"
}

// MaxBytes returns the input size limit.
func (p *CSVTableParser) MaxBytes() int64 {
	return p.maxBytes
}

// ValidateFilename checks that the upload has a name ending in .csv.
func ValidateFilename(name string) error {
	if name == "" {
		return ErrNoFileSelected
	}
	if !strings.HasSuffix(name, ".csv") {
		return ErrNotCSV
	}
	return nil
}

// Parse reads the whole upload and builds a rectangular table from it.
func (p *CSVTableParser) Parse(file models.UploadedFile) (*models.Table, error) {
	if err := ValidateFilename(file.Name); err != nil {
		return nil, err
	}
	if file.Reader == nil {
		return nil, &ParseError{Reason: "empty upload"}
	}

	data, err := io.ReadAll(io.LimitReader(file.Reader, p.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > p.maxBytes {
		return nil, ErrPayloadTooLarge
	}

	return ParseCSVBytes(data)
}

// ParseCSVBytes parses an in-memory CSV document.
func ParseCSVBytes(data []byte) (*models.Table, error) {
	if !utf8.Valid(data) {
		return nil, &ParseError{Reason: "file is not valid UTF-8 text"}
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{Reason: "no columns to parse from file"}
	}

	r := csv.NewReader(bytes.NewReader(data))
	// Every record must have as many fields as the header.
	r.FieldsPerRecord = 0

	header, err := r.Read()
	if err != nil {
		return nil, csvError(err)
	}
	names := uniqueHeaders(header)

	cells := make([][]string, len(names))
	rows := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		for i, field := range record {
			cells[i] = append(cells[i], field)
		}
		rows++
	}

	table := &models.Table{
		Columns: make([]models.Column, len(names)),
		Rows:    rows,
	}
	for i, name := range names {
		table.Columns[i] = InferColumn(name, cells[i])
	}
	return table, nil
}

func csvError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		reason := "malformed CSV"
		if errors.Is(csvErr.Err, csv.ErrFieldCount) {
			reason = "row has a different number of fields than the header"
		}
		return &ParseError{Line: csvErr.Line, Reason: reason, Err: csvErr.Err}
	}
	return &ParseError{Reason: "malformed CSV", Err: err}
}
