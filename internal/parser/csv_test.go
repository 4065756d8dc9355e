package parser

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sales-advisor/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upload(name, content string) models.UploadedFile {
	return models.UploadedFile{Name: name, Reader: strings.NewReader(content)}
}

func TestCSVTableParser_Parse(t *testing.T) {
	p := NewCSVTableParser(0)

	table, err := p.Parse(upload("sales.csv", "a,b\n1,2\n3,4\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, table.Rows)
	assert.Equal(t, []string{"a", "b"}, table.ColumnNames())
	require.Len(t, table.Columns, 2)
	assert.Equal(t, models.ColumnKindNumeric, table.Columns[0].Kind)
	assert.Equal(t, []models.Value{models.NumberValue(1), models.NumberValue(3)}, table.Columns[0].Values)
	assert.Equal(t, []models.Value{models.NumberValue(2), models.NumberValue(4)}, table.Columns[1].Values)
}

func TestCSVTableParser_MixedColumns(t *testing.T) {
	p := NewCSVTableParser(0)

	content := "region,revenue,units\nnorth,10.5,3\nsouth,,NA\neast,7,2\n"
	table, err := p.Parse(upload("sales.csv", content))
	require.NoError(t, err)

	assert.Equal(t, 3, table.Rows)
	assert.Equal(t, models.ColumnKindText, table.Columns[0].Kind)
	assert.Equal(t, models.ColumnKindNumeric, table.Columns[1].Kind)
	assert.Equal(t, models.ColumnKindNumeric, table.Columns[2].Kind)

	assert.Equal(t, models.TextValue("south"), table.Columns[0].Values[1])
	assert.True(t, table.Columns[1].Values[1].Missing)
	assert.True(t, table.Columns[2].Values[1].Missing)
	assert.Equal(t, 10.5, table.Columns[1].Values[0].Num)

	numeric := table.NumericColumns()
	require.Len(t, numeric, 2)
	assert.Equal(t, "revenue", numeric[0].Name)
}

func TestCSVTableParser_HeaderOnly(t *testing.T) {
	p := NewCSVTableParser(0)

	table, err := p.Parse(upload("empty.csv", "a,b,c\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Rows)
	assert.Equal(t, []string{"a", "b", "c"}, table.ColumnNames())
	assert.Empty(t, table.NumericColumns())
}

func TestCSVTableParser_DuplicateAndBlankHeaders(t *testing.T) {
	p := NewCSVTableParser(0)

	table, err := p.Parse(upload("dup.csv", "a,a,,a\n1,2,3,4\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a.1", "Unnamed: 2", "a.2"}, table.ColumnNames())
}

func TestCSVTableParser_StripsBOM(t *testing.T) {
	p := NewCSVTableParser(0)

	table, err := p.Parse(upload("bom.csv", "\ufeffid,total\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "total"}, table.ColumnNames())
}

func TestCSVTableParser_Errors(t *testing.T) {
	tests := []struct {
		name      string
		file      models.UploadedFile
		wantErr   error
		wantParse bool
	}{
		{
			name:    "empty filename",
			file:    upload("", "a\n1\n"),
			wantErr: ErrNoFileSelected,
		},
		{
			name:    "wrong extension",
			file:    upload("sales.xlsx", "a\n1\n"),
			wantErr: ErrNotCSV,
		},
		{
			name:    "uppercase extension is not accepted",
			file:    upload("sales.CSV", "a\n1\n"),
			wantErr: ErrNotCSV,
		},
		{
			name:      "empty content",
			file:      upload("sales.csv", ""),
			wantParse: true,
		},
		{
			name:      "whitespace only",
			file:      upload("sales.csv", "\n\n  \n"),
			wantParse: true,
		},
		{
			name:      "ragged rows",
			file:      upload("sales.csv", "a,b\n1,2\n3\n"),
			wantParse: true,
		},
		{
			name:      "invalid utf-8",
			file:      models.UploadedFile{Name: "sales.csv", Reader: bytes.NewReader([]byte{'a', '\n', 0xff, 0xfe, '\n'})},
			wantParse: true,
		},
		{
			name:      "nil reader",
			file:      models.UploadedFile{Name: "sales.csv"},
			wantParse: true,
		},
	}

	p := NewCSVTableParser(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := p.Parse(tt.file)
			require.Error(t, err)
			assert.Nil(t, table)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantParse {
				var pe *ParseError
				assert.True(t, errors.As(err, &pe), "expected ParseError, got %T", err)
			}
		})
	}
}

func TestCSVTableParser_RaggedRowReportsLine(t *testing.T) {
	p := NewCSVTableParser(0)

	_, err := p.Parse(upload("sales.csv", "a,b\n1,2\n3,4,5\n"))
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.Line)
	assert.Contains(t, pe.Error(), "different number of fields")
}

func TestCSVTableParser_PayloadTooLarge(t *testing.T) {
	p := NewCSVTableParser(16)

	_, err := p.Parse(upload("big.csv", "a,b\n"+strings.Repeat("1,2\n", 10)))
	assert.ErrorIs(t, err, ErrPayloadTooLarge)

	table, err := p.Parse(upload("small.csv", "a,b\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, table.Rows)
}

func TestInferColumn(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want models.ColumnKind
	}{
		{"integers", []string{"1", "2", "-3"}, models.ColumnKindNumeric},
		{"floats with blanks", []string{"1.5", "", "2e3"}, models.ColumnKindNumeric},
		{"text", []string{"1", "two"}, models.ColumnKindText},
		{"all missing", []string{"", "NA"}, models.ColumnKindText},
		{"empty", nil, models.ColumnKindText},
		{"infinity is text", []string{"1", "inf"}, models.ColumnKindText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := InferColumn("c", tt.raw)
			assert.Equal(t, tt.want, col.Kind)
			assert.Len(t, col.Values, len(tt.raw))
		})
	}
}

func TestIsMissing(t *testing.T) {
	for _, raw := range []string{"", "  ", "NA", "N/A", "#N/A", "NaN", "-nan", "null", "None", "<NA>", "#NA"} {
		assert.True(t, IsMissing(raw), raw)
	}
	for _, raw := range []string{"0", "na", "inf", "none", "-"} {
		assert.False(t, IsMissing(raw), raw)
	}
}

func TestValidateFilename(t *testing.T) {
	assert.NoError(t, ValidateFilename("report.csv"))
	assert.ErrorIs(t, ValidateFilename(""), ErrNoFileSelected)
	assert.ErrorIs(t, ValidateFilename("report.csv.txt"), ErrNotCSV)
	assert.ErrorIs(t, ValidateFilename("csv"), ErrNotCSV)
}
