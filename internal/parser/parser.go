package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sales-advisor/backend/internal/models"
)

// MaxUploadBytes is the largest payload accepted for parsing (25 MiB).
const MaxUploadBytes int64 = 25 << 20

var (
	// ErrNoFileSelected is returned when the uploaded file has no name.
	ErrNoFileSelected = errors.New("no file selected")
	// ErrNotCSV is returned when the uploaded file name lacks the .csv extension.
	ErrNotCSV = errors.New("file is not a CSV file")
	// ErrPayloadTooLarge is returned when the input exceeds the configured size.
	ErrPayloadTooLarge = errors.New("payload too large")
)

// ParseError describes content that cannot be turned into a table.
type ParseError struct {
	Line   int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// missingMarkers are cell contents treated as "no value".
var missingMarkers = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"#N/A": {},
	"NaN":  {},
	"nan":  {},
	"-NaN": {},
	"-nan": {},
	"null": {},
	"NULL": {},
	"None": {},
	"<NA>": {},
	"#NA":  {},
}

// IsMissing reports whether a raw cell denotes a missing value.
func IsMissing(raw string) bool {
	_, ok := missingMarkers[strings.TrimSpace(raw)]
	return ok
}

// ParseNumber parses a raw cell as a finite float.
func ParseNumber(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// InferColumn builds a typed column from raw cells.
// A column is numeric when it has at least one value and every present value parses as a number.
func InferColumn(name string, raw []string) models.Column {
	numeric := false
	for _, s := range raw {
		if IsMissing(s) {
			continue
		}
		if _, ok := ParseNumber(s); !ok {
			numeric = false
			break
		}
		numeric = true
	}

	values := make([]models.Value, len(raw))
	kind := models.ColumnKindText
	if numeric {
		kind = models.ColumnKindNumeric
	}
	for i, s := range raw {
		switch {
		case IsMissing(s):
			values[i] = models.MissingValue()
		case numeric:
			f, _ := ParseNumber(s)
			values[i] = models.NumberValue(f)
		default:
			values[i] = models.TextValue(s)
		}
	}

	return models.Column{Name: name, Kind: kind, Values: values}
}

// uniqueHeaders names blank headers "Unnamed: <i>" and suffixes duplicates with ".1", ".2", ...
func uniqueHeaders(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := h
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			candidate := fmt.Sprintf("%s.%d", name, n)
			for {
				if _, taken := seen[candidate]; !taken {
					break
				}
				n++
				candidate = fmt.Sprintf("%s.%d", name, n)
			}
			seen[name] = n + 1
			name = candidate
		}
		seen[name] = 1
		out[i] = name
	}
	return out
}
