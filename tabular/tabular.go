// Package tabular reads and writes roster records as delimited text or as an
// Excel workbook. Records are header first, one record per student.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format names a supported file format.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMalformed         = errors.New("malformed roster file")
)

// ParseFormat accepts "csv" or "xlsx" in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case CSV, "":
		return CSV, nil
	case XLSX:
		return XLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromFilename picks the format from a file extension, defaulting to CSV.
func FormatFromFilename(name string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	return ParseFormat(ext)
}

// ContentType is the MIME type used when serving a file of this format.
func (f Format) ContentType() string {
	if f == XLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Read decodes all records of r in format f.
func Read(r io.Reader, f Format) ([][]string, error) {
	switch f {
	case CSV:
		return ReadCSV(r)
	case XLSX:
		return ReadXLSX(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// Write encodes records to w in format f.
func Write(w io.Writer, f Format, records [][]string) error {
	switch f {
	case CSV:
		return WriteCSV(w, records)
	case XLSX:
		return WriteXLSX(w, records)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// ReadCSV reads comma separated records. Records may have differing lengths.
func ReadCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read csv: %w", ErrMalformed, err)
	}
	return records, nil
}

// WriteCSV writes records with "\n" line endings. A record made of a single
// empty field is written as `""` because readers skip blank lines.
func WriteCSV(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	for _, rec := range records {
		if len(rec) == 1 && rec[0] == "" {
			cw.Flush()
			if err := cw.Error(); err != nil {
				return fmt.Errorf("failed to write csv: %w", err)
			}
			if _, err := io.WriteString(w, "\"\"\n"); err != nil {
				return fmt.Errorf("failed to write csv: %w", err)
			}
			continue
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func isBlank(rec []string) bool {
	for _, field := range rec {
		if field != "" {
			return false
		}
	}
	return true
}
