package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// EmailColumn is the header a CSV upload must contain.
const EmailColumn = "email"

// ErrNoEmailColumn is returned when a CSV header has no email column.
var ErrNoEmailColumn = errors.New(`CSV must contain an "email" column`)

// Parse reads addresses from r, treating files named "*.csv" as CSV and
// anything else as one address per line.
func Parse(name string, r io.Reader) ([]string, error) {
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		return ParseCSV(r)
	}
	return ParseLines(r)
}

// ParseCSV returns the trimmed, non-empty values of the email column in row order.
// The header match is case-insensitive.
func ParseCSV(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoEmailColumn
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	col := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")), EmailColumn) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, ErrNoEmailColumn
	}

	var out []string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if col >= len(rec) {
			continue
		}
		if v := strings.TrimSpace(rec[col]); v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}

// ParseLines returns one trimmed address per non-blank line.
func ParseLines(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\uFEFF"))
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return out, nil
}
