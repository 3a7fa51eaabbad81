package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/doziebest/email-verifier-application/internal/verify/domain"
)

// Format selects an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat accepts "csv" or "json" (case-insensitive). Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported export format: %q", s)
}

// ContentType returns the MIME type of the encoding.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/csv"
}

// Write encodes verdicts to w in format f.
func Write(w io.Writer, f Format, verdicts []domain.Verdict) error {
	if f == FormatJSON {
		return WriteJSON(w, verdicts)
	}
	return WriteCSV(w, verdicts)
}

// WriteCSV writes a header row followed by one row per verdict, using
// domain.ExportHeader column order.
func WriteCSV(w io.Writer, verdicts []domain.Verdict) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.ExportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, v := range verdicts {
		if err := cw.Write(v.ExportRow()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes verdicts as an indented JSON array.
func WriteJSON(w io.Writer, verdicts []domain.Verdict) error {
	if verdicts == nil {
		verdicts = []domain.Verdict{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(verdicts); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
