// Package export writes voter records as CSV or JSON downloads.
package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/khalidmahamud/voter-info-web/internal/errors"
	"github.com/khalidmahamud/voter-info-web/model"
)

// Supported formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// DefaultPrefix names exported files.
const DefaultPrefix = "voter_data"

// csvHeader is the CSV column header row.
var csvHeader = []string{
	"Serial No",
	"Name",
	"Voter ID",
	"Father's Name",
	"Mother's Name",
	"Occupation",
	"Date of Birth",
	"Address",
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	if format == FormatJSON {
		return "application/json; charset=utf-8"
	}
	return "text/csv; charset=utf-8"
}

// ParseFormat validates a requested format. Empty selects CSV.
func ParseFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", errors.NewValidationError("format", fmt.Sprintf("unsupported export format '%s', use csv or json", format))
	}
}

// Write exports records in the given format.
func Write(w io.Writer, format string, records []model.Record) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}
	if f == FormatJSON {
		return WriteJSON(w, records)
	}
	return WriteCSV(w, records)
}

// WriteCSV writes a header row followed by one row per record with every
// field quoted. Rows are separated by a single newline.
func WriteCSV(w io.Writer, records []model.Record) error {
	if len(records) == 0 {
		return errors.ErrNoRecords
	}

	bw := bufio.NewWriter(w)
	header := csv.NewWriter(bw)
	if err := header.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	header.Flush()
	if err := header.Error(); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for i := range records {
		r := &records[i]
		if i > 0 {
			_ = bw.WriteByte('\n')
		}
		writeQuoted(bw, []string{
			r.SerialNo, r.Name, r.VoterNo, r.FatherName,
			r.MotherName, r.Occupation, r.DateOfBirth, r.Address,
		})
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	return nil
}

// writeQuoted writes a CSV row with every field quoted, which csv.Writer
// cannot be asked to do.
func writeQuoted(bw *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			_ = bw.WriteByte(',')
		}
		_ = bw.WriteByte('"')
		_, _ = bw.WriteString(strings.ReplaceAll(f, `"`, `""`))
		_ = bw.WriteByte('"')
	}
}

// WriteJSON writes the records as an indented JSON array.
func WriteJSON(w io.Writer, records []model.Record) error {
	if len(records) == 0 {
		return errors.ErrNoRecords
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	return nil
}

// Filename returns "<prefix>_YYYY-MM-DDTHH-MM-SS.<format>" with the UTC time.
func Filename(prefix, format string, at time.Time) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s_%s.%s", prefix, at.UTC().Format("2006-01-02T15-04-05"), format)
}
