// Package export renders extracted flight records as CSV, XLSX or JSON.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"logbookocr/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the header row, one column per FlightRecord field.
var columns = []string{
	"Date",
	"Tail Number",
	"From",
	"To",
	"Total Time",
	"PIC",
	"Dual Received",
	"Instrument",
	"Cross Country",
	"Night",
	"Solo",
	"Day Landings",
	"Night Landings",
	"Remarks",
}

// Columns returns a copy of the export header row.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// CSVWriter wraps csv.Writer for exporting flight records.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords writes one row per record.
func (w *CSVWriter) WriteRecords(records []domain.FlightRecord) error {
	for i := range records {
		if err := w.csv.Write(recordToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// WriteCSV writes a BOM, the header and all records to w.
func WriteCSV(w io.Writer, records []domain.FlightRecord) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := NewCSVWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteRecords(records); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func recordToRow(r *domain.FlightRecord) []string {
	return []string{
		r.Date,
		r.TailNumber,
		r.SrcIcao,
		r.DestIcao,
		formatHours(r.TotalFlightTime),
		formatHours(r.PICTime),
		formatHours(r.DualReceivedTime),
		formatHours(r.InstrumentTime),
		formatBool(r.CrossCountry),
		formatBool(r.Night),
		formatBool(r.Solo),
		strconv.Itoa(r.DayLandings),
		strconv.Itoa(r.NightLandings),
		r.Remarks,
	}
}

func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "logbook"
	}
	return s
}

// BuildFilename returns a sanitized download filename.
// Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name string, f Format) string {
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), date, f)
}
