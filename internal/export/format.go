package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"logbookocr/internal/domain"
)

// Format is an output rendering of an extraction result.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a user-supplied name onto a Format. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", s)
	}
}

// ContentType returns the MIME type of the rendering.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json; charset=utf-8"
	}
}

// Write renders result to w. JSON keeps the message; CSV and XLSX carry the
// records only.
func Write(w io.Writer, f Format, result *domain.ExtractionResult) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, result.Records)
	case FormatXLSX:
		return WriteXLSX(w, result.Records)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
}
