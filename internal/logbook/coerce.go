package logbook

import (
	"regexp"
	"strconv"
	"strings"

	"logbookocr/internal/blockgraph"
	"logbookocr/internal/domain"
)

var (
	nonDecimal = regexp.MustCompile(`[^0-9.]`)
	nonDigit   = regexp.MustCompile(`[^0-9]`)
)

// CoerceHours keeps only digits and decimal points and parses the rest as
// decimal hours. Anything unparsable is 0.
func CoerceHours(text string) float64 {
	cleaned := nonDecimal.ReplaceAllString(text, "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// CoerceCount keeps only digits and parses the rest as an integer count.
// Anything unparsable is 0.
func CoerceCount(text string) int {
	cleaned := nonDigit.ReplaceAllString(text, "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return v
}

// ToRecord converts one data row into a FlightRecord using the header map.
// Fields without a column read as empty text. The row is rejected when the
// date is empty or when coercion fails unexpectedly.
func ToRecord(row map[int]string, hm HeaderMap) (rec *domain.FlightRecord, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			rec, ok = nil, false
		}
	}()

	text := func(f Field) string {
		col, found := hm.Column(f)
		if !found {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	date := text(FieldDate)
	if date == "" {
		return nil, false
	}

	remarks := text(FieldRemarks)
	flags := DeriveFlags(remarks)

	return &domain.FlightRecord{
		Date:             date,
		TailNumber:       text(FieldTailNumber),
		SrcIcao:          text(FieldSrcIcao),
		DestIcao:         text(FieldDestIcao),
		TotalFlightTime:  CoerceHours(text(FieldTotalFlightTime)),
		PICTime:          CoerceHours(text(FieldPICTime)),
		DualReceivedTime: CoerceHours(text(FieldDualReceivedTime)),
		InstrumentTime:   CoerceHours(text(FieldInstrumentTime)),
		CrossCountry:     flags.CrossCountry,
		Night:            flags.Night,
		Solo:             flags.Solo,
		DayLandings:      CoerceCount(text(FieldDayLandings)),
		NightLandings:    CoerceCount(text(FieldNightLandings)),
		Remarks:          remarks,
	}, true
}

// TableRecords runs header detection on a table and converts every row below
// the header. Rejected rows are skipped.
func TableRecords(t blockgraph.Table) []domain.FlightRecord {
	headerRow, hm := FindHeader(t)
	var records []domain.FlightRecord
	for _, r := range t.RowIndices() {
		if r <= headerRow {
			continue
		}
		if rec, ok := ToRecord(t.Row(r), hm); ok {
			records = append(records, *rec)
		}
	}
	return records
}
