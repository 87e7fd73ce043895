// Package logbook turns reconstructed logbook tables and model replies into
// typed flight records.
package logbook

import "regexp"

// Field is a canonical logbook field name. Values are the JSON names of
// domain.FlightRecord.
type Field string

const (
	FieldDate             Field = "date"
	FieldTailNumber       Field = "tailNumber"
	FieldSrcIcao          Field = "srcIcao"
	FieldDestIcao         Field = "destIcao"
	FieldTotalFlightTime  Field = "totalFlightTime"
	FieldPICTime          Field = "picTime"
	FieldDualReceivedTime Field = "dualReceivedTime"
	FieldInstrumentTime   Field = "instrumentTime"
	FieldCrossCountry     Field = "crossCountry"
	FieldNight            Field = "night"
	FieldSolo             Field = "solo"
	FieldDayLandings      Field = "dayLandings"
	FieldNightLandings    Field = "nightLandings"
	FieldRemarks          Field = "remarks"
)

// Fields lists every canonical field in record order.
var Fields = []Field{
	FieldDate,
	FieldTailNumber,
	FieldSrcIcao,
	FieldDestIcao,
	FieldTotalFlightTime,
	FieldPICTime,
	FieldDualReceivedTime,
	FieldInstrumentTime,
	FieldCrossCountry,
	FieldNight,
	FieldSolo,
	FieldDayLandings,
	FieldNightLandings,
	FieldRemarks,
}

// FieldPattern recognizes the header cell of one field.
type FieldPattern struct {
	Field   Field
	Pattern *regexp.Regexp
}

// FieldPatterns are tried in this order against every header cell; the first
// match wins. The flag fields have no column of their own: they are read
// from the remarks.
var FieldPatterns = []FieldPattern{
	{FieldDate, regexp.MustCompile(`(?i)\bdate\b`)},
	{FieldTailNumber, regexp.MustCompile(`(?i)tail|registration|\breg\b|aircraft\s*(id|ident|no\.?|number)|\bn[\s-]?number`)},
	{FieldSrcIcao, regexp.MustCompile(`(?i)\bfrom\b|origin|depart|\bdep\b|source`)},
	{FieldDestIcao, regexp.MustCompile(`(?i)\bto\b|destination|arriv|\barr\b`)},
	{FieldTotalFlightTime, regexp.MustCompile(`(?i)total|duration`)},
	{FieldPICTime, regexp.MustCompile(`(?i)\bpic\b|pilot\s*in\s*command`)},
	{FieldDualReceivedTime, regexp.MustCompile(`(?i)dual`)},
	{FieldInstrumentTime, regexp.MustCompile(`(?i)instrument|\bifr\b|\bimc\b|\bhood\b`)},
	{FieldDayLandings, regexp.MustCompile(`(?i)\bday\b.*\b(ldgs?|landings?)\b|\b(ldgs?|landings?)\b.*\bday\b|^\W*(ldgs?|landings?)\W*$`)},
	{FieldNightLandings, regexp.MustCompile(`(?i)\bnight\b.*\b(ldgs?|landings?)\b|\b(ldgs?|landings?)\b.*\bnight\b`)},
	{FieldRemarks, regexp.MustCompile(`(?i)remark|note|comment`)},
}
