package logbook

// recordSchemaInstructions describes the reply format shared by the image and
// table-text prompts.
const recordSchemaInstructions = `Return ONLY a JSON array of objects with the following keys:
- date (string, YYYY-MM-DD)
- tailNumber (string)
- srcIcao (string, 4-letter airport code)
- destIcao (string, 4-letter airport code)
- totalFlightTime (float)
- picTime (float)
- dualReceivedTime (float)
- instrumentTime (float)
- crossCountry (boolean, parse from remarks if present)
- night (boolean, parse from remarks if present)
- solo (boolean, parse from remarks if present)
- dayLandings (int)
- nightLandings (int)
- remarks (string)

For boolean flags: search the remarks/notes for keywords like 'cross-country', 'xc', 'night', 'nvg', or 'solo'.
If a field is empty or unreadable, use null or 0 for numbers, false for booleans, and empty string for strings.
Skip rows that are page totals or carried-forward totals.
Ensure the JSON is valid. Do not wrap it in markdown code fences.`

// GenerativePrompt is the instruction sent alongside a logbook page image.
func GenerativePrompt() string {
	return `You are reading a scanned page of a pilot logbook. Extract every flight entry on the page into a JSON array of flight records, one object per logbook row.

` + recordSchemaInstructions
}

// HybridPrompt is the instruction sent with the comma-delimited text of the
// tables detected on a logbook page.
func HybridPrompt(tablesCSV string) string {
	return `I have extracted the following table data from a pilot logbook using OCR.
Please parse this data into a JSON array of flight records.

CSV Data:
` + tablesCSV + `

` + recordSchemaInstructions
}
