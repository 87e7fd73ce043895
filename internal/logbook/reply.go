package logbook

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"logbookocr/internal/domain"
)

// StripCodeFences removes the ```json / ``` fencing a model may wrap its
// reply in.
func StripCodeFences(text string) string {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseReply interprets a model reply as a JSON array of flight records.
// A reply that is not valid JSON or not an array of objects is an error
// wrapping domain.ErrUninterpretableReply. Elements without a date are
// dropped.
func ParseReply(text string) ([]domain.FlightRecord, error) {
	cleaned := StripCodeFences(text)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty reply", domain.ErrUninterpretableReply)
	}

	var doc any
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v (raw: %s)", domain.ErrUninterpretableReply, err, truncate(cleaned, 500))
	}

	schema, err := compiledRecordsSchema()
	if err != nil {
		return nil, fmt.Errorf("loading reply schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUninterpretableReply, err)
	}

	items, _ := doc.([]any)
	records := make([]domain.FlightRecord, 0, len(items))
	for _, item := range items {
		m, _ := item.(map[string]any)
		rec := recordFromMap(m)
		if rec.Date == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func recordFromMap(m map[string]any) domain.FlightRecord {
	get := func(f Field) any { return m[string(f)] }
	return domain.FlightRecord{
		Date:             stringValue(get(FieldDate)),
		TailNumber:       stringValue(get(FieldTailNumber)),
		SrcIcao:          stringValue(get(FieldSrcIcao)),
		DestIcao:         stringValue(get(FieldDestIcao)),
		TotalFlightTime:  hoursValue(get(FieldTotalFlightTime)),
		PICTime:          hoursValue(get(FieldPICTime)),
		DualReceivedTime: hoursValue(get(FieldDualReceivedTime)),
		InstrumentTime:   hoursValue(get(FieldInstrumentTime)),
		CrossCountry:     boolValue(get(FieldCrossCountry)),
		Night:            boolValue(get(FieldNight)),
		Solo:             boolValue(get(FieldSolo)),
		DayLandings:      countValue(get(FieldDayLandings)),
		NightLandings:    countValue(get(FieldNightLandings)),
		Remarks:          stringValue(get(FieldRemarks)),
	}
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func hoursValue(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		return CoerceHours(t)
	default:
		return 0
	}
}

func countValue(v any) int {
	switch t := v.(type) {
	case float64:
		return int(math.Round(t))
	case string:
		return CoerceCount(t)
	default:
		return 0
	}
}

func boolValue(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "y", "x", "1":
			return true
		}
	}
	return false
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
