package logbook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildRecordsJSONSchema returns the JSON schema a model reply must satisfy:
// an array of objects whose known keys carry loosely typed values. Values
// are coerced after validation, so numeric strings and nulls are accepted.
func BuildRecordsJSONSchema() map[string]any {
	text := map[string]any{"type": []string{"string", "number", "null"}}
	number := map[string]any{"type": []string{"number", "string", "null"}}
	flag := map[string]any{"type": []string{"boolean", "string", "number", "null"}}

	props := map[string]any{
		string(FieldDate):             text,
		string(FieldTailNumber):       text,
		string(FieldSrcIcao):          text,
		string(FieldDestIcao):         text,
		string(FieldTotalFlightTime):  number,
		string(FieldPICTime):          number,
		string(FieldDualReceivedTime): number,
		string(FieldInstrumentTime):   number,
		string(FieldCrossCountry):     flag,
		string(FieldNight):            flag,
		string(FieldSolo):             flag,
		string(FieldDayLandings):      number,
		string(FieldNightLandings):    number,
		string(FieldRemarks):          text,
	}

	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":       "object",
			"properties": props,
		},
	}
}

var (
	recordsSchemaOnce sync.Once
	recordsSchema     *jsonschema.Schema
	recordsSchemaErr  error
)

func compiledRecordsSchema() (*jsonschema.Schema, error) {
	recordsSchemaOnce.Do(func() {
		b, err := json.Marshal(BuildRecordsJSONSchema())
		if err != nil {
			recordsSchemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("records.json", bytes.NewReader(b)); err != nil {
			recordsSchemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		recordsSchema, recordsSchemaErr = compiler.Compile("records.json")
	})
	return recordsSchema, recordsSchemaErr
}
