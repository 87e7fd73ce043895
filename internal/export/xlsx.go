package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"logbookocr/internal/domain"
)

const sheetName = "Logbook"

// WriteXLSX writes the records as a single-sheet workbook. Hours and landing
// counts are stored as numbers.
func WriteXLSX(w io.Writer, records []domain.FlightRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	for i, h := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("xlsx header: %w", err)
		}
	}

	for i := range records {
		r := &records[i]
		row := i + 2
		values := []any{
			r.Date,
			r.TailNumber,
			r.SrcIcao,
			r.DestIcao,
			r.TotalFlightTime,
			r.PICTime,
			r.DualReceivedTime,
			r.InstrumentTime,
			formatBool(r.CrossCountry),
			formatBool(r.Night),
			formatBool(r.Solo),
			r.DayLandings,
			r.NightLandings,
			r.Remarks,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("xlsx row %d: %w", row, err)
			}
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 12) // date
	_ = f.SetColWidth(sheetName, "B", "D", 12) // tail, route
	_ = f.SetColWidth(sheetName, "E", "M", 10) // times, flags, landings
	_ = f.SetColWidth(sheetName, "N", "N", 48) // remarks

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
