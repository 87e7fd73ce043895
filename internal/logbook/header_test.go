package logbook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logbookocr/internal/blockgraph"
	"logbookocr/internal/blockgraph/blockgraphtest"
	"logbookocr/internal/logbook"
)

func tableOf(rows ...[]string) blockgraph.Table {
	t := blockgraph.Table{Index: 1, Rows: map[int]map[int]string{}}
	for r, row := range rows {
		cells := map[int]string{}
		for c, text := range row {
			cells[c+1] = text
		}
		t.Rows[r+1] = cells
	}
	return t
}

func TestMatchHeaderRow_CommonLabels(t *testing.T) {
	tbl := tableOf([]string{"Date", "Tail Number", "From", "To", "Total", "PIC", "Night Ldg"})

	hm := logbook.MatchHeaderRow(tbl, 1)

	assert.Equal(t, logbook.HeaderMap{
		logbook.FieldDate:            1,
		logbook.FieldTailNumber:      2,
		logbook.FieldSrcIcao:         3,
		logbook.FieldDestIcao:        4,
		logbook.FieldTotalFlightTime: 5,
		logbook.FieldPICTime:         6,
		logbook.FieldNightLandings:   7,
	}, hm)
}

func TestMatchHeaderRow_AlternateLabels(t *testing.T) {
	tbl := tableOf([]string{"DATE", "Aircraft Ident", "Origin", "Destination", "Duration", "Dual Received", "Instrument", "Day Landings", "Remarks"})

	hm := logbook.MatchHeaderRow(tbl, 1)

	assert.Equal(t, 1, hm[logbook.FieldDate])
	assert.Equal(t, 2, hm[logbook.FieldTailNumber])
	assert.Equal(t, 3, hm[logbook.FieldSrcIcao])
	assert.Equal(t, 4, hm[logbook.FieldDestIcao])
	assert.Equal(t, 5, hm[logbook.FieldTotalFlightTime])
	assert.Equal(t, 6, hm[logbook.FieldDualReceivedTime])
	assert.Equal(t, 7, hm[logbook.FieldInstrumentTime])
	assert.Equal(t, 8, hm[logbook.FieldDayLandings])
	assert.Equal(t, 9, hm[logbook.FieldRemarks])
}

func TestMatchHeaderRow_FirstColumnWinsDuplicateField(t *testing.T) {
	tbl := tableOf([]string{"Date", "Total", "Total Duration"})

	hm := logbook.MatchHeaderRow(tbl, 1)

	assert.Equal(t, 2, hm[logbook.FieldTotalFlightTime])
	assert.Len(t, hm, 2)
}

func TestMatchHeaderRow_SkipsEmptyCells(t *testing.T) {
	tbl := tableOf([]string{"", "Date", ""})

	hm := logbook.MatchHeaderRow(tbl, 1)

	assert.Equal(t, logbook.HeaderMap{logbook.FieldDate: 2}, hm)
}

func TestFindHeader_SkipsTitleRows(t *testing.T) {
	tbl := tableOf(
		[]string{"PILOT LOGBOOK", "", ""},
		[]string{"Date", "Tail", "Total"},
		[]string{"2025-01-15", "N12345", "1.5"},
	)

	row, hm := logbook.FindHeader(tbl)

	assert.Equal(t, 2, row)
	assert.Len(t, hm, 3)
}

func TestFindHeader_FallsBackToFirstRow(t *testing.T) {
	tbl := tableOf(
		[]string{"Date", "Aircraft"},
		[]string{"2025-01-15", "N12345"},
	)

	row, hm := logbook.FindHeader(tbl)

	assert.Equal(t, 1, row)
	assert.Equal(t, logbook.HeaderMap{logbook.FieldDate: 1}, hm)
}

func TestFindHeader_EmptyTable(t *testing.T) {
	row, hm := logbook.FindHeader(blockgraph.Table{Rows: map[int]map[int]string{}})

	assert.Equal(t, 0, row)
	assert.Empty(t, hm)
}

func TestTableRecords_EndToEnd(t *testing.T) {
	g := blockgraphtest.Graph([][]string{
		{"Date", "Tail Number", "From", "To", "Total", "PIC", "Night Ldg"},
		{"2025-01-15", "N12345", "KSMO", "KSAN", "1.5", "1.5", "0"},
	})
	tables := blockgraph.ReconstructAll(g)
	require.Len(t, tables, 1)

	records := logbook.TableRecords(tables[0])

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "2025-01-15", rec.Date)
	assert.Equal(t, "N12345", rec.TailNumber)
	assert.Equal(t, "KSMO", rec.SrcIcao)
	assert.Equal(t, "KSAN", rec.DestIcao)
	assert.Equal(t, 1.5, rec.TotalFlightTime)
	assert.Equal(t, 1.5, rec.PICTime)
	assert.Equal(t, 0, rec.NightLandings)
	assert.False(t, rec.CrossCountry)
	assert.False(t, rec.Night)
	assert.False(t, rec.Solo)
}

func TestTableRecords_SkipsRowsWithoutDate(t *testing.T) {
	tbl := tableOf(
		[]string{"Date", "Tail", "Total", "Remarks"},
		[]string{"2025-01-15", "N12345", "1.2", "XC night"},
		[]string{"", "", "12.7", "Page total"},
		[]string{"2025-01-16", "N12345", "0.8", "solo"},
	)

	records := logbook.TableRecords(tbl)

	require.Len(t, records, 2)
	assert.True(t, records[0].CrossCountry)
	assert.True(t, records[0].Night)
	assert.Equal(t, "2025-01-16", records[1].Date)
	assert.True(t, records[1].Solo)
}

func TestTableRecords_HeaderOnly(t *testing.T) {
	tbl := tableOf([]string{"Date", "Tail", "Total"})

	assert.Empty(t, logbook.TableRecords(tbl))
}
