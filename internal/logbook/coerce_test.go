package logbook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logbookocr/internal/logbook"
)

func TestCoerceHours(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.5", 1.5},
		{" 2.3 hrs", 2.3},
		{"", 0},
		{"abc", 0},
		{"1.2.3", 0},
		{"0.7", 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logbook.CoerceHours(tt.in))
		})
	}
}

func TestCoerceCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"2", 2},
		{"3 ldg", 3},
		{"", 0},
		{"-", 0},
		{"1.0", 10},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logbook.CoerceCount(tt.in))
		})
	}
}

func TestToRecord_UnmappedFieldsAreZero(t *testing.T) {
	hm := logbook.HeaderMap{logbook.FieldDate: 1, logbook.FieldTotalFlightTime: 2}

	rec, ok := logbook.ToRecord(map[int]string{1: " 2025-02-01 ", 2: "1.1"}, hm)

	require.True(t, ok)
	assert.Equal(t, "2025-02-01", rec.Date)
	assert.Equal(t, 1.1, rec.TotalFlightTime)
	assert.Empty(t, rec.TailNumber)
	assert.Zero(t, rec.DayLandings)
	assert.Empty(t, rec.Remarks)
}

func TestToRecord_RejectsEmptyDate(t *testing.T) {
	hm := logbook.HeaderMap{logbook.FieldDate: 1}

	rec, ok := logbook.ToRecord(map[int]string{1: "   "}, hm)

	assert.False(t, ok)
	assert.Nil(t, rec)
}

func TestToRecord_RejectsWithoutDateColumn(t *testing.T) {
	hm := logbook.HeaderMap{logbook.FieldTotalFlightTime: 1}

	_, ok := logbook.ToRecord(map[int]string{1: "1.5"}, hm)

	assert.False(t, ok)
}

func TestToRecord_GarbledNumbersCoerceToZero(t *testing.T) {
	hm := logbook.HeaderMap{
		logbook.FieldDate:            1,
		logbook.FieldTotalFlightTime: 2,
		logbook.FieldDayLandings:     3,
	}

	rec, ok := logbook.ToRecord(map[int]string{1: "1/3/2025", 2: "l.S", 3: "O"}, hm)

	require.True(t, ok)
	assert.Zero(t, rec.TotalFlightTime)
	assert.Zero(t, rec.DayLandings)
}
