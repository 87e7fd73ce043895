package logbook

import "logbookocr/internal/blockgraph"

// HeaderMinFields is the number of distinct fields a row must match to be
// accepted as the header. Chosen empirically; tune against real pages.
const HeaderMinFields = 3

// HeaderMap maps a field to the column index holding it.
type HeaderMap map[Field]int

// Column returns the column index of f.
func (h HeaderMap) Column(f Field) (int, bool) {
	c, ok := h[f]
	return c, ok
}

// MatchHeaderRow matches every cell of a row, in ascending column order,
// against FieldPatterns. A field maps to at most one column and a column to
// at most one field.
func MatchHeaderRow(t blockgraph.Table, rowIndex int) HeaderMap {
	hm := HeaderMap{}
	row := t.Row(rowIndex)
	for _, col := range t.ColumnIndices(rowIndex) {
		text := row[col]
		if text == "" {
			continue
		}
		for _, fp := range FieldPatterns {
			if _, taken := hm[fp.Field]; taken {
				continue
			}
			if fp.Pattern.MatchString(text) {
				hm[fp.Field] = col
				break
			}
		}
	}
	return hm
}

// FindHeader picks the first row matching at least HeaderMinFields fields.
// When no row qualifies, the first row is used with whatever it matched. An
// empty table yields row 0 and an empty map.
func FindHeader(t blockgraph.Table) (int, HeaderMap) {
	rows := t.RowIndices()
	if len(rows) == 0 {
		return 0, HeaderMap{}
	}
	for _, r := range rows {
		hm := MatchHeaderRow(t, r)
		if len(hm) >= HeaderMinFields {
			return r, hm
		}
	}
	return rows[0], MatchHeaderRow(t, rows[0])
}
