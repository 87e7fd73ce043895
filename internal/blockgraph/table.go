package blockgraph

import (
	"sort"
	"strings"
)

// Table is one reconstructed table: row index -> column index -> cell text.
// Indices are 1-based as supplied by the analysis graph.
type Table struct {
	Index int
	Rows  map[int]map[int]string
}

// IsEmpty reports whether the table has no cells.
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// RowIndices returns the row indices in ascending order.
func (t Table) RowIndices() []int {
	return sortedKeys(t.Rows)
}

// Row returns the cells of one row; nil if the row does not exist.
func (t Table) Row(index int) map[int]string {
	return t.Rows[index]
}

// ColumnIndices returns the column indices of one row in ascending order.
func (t Table) ColumnIndices(row int) []int {
	return sortedKeys(t.Rows[row])
}

// RowValues returns the cell texts of one row in ascending column order.
func (t Table) RowValues(index int) []string {
	row := t.Rows[index]
	cols := t.ColumnIndices(index)
	values := make([]string, 0, len(cols))
	for _, c := range cols {
		values = append(values, row[c])
	}
	return values
}

// Reconstruct rebuilds the row/column text of one TABLE block. Cells are the
// table's direct CELL children; their text comes from their WORD and
// SELECTION_MARK children. A cell without text is kept as "".
func Reconstruct(table *Block, g *Graph) Table {
	t := Table{Rows: map[int]map[int]string{}}
	for _, cell := range g.Children(table) {
		if cell.Type != BlockTypeCell {
			continue
		}
		row, ok := t.Rows[cell.RowIndex]
		if !ok {
			row = map[int]string{}
			t.Rows[cell.RowIndex] = row
		}
		row[cell.ColumnIndex] = cellText(cell, g)
	}
	return t
}

// ReconstructAll reconstructs every table of the graph in response order and
// numbers them from 1.
func ReconstructAll(g *Graph) []Table {
	tables := make([]Table, 0, len(g.Tables()))
	for i, tb := range g.Tables() {
		t := Reconstruct(tb, g)
		t.Index = i + 1
		tables = append(tables, t)
	}
	return tables
}

func cellText(cell *Block, g *Graph) string {
	var sb strings.Builder
	for _, child := range g.Children(cell) {
		switch child.Type {
		case BlockTypeWord:
			if isGroupedNumber(child.Text) {
				sb.WriteString(`"` + child.Text + `"`)
			} else {
				sb.WriteString(child.Text)
			}
			sb.WriteByte(' ')
		case BlockTypeSelectionMark:
			if child.Selected {
				sb.WriteString("X ")
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// isGroupedNumber reports whether a word is a number with thousands
// separators, e.g. "1,200". Such words are quoted so the comma survives
// comma-delimited serialization.
func isGroupedNumber(s string) bool {
	if !strings.Contains(s, ",") {
		return false
	}
	digits := strings.ReplaceAll(s, ",", "")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
