package blockgraph

import (
	"fmt"
	"strings"
)

// TablesToCSV serializes tables as one comma-delimited text block. Each table
// is preceded by a "Table: Table_<n>" label and followed by a blank line.
// Empty tables are omitted; with nothing to write the result is "".
//
// Cells are joined verbatim. Numbers containing commas were already quoted
// during reconstruction.
func TablesToCSV(tables []Table) string {
	var sb strings.Builder
	for _, t := range tables {
		if t.IsEmpty() {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "Table: Table_%d\n", t.Index)
		for _, r := range t.RowIndices() {
			sb.WriteString(strings.Join(t.RowValues(r), ","))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
