// Package blockgraphtest builds analysis graphs for tests.
package blockgraphtest

import (
	"fmt"
	"strings"

	"logbookocr/internal/blockgraph"
)

// TableBlocks returns the blocks of one TABLE whose cells hold the given rows.
// Each cell's text is split on spaces into WORD children. Row and column
// indices start at 1.
func TableBlocks(tableID string, rows [][]string) []blockgraph.Block {
	table := blockgraph.Block{ID: tableID, Type: blockgraph.BlockTypeTable}
	var blocks []blockgraph.Block
	for r, row := range rows {
		for c, text := range row {
			cellID := fmt.Sprintf("%s_cell_%d_%d", tableID, r+1, c+1)
			cell := blockgraph.Block{
				ID:          cellID,
				Type:        blockgraph.BlockTypeCell,
				RowIndex:    r + 1,
				ColumnIndex: c + 1,
			}
			for w, word := range strings.Fields(text) {
				wordID := fmt.Sprintf("%s_word_%d", cellID, w+1)
				cell.ChildIDs = append(cell.ChildIDs, wordID)
				blocks = append(blocks, blockgraph.Block{ID: wordID, Type: blockgraph.BlockTypeWord, Text: word})
			}
			table.ChildIDs = append(table.ChildIDs, cellID)
			blocks = append(blocks, cell)
		}
	}
	return append([]blockgraph.Block{table}, blocks...)
}

// Graph builds a graph holding one table per element of tables, with ids
// "table1", "table2", ...
func Graph(tables ...[][]string) *blockgraph.Graph {
	var blocks []blockgraph.Block
	for i, rows := range tables {
		blocks = append(blocks, TableBlocks(fmt.Sprintf("table%d", i+1), rows)...)
	}
	return blockgraph.NewGraph(blocks)
}
