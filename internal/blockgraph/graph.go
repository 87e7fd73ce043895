// Package blockgraph models the flat, id-referenced block graph returned by a
// table-detection service and rebuilds row/column tables from it.
package blockgraph

// BlockType is the kind of node in the analysis graph.
type BlockType string

const (
	BlockTypeTable         BlockType = "TABLE"
	BlockTypeCell          BlockType = "CELL"
	BlockTypeWord          BlockType = "WORD"
	BlockTypeSelectionMark BlockType = "SELECTION_MARK"
)

// Block is one node of the analysis graph. Only the attributes relevant to
// its Type are populated.
type Block struct {
	ID          string
	Type        BlockType
	Text        string
	Selected    bool
	RowIndex    int
	ColumnIndex int
	ChildIDs    []string
}

// Graph indexes blocks by id. It is built once per analysis response and
// never mutated afterwards.
type Graph struct {
	byID   map[string]*Block
	tables []*Block
}

// NewGraph builds the id index and the ordered list of TABLE blocks.
// A duplicate id keeps the last block seen.
func NewGraph(blocks []Block) *Graph {
	g := &Graph{byID: make(map[string]*Block, len(blocks))}
	for i := range blocks {
		b := &blocks[i]
		g.byID[b.ID] = b
		if b.Type == BlockTypeTable {
			g.tables = append(g.tables, b)
		}
	}
	return g
}

// Get returns the block with the given id.
func (g *Graph) Get(id string) (*Block, bool) {
	b, ok := g.byID[id]
	return b, ok
}

// Tables returns the TABLE blocks in response order.
func (g *Graph) Tables() []*Block {
	return g.tables
}

// Len returns the number of indexed blocks.
func (g *Graph) Len() int {
	return len(g.byID)
}

// Children resolves b's child ids in order. Ids missing from the graph are
// skipped, so a partially formed response degrades to fewer children.
func (g *Graph) Children(b *Block) []*Block {
	if b == nil || len(b.ChildIDs) == 0 {
		return nil
	}
	children := make([]*Block, 0, len(b.ChildIDs))
	for _, id := range b.ChildIDs {
		if child, ok := g.byID[id]; ok {
			children = append(children, child)
		}
	}
	return children
}
