package blockgraph

import (
	"encoding/json"
	"fmt"
)

// Textract JSON names, used when replaying a saved AnalyzeDocument response.
const (
	relationshipChild      = "CHILD"
	selectionStatusChecked = "SELECTED"
	blockTypeSelectionElem = "SELECTION_ELEMENT"
)

// analysisDocument mirrors the subset of an AnalyzeDocument response we read.
type analysisDocument struct {
	Blocks []struct {
		ID              string `json:"Id"`
		BlockType       string `json:"BlockType"`
		Text            string `json:"Text"`
		SelectionStatus string `json:"SelectionStatus"`
		RowIndex        int    `json:"RowIndex"`
		ColumnIndex     int    `json:"ColumnIndex"`
		Relationships   []struct {
			Type string   `json:"Type"`
			IDs  []string `json:"Ids"`
		} `json:"Relationships"`
	} `json:"Blocks"`
}

// DecodeAnalysis decodes a saved Textract AnalyzeDocument JSON response into
// blocks. Only CHILD relationships are kept.
func DecodeAnalysis(data []byte) ([]Block, error) {
	var doc analysisDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding analysis response: %w", err)
	}

	blocks := make([]Block, 0, len(doc.Blocks))
	for _, raw := range doc.Blocks {
		b := Block{
			ID:          raw.ID,
			Type:        ParseBlockType(raw.BlockType),
			Text:        raw.Text,
			Selected:    raw.SelectionStatus == selectionStatusChecked,
			RowIndex:    raw.RowIndex,
			ColumnIndex: raw.ColumnIndex,
		}
		for _, rel := range raw.Relationships {
			if rel.Type == relationshipChild {
				b.ChildIDs = append(b.ChildIDs, rel.IDs...)
			}
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// ParseBlockType maps a provider block type name onto a BlockType. Textract's
// SELECTION_ELEMENT becomes BlockTypeSelectionMark; unknown names pass through
// unchanged and are ignored by reconstruction.
func ParseBlockType(name string) BlockType {
	if name == blockTypeSelectionElem {
		return BlockTypeSelectionMark
	}
	return BlockType(name)
}
