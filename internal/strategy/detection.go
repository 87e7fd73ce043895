// Package strategy implements the interchangeable image-to-records
// extraction strategies behind port.Extractor.
package strategy

import (
	"context"

	"logbookocr/internal/blockgraph"
	"logbookocr/internal/port"
)

// Result messages shared by the strategies.
const (
	MsgRecordsFound    = "Successfully processed %d flight records"
	MsgNoRecords       = "No flight records found"
	MsgDetectionFailed = "Table detection failed: %v"
	MsgNoTables        = "No tables found by table detection."
)

// TableDetection is the table-detection step shared by Heuristic and Hybrid:
// one detector call followed by table reconstruction.
type TableDetection struct {
	detector port.TableDetector
}

// NewTableDetection wraps a detector.
func NewTableDetection(detector port.TableDetector) *TableDetection {
	return &TableDetection{detector: detector}
}

// Tables calls the detector once and reconstructs every non-empty table in
// detection order. Indices keep their detection numbering.
func (d *TableDetection) Tables(ctx context.Context, image []byte) ([]blockgraph.Table, error) {
	blocks, err := d.detector.DetectBlocks(ctx, image)
	if err != nil {
		return nil, err
	}
	all := blockgraph.ReconstructAll(blockgraph.NewGraph(blocks))
	tables := make([]blockgraph.Table, 0, len(all))
	for _, t := range all {
		if !t.IsEmpty() {
			tables = append(tables, t)
		}
	}
	return tables, nil
}
