package port

import (
	"context"

	"logbookocr/internal/blockgraph"
)

// TableDetector abstracts the document-analysis service that finds tables
// on a page image and returns them as a flat block graph.
type TableDetector interface {
	DetectBlocks(ctx context.Context, image []byte) ([]blockgraph.Block, error)
}
