package port

import (
	"context"

	"logbookocr/internal/domain"
)

// Extractor turns one logbook page image into flight records.
type Extractor interface {
	Process(ctx context.Context, image []byte, mimeType string) (*domain.ExtractionResult, error)
}
