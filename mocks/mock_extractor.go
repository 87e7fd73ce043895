package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"logbookocr/internal/domain"
)

// MockExtractor is a mock implementation of port.Extractor.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Process(ctx context.Context, image []byte, mimeType string) (*domain.ExtractionResult, error) {
	args := m.Called(ctx, image, mimeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionResult), args.Error(1)
}
