package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"logbookocr/internal/blockgraph"
)

// MockTableDetector is a mock implementation of port.TableDetector.
type MockTableDetector struct {
	mock.Mock
}

func (m *MockTableDetector) DetectBlocks(ctx context.Context, image []byte) ([]blockgraph.Block, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]blockgraph.Block), args.Error(1)
}
