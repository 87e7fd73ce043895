package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"logbookocr/internal/port"
)

// MockVisionModel is a mock implementation of port.VisionModel.
type MockVisionModel struct {
	mock.Mock
}

func (m *MockVisionModel) Generate(ctx context.Context, input port.ModelInput) (*port.ModelOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ModelOutput), args.Error(1)
}
