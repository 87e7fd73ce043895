package llm_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"logbookocr/internal/llm"
	"logbookocr/internal/port"
	"logbookocr/mocks"
)

var pageInput = port.ModelInput{Prompt: "extract", Image: []byte("png"), MIMEType: "image/png"}

func reply(model string) *port.ModelOutput {
	return &port.ModelOutput{Text: "[]", ModelUsed: model}
}

func TestFallbackModel_FirstSucceeds(t *testing.T) {
	m1 := new(mocks.MockVisionModel)
	m2 := new(mocks.MockVisionModel)
	m1.On("Generate", mock.Anything, pageInput).Return(reply("gemini"), nil)

	fm := llm.NewFallbackModel([]port.VisionModel{m1, m2}, []string{"gemini", "claude"}, zap.NewNop())

	out, err := fm.Generate(context.Background(), pageInput)

	require.NoError(t, err)
	assert.Equal(t, "gemini", out.ModelUsed)
	m2.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestFallbackModel_FirstFails_SecondSucceeds(t *testing.T) {
	m1 := new(mocks.MockVisionModel)
	m2 := new(mocks.MockVisionModel)
	m1.On("Generate", mock.Anything, pageInput).Return(nil, errors.New("connection refused"))
	m2.On("Generate", mock.Anything, pageInput).Return(reply("claude"), nil)

	fm := llm.NewFallbackModel([]port.VisionModel{m1, m2}, []string{"gemini", "claude"}, nil)

	out, err := fm.Generate(context.Background(), pageInput)

	require.NoError(t, err)
	assert.Equal(t, "claude", out.ModelUsed)
}

func TestFallbackModel_AllRateLimited(t *testing.T) {
	m1 := new(mocks.MockVisionModel)
	m2 := new(mocks.MockVisionModel)
	m1.On("Generate", mock.Anything, pageInput).Return(nil, llm.NewRateLimitError("gemini", errors.New("429"), 60))
	m2.On("Generate", mock.Anything, pageInput).Return(nil, llm.NewRateLimitError("claude", errors.New("429"), 30))

	fm := llm.NewFallbackModel([]port.VisionModel{m1, m2}, []string{"gemini", "claude"}, zap.NewNop())

	out, err := fm.Generate(context.Background(), pageInput)

	assert.Nil(t, out)
	var rlErr *llm.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "all", rlErr.Provider)
	assert.LessOrEqual(t, rlErr.RetryAfter, 30*time.Second)
}

func TestFallbackModel_AllFail_NonRateLimit(t *testing.T) {
	m1 := new(mocks.MockVisionModel)
	m2 := new(mocks.MockVisionModel)
	m1.On("Generate", mock.Anything, pageInput).Return(nil, llm.NewRateLimitError("gemini", errors.New("429"), 60))
	m2.On("Generate", mock.Anything, pageInput).Return(nil, errors.New("status 500"))

	fm := llm.NewFallbackModel([]port.VisionModel{m1, m2}, []string{"gemini", "claude"}, zap.NewNop())

	_, err := fm.Generate(context.Background(), pageInput)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all models failed")
	var rlErr *llm.RateLimitError
	assert.False(t, errors.As(err, &rlErr))
}

func TestFallbackModel_SkipsOpenCircuit(t *testing.T) {
	m1 := new(mocks.MockVisionModel)
	m2 := new(mocks.MockVisionModel)
	m1.On("Generate", mock.Anything, pageInput).Return(nil, llm.NewRateLimitError("gemini", errors.New("429"), 60)).Once()
	m2.On("Generate", mock.Anything, pageInput).Return(reply("claude"), nil)

	fm := llm.NewFallbackModel([]port.VisionModel{m1, m2}, []string{"gemini", "claude"}, zap.NewNop())

	_, err := fm.Generate(context.Background(), pageInput)
	require.NoError(t, err)
	out, err := fm.Generate(context.Background(), pageInput)
	require.NoError(t, err)

	assert.Equal(t, "claude", out.ModelUsed)
	m1.AssertNumberOfCalls(t, "Generate", 1)
	m2.AssertNumberOfCalls(t, "Generate", 2)
}

func TestFallbackModel_CircuitAutoCloses(t *testing.T) {
	m1 := new(mocks.MockVisionModel)
	m2 := new(mocks.MockVisionModel)
	m1.On("Generate", mock.Anything, pageInput).Return(nil, llm.NewRateLimitError("gemini", errors.New("429"), 1)).Once()
	m2.On("Generate", mock.Anything, pageInput).Return(reply("claude"), nil).Once()

	fm := llm.NewFallbackModel([]port.VisionModel{m1, m2}, []string{"gemini", "claude"}, zap.NewNop())

	out, err := fm.Generate(context.Background(), pageInput)
	require.NoError(t, err)
	assert.Equal(t, "claude", out.ModelUsed)

	time.Sleep(1100 * time.Millisecond)
	m1.On("Generate", mock.Anything, pageInput).Return(reply("gemini"), nil).Once()

	out, err = fm.Generate(context.Background(), pageInput)
	require.NoError(t, err)
	assert.Equal(t, "gemini", out.ModelUsed)
}

func TestFallbackModel_ConcurrentSafety(t *testing.T) {
	m1 := new(mocks.MockVisionModel)
	m2 := new(mocks.MockVisionModel)
	m1.On("Generate", mock.Anything, pageInput).Return(nil, llm.NewRateLimitError("gemini", errors.New("429"), 5)).Maybe()
	m2.On("Generate", mock.Anything, pageInput).Return(reply("claude"), nil).Maybe()

	fm := llm.NewFallbackModel([]port.VisionModel{m1, m2}, []string{"gemini", "claude"}, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := fm.Generate(context.Background(), pageInput)
			assert.NoError(t, err)
			assert.NotNil(t, out)
		}()
	}
	wg.Wait()
}
