package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"logbookocr/internal/app"
	"logbookocr/internal/config"
	"logbookocr/internal/domain"
	"logbookocr/internal/port"
	"logbookocr/internal/service"
	"logbookocr/mocks"
)

const savedAnalysis = "../blockgraph/testdata/analysis_logbook.json"

func baseConfig(provider string) *config.Config {
	return &config.Config{
		OCR:      config.OCRConfig{Provider: provider, MaxFileSizeMB: 5},
		Textract: config.TextractConfig{Region: "us-west-1"},
		Model:    config.ModelConfig{Provider: "gemini", DefaultModel: "gemini-2.0-flash"},
	}
}

func TestNew_AWSReplay(t *testing.T) {
	a, err := app.New(baseConfig("aws"), app.Options{AnalysisPath: savedAnalysis}, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "AWS", a.Service.Provider())

	result, err := a.Service.Process(context.Background(), service.ProcessInput{
		Image:       []byte("ignored"),
		ContentType: domain.ContentTypePNG,
	})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Successfully processed 1 flight records", result.Message)

	rec := result.Records[0]
	assert.Equal(t, "1/10/2025", rec.Date)
	assert.Equal(t, "N54321", rec.TailNumber)
	assert.Equal(t, "KSMO", rec.SrcIcao)
	assert.Equal(t, "KSBA", rec.DestIcao)
	assert.InDelta(t, 1.5, rec.TotalFlightTime, 1e-9)
	assert.True(t, rec.CrossCountry)
	assert.True(t, rec.Solo)
}

func TestNew_ProviderOverride(t *testing.T) {
	model := new(mocks.MockVisionModel)
	model.On("Generate", mock.Anything, mock.Anything).
		Return(&port.ModelOutput{Text: `[]`, ModelUsed: "fake"}, nil)

	a, err := app.New(baseConfig("AWS"), app.Options{Provider: "gemini", Model: model}, nil)
	require.NoError(t, err)

	assert.Equal(t, "GEMINI", a.Service.Provider())

	result, err := a.Service.Process(context.Background(), service.ProcessInput{
		Image:       []byte("img"),
		ContentType: domain.ContentTypeJPEG,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Equal(t, "No flight records found", result.Message)
	model.AssertExpectations(t)
}

func TestNew_HybridWithInjectedCollaborators(t *testing.T) {
	detector := new(mocks.MockTableDetector)
	model := new(mocks.MockVisionModel)

	a, err := app.New(baseConfig("HYBRID"), app.Options{Detector: detector, Model: model}, nil)
	require.NoError(t, err)
	assert.Equal(t, "HYBRID", a.Service.Provider())
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := app.New(baseConfig("OPENAI"), app.Options{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownProvider)
}

func TestNew_GeminiWithoutAPIKey(t *testing.T) {
	_, err := app.New(baseConfig("GEMINI"), app.Options{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrModelNotConfigured)
}

func TestNew_MissingAnalysisFile(t *testing.T) {
	_, err := app.New(baseConfig("AWS"), app.Options{AnalysisPath: "testdata/does-not-exist.json"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading saved analysis")
}
