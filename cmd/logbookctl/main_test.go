package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"logbookocr/internal/domain"
	"logbookocr/internal/export"
	"logbookocr/internal/service"
	"logbookocr/mocks"
)

var pngData = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func oneRecord() *domain.ExtractionResult {
	return domain.NewExtractionResult("Successfully processed 1 flight records", []domain.FlightRecord{
		{Date: "1/10/2025", TailNumber: "N54321", SrcIcao: "KSMO", DestIcao: "KSBA", TotalFlightTime: 1.5},
	})
}

func TestParseArgs(t *testing.T) {
	var stderr bytes.Buffer
	opts, err := parseArgs([]string{"-p", "hybrid", "--format", "csv", "-o", "out.csv", "--analysis", "a.json", "page.png"}, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "hybrid", opts.provider)
	assert.Equal(t, "csv", opts.format)
	assert.Equal(t, "out.csv", opts.out)
	assert.Equal(t, "a.json", opts.analysis)
	assert.Equal(t, "page.png", opts.source)
}

func TestParseArgs_MissingSource(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseArgs([]string{"-f", "json"}, &stderr)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "usage: logbookctl")
}

func TestExtract_LocalFileJSON(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "page.png")
	require.NoError(t, os.WriteFile(src, pngData, 0o600))

	svc := new(mocks.MockExtractionService)
	svc.On("Process", mock.Anything, mock.MatchedBy(func(in service.ProcessInput) bool {
		return in.ContentType == domain.ContentTypePNG
	})).Return(oneRecord(), nil)

	var stdout bytes.Buffer
	err := extract(context.Background(), svc, nil, &cliOptions{source: src}, export.FormatJSON, 1<<20, &stdout, zap.NewNop())
	require.NoError(t, err)

	var got domain.ExtractionResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	require.Len(t, got.Records, 1)
	assert.Equal(t, "N54321", got.Records[0].TailNumber)
	svc.AssertExpectations(t)
}

func TestExtract_S3SourceToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.csv")

	downloader := new(mocks.MockObjectDownloader)
	downloader.On("Download", mock.Anything, "scans", "2025/page.png").Return(pngData, nil)

	svc := new(mocks.MockExtractionService)
	svc.On("Process", mock.Anything, mock.Anything).Return(oneRecord(), nil)

	var stdout bytes.Buffer
	opts := &cliOptions{source: "s3://scans/2025/page.png", out: out}
	err := extract(context.Background(), svc, downloader, opts, export.FormatCSV, 1<<20, &stdout, zap.NewNop())
	require.NoError(t, err)

	assert.Empty(t, stdout.String())
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "N54321")
	downloader.AssertExpectations(t)
}

func TestExtract_RejectsNonImage(t *testing.T) {
	src := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("just some text"), 0o600))

	svc := new(mocks.MockExtractionService)

	var stdout bytes.Buffer
	err := extract(context.Background(), svc, nil, &cliOptions{source: src}, export.FormatJSON, 1<<20, &stdout, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	svc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestExtract_DownloadFailure(t *testing.T) {
	downloader := new(mocks.MockObjectDownloader)
	downloader.On("Download", mock.Anything, "scans", "missing.png").Return(nil, errors.New("s3 download: NoSuchKey"))

	var stdout bytes.Buffer
	err := extract(context.Background(), new(mocks.MockExtractionService), downloader,
		&cliOptions{source: "s3://scans/missing.png"}, export.FormatJSON, 1<<20, &stdout, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NoSuchKey")
}
