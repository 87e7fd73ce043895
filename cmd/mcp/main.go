// Command mcp exposes logbook extraction as MCP tools over stdio.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"logbookocr/internal/app"
	"logbookocr/internal/config"
	"logbookocr/internal/domain"
	"logbookocr/internal/export"
	"logbookocr/internal/logger"
	"logbookocr/internal/port"
	"logbookocr/internal/service"
	s3storage "logbookocr/internal/storage/s3"
)

const (
	serverName    = "logbook-ocr"
	serverVersion = "0.1.0"
)

// Tool argument keys.
const (
	argPath   = "path"
	argFormat = "format"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// stdout carries the protocol; logger.New writes to stderr.
	zlog, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = zlog.Sync() }()

	pipeline, err := app.New(cfg, app.Options{}, zlog)
	if err != nil {
		return fmt.Errorf("failed to initialize extraction pipeline: %w", err)
	}
	defer func() { _ = pipeline.Close() }()

	downloader, err := s3storage.NewDownloader(&cfg.S3)
	if err != nil {
		zlog.Warn("mcp.run: S3 inputs disabled", zap.Error(err))
	}

	t := &tools{
		svc:      pipeline.Service,
		maxBytes: cfg.OCR.MaxFileSizeBytes(),
		logger:   zlog,
	}
	if downloader != nil {
		t.downloader = downloader
	}

	s := server.NewMCPServer(serverName, serverVersion)
	registerTools(s, t)

	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

type tools struct {
	svc        service.ExtractionService
	downloader port.ObjectDownloader
	maxBytes   int64
	logger     *zap.Logger
}

// registerTools binds MCP tool definitions to their handlers.
func registerTools(s *server.MCPServer, t *tools) {
	s.AddTool(
		mcp.NewTool("extract_logbook",
			mcp.WithDescription("Extract flight records from a scanned pilot logbook page. "+
				"Pass an absolute path to a PNG or JPEG image, or an s3://bucket/key URI."),
			mcp.WithString(argPath,
				mcp.Required(),
				mcp.Description("Absolute image path or s3://bucket/key URI"),
			),
			mcp.WithString(argFormat,
				mcp.Description("Output format: json (default) or csv"),
			),
		),
		t.extractLogbook,
	)

	s.AddTool(
		mcp.NewTool("get_extraction_info",
			mcp.WithDescription("Return the active extraction provider, accepted image types and output formats."),
		),
		t.extractionInfo,
	)
}

func (t *tools) extractLogbook(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, ok := req.Params.Arguments[argPath].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError(argPath + " is required"), nil
	}

	formatArg, _ := req.Params.Arguments[argFormat].(string)
	format, err := export.ParseFormat(formatArg)
	if err != nil || format == export.FormatXLSX {
		return mcp.NewToolResultError("format must be json or csv"), nil
	}

	data, err := t.read(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	contentType, err := service.ValidateImage(data, "", t.maxBytes)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", path, err)), nil
	}

	result, err := t.svc.Process(ctx, service.ProcessInput{Image: data, ContentType: contentType})
	if err != nil {
		t.logger.Error("mcp.extractLogbook: extraction failed", zap.String("path", path), zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("OCR processing failed: %v", err)), nil
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (t *tools) extractionInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "provider: %s\n", t.svc.Provider())
	fmt.Fprintf(&b, "accepted types: %s, %s\n", domain.ContentTypePNG, domain.ContentTypeJPEG)
	fmt.Fprintf(&b, "max image size: %d bytes\n", t.maxBytes)
	fmt.Fprintf(&b, "formats: %s, %s\n", export.FormatJSON, export.FormatCSV)
	fmt.Fprintf(&b, "s3 inputs: %t\n", t.downloader != nil)
	return mcp.NewToolResultText(b.String()), nil
}

func (t *tools) read(ctx context.Context, path string) ([]byte, error) {
	if bucket, key, ok := s3storage.ParseURI(path); ok {
		if t.downloader == nil {
			return nil, errors.New("S3 inputs are not configured")
		}
		return t.downloader.Download(ctx, bucket, key)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return data, nil
}
