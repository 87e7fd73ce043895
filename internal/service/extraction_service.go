package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"logbookocr/internal/domain"
	"logbookocr/internal/port"
)

const emptyResultMessage = "No flight records found"

// ProcessInput carries one validated page image.
type ProcessInput struct {
	Image       []byte
	ContentType string
}

// ExtractionService defines the logbook extraction contract.
type ExtractionService interface {
	Process(ctx context.Context, input ProcessInput) (*domain.ExtractionResult, error)
	Provider() string
}

type extractionService struct {
	provider  string
	extractor port.Extractor
	logger    *zap.Logger
}

// NewExtractionService selects the strategy registered under provider
// (case-insensitive). There is no fallback between strategies.
func NewExtractionService(provider string, strategies map[string]port.Extractor, logger *zap.Logger) (ExtractionService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	name := strings.ToUpper(strings.TrimSpace(provider))
	extractor, ok := strategies[name]
	if !ok || extractor == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, provider)
	}
	return &extractionService{
		provider:  name,
		extractor: extractor,
		logger:    logger,
	}, nil
}

func (s *extractionService) Provider() string {
	return s.provider
}

func (s *extractionService) Process(ctx context.Context, input ProcessInput) (*domain.ExtractionResult, error) {
	start := time.Now()

	result, err := s.extractor.Process(ctx, input.Image, input.ContentType)
	if err != nil {
		s.logger.Error("extractionService.Process: extraction failed",
			zap.String("provider", s.provider),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s extraction: %w", s.provider, err)
	}

	if result == nil {
		result = domain.NewExtractionResult(emptyResultMessage, nil)
	} else if result.Records == nil {
		result = domain.NewExtractionResult(result.Message, nil)
	}

	s.logger.Info("extractionService.Process: extraction completed",
		zap.String("provider", s.provider),
		zap.Int("records", len(result.Records)),
		zap.String("message", result.Message),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}
