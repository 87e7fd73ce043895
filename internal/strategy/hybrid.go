package strategy

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"logbookocr/internal/blockgraph"
	"logbookocr/internal/domain"
	"logbookocr/internal/logbook"
	"logbookocr/internal/port"
)

// Hybrid reconstructs the detected tables, serializes them as comma-delimited
// text and asks the model to interpret that text. Detector failures are
// reported in the result message; model and interpretation failures are
// returned as errors.
type Hybrid struct {
	detection *TableDetection
	model     port.VisionModel
	logger    *zap.Logger
}

// NewHybrid creates the hybrid strategy on top of a shared detection step.
func NewHybrid(detection *TableDetection, model port.VisionModel, logger *zap.Logger) *Hybrid {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hybrid{detection: detection, model: model, logger: logger}
}

func (h *Hybrid) Process(ctx context.Context, image []byte, _ string) (*domain.ExtractionResult, error) {
	tables, err := h.detection.Tables(ctx, image)
	if err != nil {
		h.logger.Warn("strategy.Hybrid.Process: table detection failed", zap.Error(err))
		return domain.NewExtractionResult(fmt.Sprintf(MsgDetectionFailed, err), nil), nil
	}

	csvText := blockgraph.TablesToCSV(tables)
	if csvText == "" {
		return domain.NewExtractionResult(MsgNoTables, nil), nil
	}

	out, err := h.model.Generate(ctx, port.ModelInput{Prompt: logbook.HybridPrompt(csvText)})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrModelUnavailable, err)
	}

	records, err := logbook.ParseReply(out.Text)
	if err != nil {
		h.logger.Warn("strategy.Hybrid.Process: reply not interpretable",
			zap.String("model", out.ModelUsed), zap.Int("tables", len(tables)), zap.Error(err))
		return nil, err
	}

	return domain.NewExtractionResult(successMessage(records, out.ModelUsed), records), nil
}
