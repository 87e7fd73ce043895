package strategy

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"logbookocr/internal/domain"
	"logbookocr/internal/logbook"
)

// Heuristic maps detected table columns to logbook fields from header text
// and coerces every data row. It never returns an error: detector failures
// are reported in the result message.
type Heuristic struct {
	detection *TableDetection
	logger    *zap.Logger
}

// NewHeuristic creates the heuristic strategy.
func NewHeuristic(detection *TableDetection, logger *zap.Logger) *Heuristic {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Heuristic{detection: detection, logger: logger}
}

func (h *Heuristic) Process(ctx context.Context, image []byte, _ string) (*domain.ExtractionResult, error) {
	tables, err := h.detection.Tables(ctx, image)
	if err != nil {
		h.logger.Warn("strategy.Heuristic.Process: table detection failed", zap.Error(err))
		return domain.NewExtractionResult(fmt.Sprintf(MsgDetectionFailed, err), nil), nil
	}

	var records []domain.FlightRecord
	for _, t := range tables {
		tableRecords := logbook.TableRecords(t)
		h.logger.Debug("strategy.Heuristic.Process: table processed",
			zap.Int("table", t.Index), zap.Int("rows", len(t.Rows)), zap.Int("records", len(tableRecords)))
		records = append(records, tableRecords...)
	}

	if len(records) == 0 {
		return domain.NewExtractionResult(MsgNoRecords, nil), nil
	}
	return domain.NewExtractionResult(fmt.Sprintf(MsgRecordsFound, len(records)), records), nil
}
