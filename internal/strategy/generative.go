package strategy

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"logbookocr/internal/domain"
	"logbookocr/internal/logbook"
	"logbookocr/internal/port"
)

const defaultImageType = domain.ContentTypeJPEG

// Generative sends the page image straight to a vision model and interprets
// its JSON reply. Model and interpretation failures are returned as errors.
type Generative struct {
	model  port.VisionModel
	logger *zap.Logger
}

// NewGenerative creates the generative strategy.
func NewGenerative(model port.VisionModel, logger *zap.Logger) *Generative {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generative{model: model, logger: logger}
}

func (g *Generative) Process(ctx context.Context, image []byte, mimeType string) (*domain.ExtractionResult, error) {
	if mimeType == "" {
		mimeType = defaultImageType
	}

	out, err := g.model.Generate(ctx, port.ModelInput{
		Prompt:   logbook.GenerativePrompt(),
		Image:    image,
		MIMEType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrModelUnavailable, err)
	}

	records, err := logbook.ParseReply(out.Text)
	if err != nil {
		g.logger.Warn("strategy.Generative.Process: reply not interpretable",
			zap.String("model", out.ModelUsed), zap.Error(err))
		return nil, err
	}

	return domain.NewExtractionResult(successMessage(records, out.ModelUsed), records), nil
}

func successMessage(records []domain.FlightRecord, model string) string {
	if len(records) == 0 {
		return MsgNoRecords
	}
	msg := fmt.Sprintf(MsgRecordsFound, len(records))
	if model != "" {
		msg += " with " + model
	}
	return msg
}
