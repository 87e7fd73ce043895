package strategy

import (
	"go.uber.org/zap"

	"logbookocr/internal/domain"
	"logbookocr/internal/port"
)

// Registry builds the provider-keyed strategy table. Strategies needing a
// detector or a model are registered only when that collaborator is non-nil.
func Registry(detector port.TableDetector, model port.VisionModel, logger *zap.Logger) map[string]port.Extractor {
	strategies := map[string]port.Extractor{}
	var detection *TableDetection
	if detector != nil {
		detection = NewTableDetection(detector)
		strategies[string(domain.ProviderAWS)] = NewHeuristic(detection, logger)
	}
	if model != nil {
		strategies[string(domain.ProviderGemini)] = NewGenerative(model, logger)
		if detection != nil {
			strategies[string(domain.ProviderHybrid)] = NewHybrid(detection, model, logger)
		}
	}
	return strategies
}
