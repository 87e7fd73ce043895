// Package app assembles the extraction pipeline from configuration. The
// server, the CLI and the MCP server all start here.
package app

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"logbookocr/internal/config"
	"logbookocr/internal/domain"
	"logbookocr/internal/llm"
	_ "logbookocr/internal/llm/claude" // registers the claude provider
	_ "logbookocr/internal/llm/gemini" // registers the gemini provider
	"logbookocr/internal/port"
	"logbookocr/internal/service"
	"logbookocr/internal/strategy"
	"logbookocr/internal/textract"
)

// Options adjusts how the pipeline is assembled.
type Options struct {
	// Provider overrides cfg.OCR.Provider when set.
	Provider string
	// AnalysisPath replays a saved table-detection response instead of
	// calling the detection service.
	AnalysisPath string
	// Detector and Model replace the configured collaborators.
	Detector port.TableDetector
	Model    port.VisionModel
}

// App is an assembled extraction pipeline.
type App struct {
	Service service.ExtractionService
	closers []io.Closer
}

// New builds the detector and model the selected provider needs and wires
// them into the extraction service.
func New(cfg *config.Config, opts Options, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	provider := cfg.OCR.Provider
	if opts.Provider != "" {
		provider = opts.Provider
	}
	provider = strings.ToUpper(strings.TrimSpace(provider))

	needsDetector, needsModel, err := requirements(provider)
	if err != nil {
		return nil, err
	}

	a := &App{}

	detector := opts.Detector
	if needsDetector && detector == nil {
		detector, err = newDetector(cfg, opts.AnalysisPath)
		if err != nil {
			return nil, err
		}
	}

	model := opts.Model
	if needsModel && model == nil {
		model, err = llm.NewFromConfig(&cfg.Model, logger)
		if err != nil {
			return nil, fmt.Errorf("initializing vision model: %w", err)
		}
		if c, ok := model.(io.Closer); ok {
			a.closers = append(a.closers, c)
		}
	}

	svc, err := service.NewExtractionService(provider, strategy.Registry(detector, model, logger), logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Service = svc

	logger.Info("app.New: extraction pipeline ready",
		zap.String("provider", provider),
		zap.Bool("detector", detector != nil),
		zap.Bool("model", model != nil),
		zap.Bool("replay", opts.AnalysisPath != ""),
	)
	return a, nil
}

// Close releases model clients.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func requirements(provider string) (detector, model bool, err error) {
	switch domain.Provider(provider) {
	case domain.ProviderAWS:
		return true, false, nil
	case domain.ProviderGemini:
		return false, true, nil
	case domain.ProviderHybrid:
		return true, true, nil
	default:
		return false, false, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, provider)
	}
}

func newDetector(cfg *config.Config, analysisPath string) (port.TableDetector, error) {
	if analysisPath != "" {
		d, err := textract.LoadStaticDetector(analysisPath)
		if err != nil {
			return nil, fmt.Errorf("loading saved analysis: %w", err)
		}
		return d, nil
	}
	d, err := textract.NewDetector(&cfg.Textract)
	if err != nil {
		return nil, fmt.Errorf("initializing table detector: %w", err)
	}
	return d, nil
}
