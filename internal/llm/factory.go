package llm

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"logbookocr/internal/config"
	"logbookocr/internal/domain"
	"logbookocr/internal/port"
)

// ProviderFactory creates a VisionModel from a provider config.
type ProviderFactory func(cfg *config.ModelProviderConfig) (port.VisionModel, error)

// registry of model provider factories, populated by init() in each provider
// package or explicitly via RegisterProvider.
var (
	providersMu sync.RWMutex
	providers   = map[string]ProviderFactory{}
)

// RegisterProvider registers a model provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providersMu.Lock()
	defer providersMu.Unlock()
	providers[strings.ToLower(name)] = factory
}

// RegisteredProviders returns the registered provider names, sorted.
func RegisteredProviders() []string {
	providersMu.RLock()
	defer providersMu.RUnlock()
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewModel creates a VisionModel from a provider config using the registered factory.
func NewModel(cfg *config.ModelProviderConfig) (port.VisionModel, error) {
	if cfg == nil || cfg.Provider == "" {
		return nil, domain.ErrModelNotConfigured
	}
	providersMu.RLock()
	factory, ok := providers[strings.ToLower(cfg.Provider)]
	providersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown model provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// NewFromConfig builds the configured model chain. A single provider is
// returned as is; with a secondary provider the two are wrapped in a
// FallbackModel.
func NewFromConfig(cfg *config.ModelConfig, logger *zap.Logger) (port.VisionModel, error) {
	primaryCfg := cfg.PrimaryConfig()
	primary, err := NewModel(primaryCfg)
	if err != nil {
		return nil, fmt.Errorf("creating primary model: %w", err)
	}

	secondaryCfg := cfg.SecondaryConfig()
	if secondaryCfg == nil {
		return primary, nil
	}
	secondary, err := NewModel(secondaryCfg)
	if err != nil {
		return nil, fmt.Errorf("creating secondary model: %w", err)
	}

	return NewFallbackModel(
		[]port.VisionModel{primary, secondary},
		[]string{primaryCfg.Provider, secondaryCfg.Provider},
		logger,
	), nil
}
