package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"logbookocr/internal/port"
)

// circuitState tracks rate-limit backoff for a single model.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackModel tries models in order, skipping those with open circuits.
// It implements port.VisionModel.
type FallbackModel struct {
	models   []port.VisionModel
	circuits []*circuitState
	names    []string
	logger   *zap.Logger
	now      func() time.Time
}

// NewFallbackModel creates a FallbackModel from an ordered list of models and their names.
func NewFallbackModel(models []port.VisionModel, names []string, logger *zap.Logger) *FallbackModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	circuits := make([]*circuitState, len(models))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackModel{
		models:   models,
		circuits: circuits,
		names:    names,
		logger:   logger,
		now:      time.Now,
	}
}

func (f *FallbackModel) Generate(ctx context.Context, input port.ModelInput) (*port.ModelOutput, error) {
	now := f.now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, m := range f.models {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			f.logger.Info("llm.FallbackModel: skipping model, circuit open",
				zap.String("model", f.names[i]), zap.Time("reset_at", resetAt))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := m.Generate(ctx, input)
		if err == nil {
			return out, nil
		}

		f.logger.Warn("llm.FallbackModel: model failed", zap.String("model", f.names[i]), zap.Error(err))
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil || allRateLimited {
		retryAfter := earliestReset.Sub(f.now())
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all models rate limited"), int(retryAfter.Seconds()))
	}

	return nil, fmt.Errorf("all models failed: %w", lastErr)
}
