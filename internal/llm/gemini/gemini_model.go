// Package gemini implements port.VisionModel on Google's Gemini API through
// the generative-ai-go SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"logbookocr/internal/config"
	"logbookocr/internal/domain"
	"logbookocr/internal/llm"
	"logbookocr/internal/port"
)

// ProviderName is the registry key of this provider.
const ProviderName = "gemini"

const defaultModel = "gemini-2.0-flash"

func init() {
	llm.RegisterProvider(ProviderName, func(cfg *config.ModelProviderConfig) (port.VisionModel, error) {
		m, err := New(context.Background(), cfg)
		if err != nil {
			return nil, err
		}
		return m, nil
	})
}

// Generator is the part of *genai.GenerativeModel the adapter calls.
type Generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Model implements port.VisionModel using Gemini.
type Model struct {
	gen     Generator
	client  *genai.Client
	model   string
	timeout time.Duration
}

// New creates a Gemini-backed model from a provider config.
func New(ctx context.Context, cfg *config.ModelProviderConfig) (*Model, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini API key is empty", domain.ErrModelNotConfigured)
	}

	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	cl, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	name := modelName(cfg)
	gm := cl.GenerativeModel(name)
	gm.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	if cfg.MaxOutputTokens > 0 {
		gm.GenerationConfig.MaxOutputTokens = ptrInt32(int32(cfg.MaxOutputTokens))
	}

	m := NewWithGenerator(gm, name, time.Duration(cfg.TimeoutSecs)*time.Second)
	m.client = cl
	return m, nil
}

// NewWithGenerator wraps an existing generator, e.g. a configured
// *genai.GenerativeModel or a test double.
func NewWithGenerator(gen Generator, model string, timeout time.Duration) *Model {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Model{gen: gen, model: model, timeout: timeout}
}

func modelName(cfg *config.ModelProviderConfig) string {
	if m := strings.TrimSpace(cfg.DefaultModel); m != "" {
		return m
	}
	return defaultModel
}

// Generate sends the prompt, and the image when present, in one request.
func (m *Model) Generate(ctx context.Context, input port.ModelInput) (*port.ModelOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	parts := []genai.Part{genai.Text(input.Prompt)}
	if len(input.Image) > 0 {
		parts = append(parts, genai.Blob{MIMEType: input.MIMEType, Data: input.Image})
	}

	resp, err := m.gen.GenerateContent(ctx, parts...)
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
			retryAfter := llm.ParseRetryAfterHeader(apiErr.Header.Get("Retry-After"))
			return nil, llm.NewRateLimitError(ProviderName, err, retryAfter)
		}
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}

	return &port.ModelOutput{
		Text:      firstText(resp),
		ModelUsed: m.model,
	}, nil
}

// Close releases the underlying client, if any.
func (m *Model) Close() error {
	if m.client == nil {
		return nil
	}
	return m.client.Close()
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }

func ptrInt32(v int32) *int32 { return &v }
