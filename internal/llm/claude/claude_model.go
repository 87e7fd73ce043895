// Package claude implements port.VisionModel on the Anthropic Messages API.
package claude

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"logbookocr/internal/config"
	"logbookocr/internal/domain"
	"logbookocr/internal/llm"
	"logbookocr/internal/port"
)

// ProviderName is the registry key of this provider.
const ProviderName = "claude"

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
)

func init() {
	llm.RegisterProvider(ProviderName, func(cfg *config.ModelProviderConfig) (port.VisionModel, error) {
		m, err := New(cfg)
		if err != nil {
			return nil, err
		}
		return m, nil
	})
}

// Model implements port.VisionModel using Claude.
type Model struct {
	apiKey    string
	model     string
	endpoint  string
	maxTokens int
	client    *http.Client
}

// New creates a Claude-backed model. cfg.Endpoint overrides the API URL.
func New(cfg *config.ModelProviderConfig) (*Model, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: anthropic API key is empty", domain.ErrModelNotConfigured)
	}
	model := cfg.DefaultModel
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = apiURL
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = 8192
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Model{
		apiKey:    cfg.APIKey,
		model:     model,
		endpoint:  endpoint,
		maxTokens: maxTokens,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

func (m *Model) Generate(ctx context.Context, input port.ModelInput) (*port.ModelOutput, error) {
	reqBody := map[string]interface{}{
		"model":       m.model,
		"max_tokens":  m.maxTokens,
		"temperature": 0,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": buildContentBlocks(input),
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", m.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling anthropic API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := llm.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, llm.NewRateLimitError(ProviderName, baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody, m.model)
}

// buildContentBlocks puts the image block first when there is one.
func buildContentBlocks(input port.ModelInput) []map[string]interface{} {
	var blocks []map[string]interface{}
	if len(input.Image) > 0 {
		blocks = append(blocks, map[string]interface{}{
			"type": "image",
			"source": map[string]interface{}{
				"type":       "base64",
				"media_type": input.MIMEType,
				"data":       base64.StdEncoding.EncodeToString(input.Image),
			},
		})
	}
	return append(blocks, map[string]interface{}{
		"type": "text",
		"text": input.Prompt,
	})
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func parseResponse(body []byte, model string) (*port.ModelOutput, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if resp.StopReason == "max_tokens" {
		return nil, fmt.Errorf("output truncated (stop_reason: max_tokens): response exceeded output token limit")
	}

	var sb strings.Builder
	for _, c := range resp.Content {
		if c.Type == "text" {
			sb.WriteString(c.Text)
		}
	}

	return &port.ModelOutput{
		Text:      sb.String(),
		ModelUsed: model,
	}, nil
}
