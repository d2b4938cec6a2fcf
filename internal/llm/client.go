// Package llm dispatches generation requests across an ordered list of model
// endpoints with per-call health probing, bounded retry and fallback.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	commonhttp "podcast-guest-tracker/internal/common/http"
	"podcast-guest-tracker/internal/common/logger"
	"podcast-guest-tracker/internal/common/metrics"
)

const (
	healthPath   = "/health"
	generatePath = "/generate"

	healthProbeTimeout = 3 * time.Second
)

var (
	// ErrUnavailable is returned when every configured endpoint was exhausted.
	ErrUnavailable = errors.New("LLM_UNAVAILABLE")
	// ErrEmptyGeneration marks a well-formed response whose text field was
	// empty. Treated as an attempt failure, never surfaced to callers.
	ErrEmptyGeneration = errors.New("EMPTY_GENERATION")
)

// Endpoint is one configured model tier backend. Order in the client's list is
// priority order.
type Endpoint struct {
	Model   string
	BaseURL string
}

// GeneratedText is the successful result of a generation call.
type GeneratedText struct {
	Text  string
	Model string
}

type generateRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	GeneratedText string `json:"generated_text"`
	Model         string `json:"model"`
}

// Client fans a generation request across endpoints in priority order. Health
// is probed per call and never persisted, so a backend that recovers is picked
// up on the very next request.
type Client struct {
	endpoints  []Endpoint
	client     *commonhttp.Client
	maxRetries int // extra attempts per endpoint after the first
	logger     logger.Logger
}

func NewClient(endpoints []Endpoint, timeout time.Duration, maxRetries int, log logger.Logger) *Client {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		endpoints:  endpoints,
		client:     commonhttp.NewClient(timeout),
		maxRetries: maxRetries,
		logger:     log.WithFields(map[string]interface{}{"component": "llm-client"}),
	}
}

// Endpoints returns the configured endpoints in priority order.
func (c *Client) Endpoints() []Endpoint {
	return c.endpoints
}

// Generate sends the prompt to the first healthy endpoint that answers, with
// one retry against the same endpoint before falling through. Attempts are
// strictly sequential and bounded by endpoints x (1 + maxRetries).
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (*GeneratedText, error) {
	if len(c.endpoints) == 0 {
		return nil, fmt.Errorf("%w: no endpoints configured", ErrUnavailable)
	}

	var lastErr error
	for _, ep := range c.endpoints {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		if !c.probe(ctx, ep) {
			c.logger.Warn("endpoint unhealthy, skipping", map[string]interface{}{
				"model": ep.Model,
			})
			metrics.LLMRequests.WithLabelValues(ep.Model, "skipped_unhealthy").Inc()
			lastErr = fmt.Errorf("endpoint %s failed health probe", ep.Model)
			continue
		}

		for attempt := 0; attempt <= c.maxRetries; attempt++ {
			out, err := c.generateOnce(ctx, ep, prompt, maxTokens, temperature)
			if err == nil {
				return out, nil
			}
			lastErr = fmt.Errorf("endpoint %s: %w", ep.Model, err)
			c.logger.Warn("generation attempt failed", map[string]interface{}{
				"model":   ep.Model,
				"attempt": attempt + 1,
				"error":   err.Error(),
			})
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
			}
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

// probe checks endpoint health for the current call only. No blacklist is
// kept; the next Generate re-probes.
func (c *Client) probe(ctx context.Context, ep Endpoint) bool {
	probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	resp, err := c.client.Get(probeCtx, ep.BaseURL+healthPath)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) generateOnce(ctx context.Context, ep Endpoint, prompt string, maxTokens int, temperature float64) (*GeneratedText, error) {
	body, err := json.Marshal(generateRequest{
		Prompt:      prompt,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Post(ctx, ep.BaseURL+generatePath, bytes.NewReader(body))
	metrics.LLMRequestDuration.WithLabelValues(ep.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMRequests.WithLabelValues(ep.Model, "error").Inc()
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.LLMRequests.WithLabelValues(ep.Model, "error").Inc()
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		metrics.LLMRequests.WithLabelValues(ep.Model, "error").Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if strings.TrimSpace(out.GeneratedText) == "" {
		metrics.LLMRequests.WithLabelValues(ep.Model, "error").Inc()
		return nil, ErrEmptyGeneration
	}

	model := out.Model
	if model == "" {
		model = ep.Model
	}

	metrics.LLMRequests.WithLabelValues(ep.Model, "ok").Inc()
	return &GeneratedText{Text: out.GeneratedText, Model: model}, nil
}
