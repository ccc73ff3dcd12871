// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package completion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/gabrielvik/film-recommendations/internal/config"
	"github.com/gabrielvik/film-recommendations/internal/logging"
	"github.com/gabrielvik/film-recommendations/internal/metrics"
)

// OpenAIProvider implements Provider against the OpenAI responses API.
type OpenAIProvider struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIProvider creates a provider from configuration. A custom
// BaseURL routes requests to any OpenAI-compatible endpoint.
func NewOpenAIProvider(cfg *config.OpenAIConfig) *OpenAIProvider {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIProvider{
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

// Complete sends the instruction/input pair to the model and returns
// the raw output text. Rate-limit and server errors are retried a few
// times with backoff before giving up.
func (p *OpenAIProvider) Complete(ctx context.Context, instructions, input string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := responses.ResponseNewParams{
		Model:        p.model,
		Instructions: openai.String(instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(input),
		},
	}

	start := time.Now()
	resp, err := p.callWithRetry(ctx, params)
	metrics.CompletionDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.CompletionRequests.WithLabelValues("error").Inc()
		logging.Warn().Err(err).Str("model", p.model).Msg("Completion request failed")
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	metrics.CompletionRequests.WithLabelValues("success").Inc()
	return resp.OutputText(), nil
}

func (p *OpenAIProvider) callWithRetry(ctx context.Context, params responses.ResponseNewParams) (*responses.Response, error) {
	const maxRetries = 3
	waitTimes := []time.Duration{2 * time.Second, 5 * time.Second}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err := p.client.Responses.New(ctx, params)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == maxRetries-1 {
			return nil, err
		}

		select {
		case <-time.After(waitTimes[attempt]):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "429") ||
		strings.Contains(s, "rate limit") ||
		strings.Contains(s, "too many requests") ||
		strings.Contains(s, "500") ||
		strings.Contains(s, "internal server error") ||
		strings.Contains(s, "server_error")
}
