// Package openrouter implements the AI judge client against an
// OpenAI-compatible chat completions API, rotating across multiple
// credential slots so one exhausted key does not block evaluation.
package openrouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"log/slog"

	"github.com/fairyhunter13/candidate-evaluator/internal/adapter/ai"
	"github.com/fairyhunter13/candidate-evaluator/internal/adapter/observability"
	"github.com/fairyhunter13/candidate-evaluator/internal/config"
	"github.com/fairyhunter13/candidate-evaluator/internal/domain"
)

// interAttemptDelay is the short pause between credential rotations.
const interAttemptDelay = 500 * time.Millisecond

// Client implements domain.JudgeClient. One Judge call tries up to pool-size
// credentials before giving up; transient 5xx errors retry with exponential
// backoff inside a single credential attempt.
type Client struct {
	cfg  config.Config
	hc   *http.Client
	pool *credentialPool
}

// New constructs a judge client from configuration.
func New(cfg config.Config) *Client {
	return &Client{
		cfg:  cfg,
		hc:   &http.Client{Timeout: cfg.AIRequestTimeout},
		pool: newCredentialPool(cfg.AIAPIKeys, cfg.AICredentialCooldown),
	}
}

// Enabled reports whether any credential slot is configured.
func (c *Client) Enabled() bool { return c.pool.Size() > 0 }

// Judge sends the candidate/job context to the chat completions API and
// parses the structured judgment from the response.
func (c *Client) Judge(ctx domain.Context, job domain.JobRequirement, profile domain.CandidateProfile, det domain.ScoringResult) (domain.AIJudgment, error) {
	if !c.Enabled() {
		return domain.AIJudgment{}, fmt.Errorf("%w: no credentials configured", domain.ErrJudgeDisabled)
	}

	userPrompt := ai.BuildJudgePrompt(job, profile, det)
	attempts := c.pool.Size()

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		slot, key, ok := c.pool.Acquire()
		if !ok {
			slog.Warn("all ai credentials cooling down", slog.Int("pool_size", attempts))
			return domain.AIJudgment{}, fmt.Errorf("%w: all credentials rate limited", domain.ErrUpstreamRateLimit)
		}

		content, err := c.chatCompletion(ctx, slot, key, userPrompt)
		if err == nil {
			c.pool.MarkSuccess(slot)
			judgment, perr := ai.ParseJudgment(content)
			if perr != nil {
				// Model quality problem, not a credential problem; rotating
				// keys will not fix it.
				slog.Warn("ai judgment failed validation", slog.Int("slot", slot), slog.Any("error", perr))
				return domain.AIJudgment{}, perr
			}
			return judgment, nil
		}

		lastErr = err
		if errors.Is(err, domain.ErrUpstreamRateLimit) {
			c.pool.MarkRateLimited(slot)
			slog.Warn("ai credential rate limited, rotating",
				slog.Int("slot", slot),
				slog.Int("attempt", attempt+1),
				slog.Int("pool_size", attempts))
		} else {
			c.pool.MarkFailure(slot)
			slog.Warn("ai judge attempt failed",
				slog.Int("slot", slot),
				slog.Int("attempt", attempt+1),
				slog.Any("error", err))
		}

		if attempt+1 < attempts {
			select {
			case <-ctx.Done():
				return domain.AIJudgment{}, fmt.Errorf("%w: %v", domain.ErrUpstreamTimeout, ctx.Err())
			case <-time.After(interAttemptDelay):
			}
		}
	}
	return domain.AIJudgment{}, fmt.Errorf("ai judge failed after %d credential attempts: %w", attempts, lastErr)
}

// chatCompletion performs one credential attempt: a chat completions request
// retried with exponential backoff on transient failures. 429 marks the
// attempt rate-limited so the caller rotates; other 4xx are permanent.
func (c *Client) chatCompletion(ctx domain.Context, slot int, key, userPrompt string) (string, error) {
	body := map[string]any{
		"model":       c.cfg.AIModel,
		"temperature": 0.2,
		"max_tokens":  c.cfg.AIMaxTokens,
		"messages": []map[string]string{
			{"role": "system", "content": ai.SystemPrompt},
			{"role": "user", "content": userPrompt},
		},
	}
	b, _ := json.Marshal(body)
	slotLabel := strconv.Itoa(slot)
	endpoint := c.cfg.AIBaseURL + "/chat/completions"

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	op := func() error {
		start := time.Now()
		// Recreate request each attempt to avoid reusing consumed bodies
		r, _ := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
		r.Header.Set("Authorization", "Bearer "+key)
		r.Header.Set("Content-Type", "application/json")
		if c.cfg.AIReferer != "" {
			r.Header.Set("HTTP-Referer", c.cfg.AIReferer)
		}
		if c.cfg.AITitle != "" {
			r.Header.Set("X-Title", c.cfg.AITitle)
		}
		resp, err := c.hc.Do(r)
		observability.AIJudgeRequestDuration.WithLabelValues(slotLabel).Observe(time.Since(start).Seconds())
		if err != nil {
			observability.AIJudgeRequestsTotal.WithLabelValues(slotLabel, "network_error").Inc()
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			observability.AIJudgeRequestsTotal.WithLabelValues(slotLabel, "read_error").Inc()
			return err
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			observability.AIJudgeRequestsTotal.WithLabelValues(slotLabel, "rate_limited").Inc()
			slog.Warn("ai provider rate limited", slog.Int("slot", slot), slog.Int("status", resp.StatusCode), slog.String("x_request_id", resp.Header.Get("X-Request-Id")))
			return backoff.Permanent(fmt.Errorf("%w: status 429", domain.ErrUpstreamRateLimit))
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// Client error: non-retryable
			observability.AIJudgeRequestsTotal.WithLabelValues(slotLabel, "client_error").Inc()
			bodySnippet := string(bodyBytes)
			if len(bodySnippet) > 512 {
				bodySnippet = bodySnippet[:512]
			}
			slog.Warn("ai provider 4xx", slog.Int("slot", slot), slog.Int("status", resp.StatusCode), slog.String("endpoint", endpoint), slog.String("body", bodySnippet))
			return backoff.Permanent(fmt.Errorf("chat status %d", resp.StatusCode))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			// 5xx and others: retryable
			observability.AIJudgeRequestsTotal.WithLabelValues(slotLabel, "server_error").Inc()
			bodySnippet := string(bodyBytes)
			if len(bodySnippet) > 512 {
				bodySnippet = bodySnippet[:512]
			}
			slog.Error("ai provider non-2xx", slog.Int("slot", slot), slog.Int("status", resp.StatusCode), slog.String("endpoint", endpoint), slog.String("body", bodySnippet))
			return fmt.Errorf("chat status %d", resp.StatusCode)
		}
		if err := json.Unmarshal(bodyBytes, &out); err != nil {
			observability.AIJudgeRequestsTotal.WithLabelValues(slotLabel, "decode_error").Inc()
			slog.Error("ai provider decode error", slog.Int("slot", slot), slog.String("endpoint", endpoint), slog.Any("error", err))
			return backoff.Permanent(fmt.Errorf("%w: %v", domain.ErrSchemaInvalid, err))
		}
		observability.AIJudgeRequestsTotal.WithLabelValues(slotLabel, "success").Inc()
		return nil
	}

	expo := backoff.NewExponentialBackOff()
	maxElapsed, initial, maxInterval, multiplier := c.cfg.GetAIBackoffConfig()
	expo.MaxElapsedTime = maxElapsed
	expo.InitialInterval = initial
	expo.MaxInterval = maxInterval
	expo.Multiplier = multiplier
	bo := backoff.WithContext(expo, ctx)

	if err := backoff.Retry(op, bo); err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", domain.ErrSchemaInvalid)
	}
	return out.Choices[0].Message.Content, nil
}
