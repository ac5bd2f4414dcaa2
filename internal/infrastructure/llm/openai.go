// Package llm implements ports.ChatClient against OpenAI-compatible chat
// completion APIs.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bloomcore/internal/ports"
)

// retryBackoff is the single pause between the first attempt and the retry.
const retryBackoff = 500 * time.Millisecond

// OpenAIClient posts chat completions to an OpenAI-compatible endpoint.
// Transient failures (429, 5xx, network) are retried once within the caller's
// deadline; fatal ones (auth, bad request) are not.
type OpenAIClient struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

var _ ports.ChatClient = (*OpenAIClient)(nil)

// NewOpenAIClient builds a client. A zero-value apiKey yields a client whose
// calls always fail fatally; callers decide whether to construct one.
func NewOpenAIClient(endpoint, model, apiKey string) *OpenAIClient {
	return &OpenAIClient{
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Complete implements ports.ChatClient.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	if c == nil {
		return "", NewFatalError(fmt.Errorf("chat client is nil"))
	}
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return "", NewFatalError(fmt.Errorf("chat client misconfigured"))
	}

	content, err := c.attempt(ctx, system, user)
	if err == nil || !IsTransient(err) {
		return content, err
	}

	select {
	case <-ctx.Done():
		return "", NewTransientError(ctx.Err())
	case <-time.After(retryBackoff):
	}

	return c.attempt(ctx, system, user)
}

func (c *OpenAIClient) attempt(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	})
	if err != nil {
		return "", NewFatalError(fmt.Errorf("marshal chat payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", NewFatalError(fmt.Errorf("new request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", NewTransientError(fmt.Errorf("chat request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		statusErr := fmt.Errorf("chat error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return "", NewTransientError(statusErr)
		}
		return "", NewFatalError(statusErr)
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", NewTransientError(fmt.Errorf("decode chat response: %w", err))
	}
	if len(parsed.Choices) == 0 {
		return "", NewTransientError(fmt.Errorf("chat response has no choices"))
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
