// Package synthesis turns an assembled bloom context into a human-readable
// explanation, via a chat model when one is configured and a deterministic
// template otherwise.
package synthesis

import (
	"context"
	"log/slog"

	"bloomcore/internal/domain"
	"bloomcore/internal/metrics"
	"bloomcore/internal/ports"
)

// Engine implements ports.ExplanationEngine. A nil chat client is valid and
// routes every request to the fallback template.
type Engine struct {
	client   ports.ChatClient
	logger   *slog.Logger
	recorder *metrics.Recorder
}

var _ ports.ExplanationEngine = (*Engine)(nil)

// NewEngine wires an explanation engine.
func NewEngine(client ports.ChatClient, logger *slog.Logger, recorder *metrics.Recorder) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{client: client, logger: logger, recorder: recorder}
}

// Explain returns the explanation text and whether a language model produced
// it. Model failure is not an error condition; the fallback always answers.
func (e *Engine) Explain(ctx context.Context, bc domain.BloomContext, searchSummary string) (string, bool) {
	if e.client == nil {
		e.recorder.SynthesisFallback()
		return FallbackExplanation(bc), false
	}

	text, err := e.client.Complete(ctx, systemPrompt, buildPrompt(bc, searchSummary))
	if err != nil || text == "" {
		if err != nil {
			e.logger.Warn("explanation synthesis failed, using fallback",
				"region", bc.Region, "flower", bc.Flower.CommonName, "error", err)
		}
		e.recorder.SynthesisFallback()
		return FallbackExplanation(bc), false
	}

	return text, true
}
