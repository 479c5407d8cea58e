// Package genlang produces the clinical analysis by prompting a generative
// model. Resilience comes from an ordered list of model identifiers: each is
// tried once, in order, and the first success wins.
package genlang

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"derma-ai/api/internal/analysis"
	"derma-ai/api/internal/apperr"
	"derma-ai/api/internal/util"
	"derma-ai/api/internal/vision"
)

// generator runs one prompt against one model and returns the raw reply text.
type generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

type Engine struct {
	gen    generator
	models []string
	log    zerolog.Logger
}

func New(apiKey string, models []string, log zerolog.Logger) *Engine {
	return newEngine(&genaiGenerator{apiKey: apiKey}, models, log)
}

func newEngine(gen generator, models []string, log zerolog.Logger) *Engine {
	return &Engine{gen: gen, models: models, log: log}
}

// Analyze builds the prompt once and walks the model list sequentially. A
// failed model is never retried; the loop advances until one model answers or
// the list is exhausted, in which case the last failure is what surfaces.
func (e *Engine) Analyze(ctx context.Context, vr *vision.AnnotateResponse, an *analysis.AnamnesisRecord) (*analysis.ClinicalAnalysis, error) {
	prompt := analysis.BuildPrompt(vr, an)

	var lastErr error
	for _, model := range e.models {
		text, err := e.gen.Generate(ctx, model, prompt)
		if err != nil {
			e.log.Warn().Str("model", model).Err(err).Msg("generation attempt failed")
			lastErr = err
			continue
		}
		e.log.Info().Str("model", model).Msg("generation succeeded")
		return parseAnalysis(text)
	}

	if lastErr == nil {
		lastErr = errors.New("no generative models configured")
	}
	return nil, apperr.Wrap(apperr.Generation, "all generative models failed", lastErr)
}

func parseAnalysis(text string) (*analysis.ClinicalAnalysis, error) {
	span, ok := util.ExtractJSONObject(text)
	if !ok {
		return nil, apperr.New(apperr.MalformedResponse, "Could not parse AI response into JSON")
	}
	var ca analysis.ClinicalAnalysis
	if err := json.Unmarshal([]byte(span), &ca); err != nil {
		return nil, apperr.Wrap(apperr.MalformedResponse, "Could not parse AI response into JSON", err)
	}
	return &ca, nil
}
