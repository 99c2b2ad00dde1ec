// Package engine implements the per-request translation pipeline: direction
// routing, prompt construction, tokenization, capacity-checked context
// sessions and the autoregressive decode loop.
package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"translatord/pkg/types"
)

// Default generation parameters, matching the values the service has always
// shipped with.
const (
	DefaultMaxTokens = 32
	DefaultSeed      = 1234
	DefaultCtxSize   = 2048
)

// Params are process-wide, read-only generation defaults, sourced from
// configuration once at startup.
type Params struct {
	// MaxTokens bounds prompt plus generated tokens per request.
	MaxTokens int
	// Seed for the sampler's distribution stage.
	Seed uint32
	// Threads used during generation (0 = provider default).
	Threads int
	// ThreadsBatch used during prompt processing (0 = Threads).
	ThreadsBatch int
	// CtxSize overrides the context window capacity (0 = DefaultCtxSize).
	CtxSize int
}

func (p Params) withDefaults() Params {
	if p.MaxTokens <= 0 {
		p.MaxTokens = DefaultMaxTokens
	}
	if p.Seed == 0 {
		p.Seed = DefaultSeed
	}
	if p.CtxSize <= 0 {
		p.CtxSize = DefaultCtxSize
	}
	return p
}

// Engine serves translation requests over a registry of directional models.
// It is safe for concurrent use: all mutable per-request state lives in the
// session each call constructs.
type Engine struct {
	registry *Registry
	params   Params
	log      zerolog.Logger
}

// New builds an engine over reg. The registry and params are borrowed
// read-only for the life of the engine.
func New(reg *Registry, params Params, log zerolog.Logger) *Engine {
	return &Engine{registry: reg, params: params.withDefaults(), log: log}
}

// Translate runs the full pipeline for one request. Generation runs to
// completion once started; deadline enforcement belongs to the boundary
// layer, so ctx is not consulted inside the decode loop.
func (e *Engine) Translate(ctx context.Context, req types.TranslateRequest) (types.TranslateResponse, error) {
	dir := Direction{Source: req.SourceLang, Target: req.TargetLang}
	start := time.Now()
	resp, err := e.translate(dir, req.Text)
	translationsTotal.WithLabelValues(dir.String(), errorKind(err)).Inc()
	if err != nil {
		e.log.Warn().Stringer("direction", dir).Err(err).Dur("dur", time.Since(start)).Msg("translate failed")
		return types.TranslateResponse{}, err
	}
	e.log.Info().Stringer("direction", dir).Dur("dur", time.Since(start)).Msg("translate done")
	translationDuration.Observe(time.Since(start).Seconds())
	return resp, nil
}

func (e *Engine) translate(dir Direction, text string) (types.TranslateResponse, error) {
	h, err := e.registry.Lookup(dir)
	if err != nil {
		return types.TranslateResponse{}, err
	}
	prompt, err := BuildPrompt(text, dir.Target)
	if err != nil {
		return types.TranslateResponse{}, err
	}
	tokens, err := h.Model.Encode(prompt)
	if err != nil {
		return types.TranslateResponse{}, tokenizeError{err: err}
	}
	e.log.Debug().Stringer("direction", dir).Int("prompt_tokens", len(tokens)).Msg("translate start")

	s, err := e.openSession(h, len(tokens))
	if err != nil {
		return types.TranslateResponse{}, err
	}
	defer s.Close()

	out, err := s.run(tokens)
	if err != nil {
		return types.TranslateResponse{}, err
	}
	return types.TranslateResponse{
		TranslatedText: out,
		SourceLang:     dir.Source,
		TargetLang:     dir.Target,
	}, nil
}

// Directions lists the configured translation directions.
func (e *Engine) Directions() []types.DirectionInfo {
	return e.registry.Directions()
}

// Ready reports whether the engine can serve requests. Models load before
// the engine exists, so this only guards an empty registry.
func (e *Engine) Ready() bool {
	return len(e.registry.Directions()) > 0
}
