package engine

import (
	"fmt"
	"strings"

	"translatord/internal/llama"
)

// session is the per-request binding of a model to a generation context.
// It owns the KV cache, the sampler chain, the staged batch, the incremental
// decoder and the output buffer; nothing in it outlives the request.
type session struct {
	handle  *ModelHandle
	lctx    llama.Context
	sampler llama.Sampler
	batch   *llama.Batch
	dec     *streamDecoder
	out     strings.Builder

	nCur      int32
	maxTokens int32
}

// openSession verifies the capacity invariants and provisions the context.
// Both checks run before anything is created, so a rejected request leaves
// no partial state behind.
func (e *Engine) openSession(h *ModelHandle, promptTokens int) (*session, error) {
	maxTokens := e.params.MaxTokens
	capacity := e.params.CtxSize
	if promptTokens >= maxTokens {
		return nil, promptTooLongError{promptTokens: promptTokens, maxTokens: maxTokens}
	}
	// The KV cache must hold the prompt plus every token the budget allows.
	if promptTokens+(maxTokens-promptTokens) > capacity {
		return nil, contextTooSmallError{required: maxTokens, capacity: capacity}
	}
	lctx, err := h.Model.NewContext(llama.ContextParams{
		NCtx:         uint32(capacity),
		Threads:      e.params.Threads,
		ThreadsBatch: e.params.ThreadsBatch,
	})
	if err != nil {
		return nil, fmt.Errorf("create context: %w", err)
	}
	sampler, err := h.Model.NewSampler(e.params.Seed)
	if err != nil {
		lctx.Close()
		return nil, fmt.Errorf("create sampler: %w", err)
	}
	return &session{
		handle:    h,
		lctx:      lctx,
		sampler:   sampler,
		batch:     llama.NewBatch(),
		dec:       newStreamDecoder(),
		maxTokens: int32(maxTokens),
	}, nil
}

// Close releases all context resources. It runs on every exit path,
// including mid-loop forward failures.
func (s *session) Close() {
	s.sampler.Close()
	s.lctx.Close()
}

// forward submits the staged batch. Passes on a model are serialized; the
// backend is not assumed reentrant.
func (s *session) forward() error {
	s.handle.fwd.Lock()
	defer s.handle.fwd.Unlock()
	forwardPasses.Inc()
	return s.lctx.Forward(s.batch)
}
