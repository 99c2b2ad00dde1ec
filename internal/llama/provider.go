// Package llama defines the model-provider surface the engine consumes and
// its llama.cpp-backed implementation. The real runtime (via purego FFI
// bindings) is compiled only with the 'llama' build tag; default builds get a
// stub that fails fast, keeping CI FFI-free.
package llama

// Token is an integer id in a model's vocabulary.
type Token int32

// ModelParams configures model loading.
type ModelParams struct {
	// GPULayers is the number of layers to offload to the GPU.
	// 0 forces CPU-only, -1 offloads everything.
	GPULayers int
}

// ContextParams configures a generation context.
type ContextParams struct {
	// NCtx is the context window capacity in tokens.
	NCtx uint32
	// Threads used during generation; 0 uses the provider default.
	Threads int
	// ThreadsBatch used during prompt processing; 0 falls back to Threads.
	ThreadsBatch int
}

// Built reports whether this binary carries the real llama.cpp provider.
func Built() bool { return llamaBuilt }

// Provider loads models and builds samplers.
type Provider interface {
	// Load reads model weights from path. The returned Model lives until
	// Close and may be shared across any number of concurrent readers.
	Load(path string, params ModelParams) (Model, error)
}

// Model is an immutable handle to loaded weights.
type Model interface {
	// ContextLength reports the model's native maximum context length.
	ContextLength() uint32
	// Encode tokenizes text, always prepending the beginning-of-sequence
	// marker.
	Encode(text string) ([]Token, error)
	// DecodeBytes returns the raw byte fragment for one token. The fragment
	// may end mid code point; callers must reassemble incrementally.
	DecodeBytes(tok Token) ([]byte, error)
	// IsEOG reports whether tok is an end-of-generation marker.
	IsEOG(tok Token) bool
	// NewContext creates a fresh generation context (KV cache) bound to
	// this model. Contexts must not be shared across requests.
	NewContext(params ContextParams) (Context, error)
	// NewSampler builds the token-selection chain: a seeded distribution
	// stage followed by a greedy stage, so decoding is deterministic for a
	// fixed seed and fixed logits.
	NewSampler(seed uint32) (Sampler, error)
	// Close releases the weights.
	Close() error
}

// Context is a bounded generation context owned by exactly one session.
type Context interface {
	// Forward runs one pass over the staged batch. A failure leaves the KV
	// cache partially advanced; the context must be discarded.
	Forward(b *Batch) error
	// Close releases the KV cache.
	Close() error
}

// Sampler selects the next token from the logits of a forward pass.
type Sampler interface {
	// Sample picks a token from the logits at batch index idx within ctx.
	Sample(ctx Context, idx int32) Token
	// Accept informs the sampler chain of the chosen token.
	Accept(tok Token)
	// Close releases the chain.
	Close() error
}
