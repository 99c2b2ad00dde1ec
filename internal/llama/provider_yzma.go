//go:build llama

package llama

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	yzma "github.com/hybridgroup/yzma/pkg/llama"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

var (
	initOnce sync.Once
	initErr  error
)

// doInit loads the llama.cpp shared libraries and initializes the backend
// once per process. The library directory comes from TRANSLATORD_LIB, falling
// back to ./lib/llama.
func doInit() {
	libPath := os.Getenv("TRANSLATORD_LIB")
	if libPath == "" {
		libPath = "./lib/llama"
	}
	if abs, err := filepath.Abs(libPath); err == nil {
		libPath = abs
	}
	if err := yzma.Load(libPath); err != nil {
		initErr = fmt.Errorf("load llama.cpp libraries from %s: %w", libPath, err)
		return
	}
	yzma.Init()
}

type yzmaProvider struct{}

// NewProvider returns the llama.cpp-backed provider.
func NewProvider() Provider { return yzmaProvider{} }

func (yzmaProvider) Load(path string, params ModelParams) (Model, error) {
	initOnce.Do(doInit)
	if initErr != nil {
		return nil, initErr
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}
	mp := yzma.ModelDefaultParams()
	mp.NGpuLayers = int32(params.GPULayers)
	m, err := yzma.ModelLoadFromFile(path, mp)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return &yzmaModel{model: m, vocab: yzma.ModelGetVocab(m)}, nil
}

type yzmaModel struct {
	model yzma.Model
	vocab yzma.Vocab
}

func (m *yzmaModel) ContextLength() uint32 {
	return uint32(yzma.ModelNCtxTrain(m.model))
}

func (m *yzmaModel) Encode(text string) ([]Token, error) {
	// addSpecial=true prepends BOS; special tokens in the prompt template
	// are parsed, matching llama.cpp's tokenize(…, parse_special=true).
	toks := yzma.Tokenize(m.vocab, text, true, true)
	if len(toks) == 0 {
		return nil, errors.New("tokenizer produced no tokens")
	}
	out := make([]Token, len(toks))
	for i, t := range toks {
		out[i] = Token(t)
	}
	return out, nil
}

func (m *yzmaModel) DecodeBytes(tok Token) ([]byte, error) {
	buf := make([]byte, 128)
	n := yzma.TokenToPiece(m.vocab, yzma.Token(tok), buf, 0, true)
	if n < 0 {
		return nil, fmt.Errorf("token %d has no piece", tok)
	}
	return buf[:n], nil
}

func (m *yzmaModel) IsEOG(tok Token) bool {
	return yzma.VocabIsEOG(m.vocab, yzma.Token(tok))
}

func (m *yzmaModel) NewContext(params ContextParams) (Context, error) {
	cp := yzma.ContextDefaultParams()
	cp.NCtx = params.NCtx
	cp.NBatch = uint32(MaxBatchTokens)
	if params.Threads > 0 {
		cp.NThreads = int32(params.Threads)
	}
	if tb := params.ThreadsBatch; tb > 0 {
		cp.NThreadsBatch = int32(tb)
	} else if params.Threads > 0 {
		cp.NThreadsBatch = int32(params.Threads)
	}
	lctx, err := yzma.InitFromModel(m.model, cp)
	if err != nil {
		return nil, fmt.Errorf("create context: %w", err)
	}
	return &yzmaContext{lctx: lctx}, nil
}

func (m *yzmaModel) NewSampler(seed uint32) (Sampler, error) {
	// dist(seed) followed by greedy, mirroring the chain the service has
	// always decoded with. Greedy over the seed-perturbed distribution is
	// deterministic for a fixed seed and fixed logits.
	chain := yzma.SamplerChainInit(yzma.SamplerChainDefaultParams())
	yzma.SamplerChainAdd(chain, yzma.SamplerInitDist(seed))
	yzma.SamplerChainAdd(chain, yzma.SamplerInitGreedy())
	return &yzmaSampler{chain: chain}, nil
}

func (m *yzmaModel) Close() error {
	yzma.ModelFree(m.model)
	return nil
}

type yzmaContext struct {
	lctx yzma.Context
}

func (c *yzmaContext) Forward(b *Batch) error {
	staged := b.Tokens()
	if len(staged) == 0 {
		return errors.New("empty batch")
	}
	toks := make([]yzma.Token, len(staged))
	for i, st := range staged {
		// One sequence per session; logits are requested for the last
		// staged position only, which is exactly what batch_get_one does.
		if st.Seq != 0 {
			return fmt.Errorf("unsupported cache slot %d", st.Seq)
		}
		if st.Logits != (i == len(staged)-1) {
			return fmt.Errorf("logits flag must be set on the last staged token only")
		}
		toks[i] = yzma.Token(st.ID)
	}
	lb := yzma.BatchGetOne(toks)
	if _, err := yzma.Decode(c.lctx, lb); err != nil {
		return err
	}
	return nil
}

func (c *yzmaContext) Close() error {
	yzma.Free(c.lctx)
	return nil
}

type yzmaSampler struct {
	chain yzma.Sampler
}

func (s *yzmaSampler) Sample(ctx Context, idx int32) Token {
	yc := ctx.(*yzmaContext)
	return Token(yzma.SamplerSample(s.chain, yc.lctx, idx))
}

func (s *yzmaSampler) Accept(tok Token) {
	yzma.SamplerAccept(s.chain, yzma.Token(tok))
}

func (s *yzmaSampler) Close() error {
	yzma.SamplerFree(s.chain)
	return nil
}
