package engine

import (
	"errors"
	"fmt"

	"translatord/internal/llama"
)

// fakeProvider hands out pre-built models keyed by path, so tests control
// tokenization and sampling without any native runtime.
type fakeProvider struct {
	models  map[string]*fakeModel
	loads   []string
	loadErr error
}

func (p *fakeProvider) Load(path string, params llama.ModelParams) (llama.Model, error) {
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	m, ok := p.models[path]
	if !ok {
		return nil, fmt.Errorf("no fake model at %s", path)
	}
	p.loads = append(p.loads, path)
	return m, nil
}

type forwardRecord struct {
	len        int
	lastPos    int32
	lastLogits bool
}

type fakeModel struct {
	// encode returns this many tokens for any text (BOS included).
	promptTokens int
	encodeCalls  int
	encodeErr    error

	// script is the token sequence the sampler yields; token 2 is EOG.
	script  []llama.Token
	pieces  map[llama.Token][]byte
	scripti int

	forwardFailOn int // 1-based forward pass to fail on, 0 = never
	forwards      []forwardRecord

	contextsOpen   int
	contextsClosed int
	samplersClosed int
	seed           uint32
	closed         bool
}

const fakeEOG = llama.Token(2)

func (m *fakeModel) ContextLength() uint32 { return 8192 }

func (m *fakeModel) Encode(text string) ([]llama.Token, error) {
	m.encodeCalls++
	if m.encodeErr != nil {
		return nil, m.encodeErr
	}
	toks := make([]llama.Token, m.promptTokens)
	for i := range toks {
		toks[i] = llama.Token(1000 + i)
	}
	return toks, nil
}

func (m *fakeModel) DecodeBytes(tok llama.Token) ([]byte, error) {
	if b, ok := m.pieces[tok]; ok {
		return b, nil
	}
	return []byte(fmt.Sprintf(" t%d", tok)), nil
}

func (m *fakeModel) IsEOG(tok llama.Token) bool { return tok == fakeEOG }

func (m *fakeModel) NewContext(params llama.ContextParams) (llama.Context, error) {
	m.contextsOpen++
	return &fakeContext{model: m}, nil
}

func (m *fakeModel) NewSampler(seed uint32) (llama.Sampler, error) {
	m.seed = seed
	return &fakeSampler{model: m}, nil
}

func (m *fakeModel) Close() error {
	m.closed = true
	return nil
}

type fakeContext struct {
	model *fakeModel
}

func (c *fakeContext) Forward(b *llama.Batch) error {
	staged := b.Tokens()
	if len(staged) == 0 {
		return errors.New("empty batch")
	}
	last := staged[len(staged)-1]
	c.model.forwards = append(c.model.forwards, forwardRecord{
		len:        len(staged),
		lastPos:    last.Pos,
		lastLogits: last.Logits,
	})
	if n := c.model.forwardFailOn; n > 0 && len(c.model.forwards) == n {
		return errors.New("decode failed")
	}
	return nil
}

func (c *fakeContext) Close() error {
	c.model.contextsClosed++
	return nil
}

type fakeSampler struct {
	model *fakeModel
}

func (s *fakeSampler) Sample(ctx llama.Context, idx int32) llama.Token {
	m := s.model
	if m.scripti >= len(m.script) {
		// Keep generating non-EOG tokens so budget exhaustion is testable.
		return llama.Token(500)
	}
	tok := m.script[m.scripti]
	m.scripti++
	return tok
}

func (s *fakeSampler) Accept(tok llama.Token) {}

func (s *fakeSampler) Close() error {
	s.model.samplersClosed++
	return nil
}
