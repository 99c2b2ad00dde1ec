package engine

import (
	"strings"

	"translatord/internal/llama"
)

// run drives the generation session to completion: stage the prompt, one
// prefill pass, then iterate sample -> stop check -> decode -> append ->
// stage -> forward until the model emits an end-of-generation token or the
// budget is reached. The loop executes at most maxTokens-promptTokens+1
// forward passes.
func (s *session) run(prompt []llama.Token) (string, error) {
	// Logits are needed only at the last prompt position.
	last := len(prompt) - 1
	for i, tok := range prompt {
		if err := s.batch.Add(tok, int32(i), 0, i == last); err != nil {
			return "", forwardError{err: err}
		}
	}
	if err := s.forward(); err != nil {
		return "", forwardError{err: err}
	}
	s.nCur = int32(s.batch.Len())

	model := s.handle.Model
	for s.nCur <= s.maxTokens {
		tok := s.sampler.Sample(s.lctx, s.batch.LastIndex())
		s.sampler.Accept(tok)
		if model.IsEOG(tok) {
			break
		}
		frag, err := model.DecodeBytes(tok)
		if err != nil {
			return "", tokenizeError{err: err}
		}
		s.out.WriteString(s.dec.Write(frag))

		s.batch.Clear()
		if err := s.batch.Add(tok, s.nCur, 0, true); err != nil {
			return "", forwardError{err: err}
		}
		s.nCur++
		// A failure here leaves the KV cache partially advanced; the only
		// recovery is discarding the session.
		if err := s.forward(); err != nil {
			return "", forwardError{err: err}
		}
		generatedTokens.Inc()
	}
	return strings.TrimSpace(s.out.String()), nil
}
