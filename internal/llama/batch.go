package llama

import "fmt"

// MaxBatchTokens is the most tokens one forward pass may stage.
const MaxBatchTokens = 512

// StagedToken is one entry submitted for decoding.
type StagedToken struct {
	ID Token
	// Pos is the absolute position in the sequence.
	Pos int32
	// Seq is the cache-slot index. Sessions hold exactly one sequence, so
	// this is always 0 today.
	Seq int32
	// Logits marks the position whose output distribution is required.
	Logits bool
}

// Batch stages tokens for a single forward pass. It is reused across
// iterations of a decode loop via Clear; it is not safe for concurrent use.
type Batch struct {
	staged []StagedToken
}

// NewBatch returns an empty batch with capacity MaxBatchTokens.
func NewBatch() *Batch {
	return &Batch{staged: make([]StagedToken, 0, MaxBatchTokens)}
}

// Add stages one token. It fails when the batch is full.
func (b *Batch) Add(id Token, pos int32, seq int32, logits bool) error {
	if len(b.staged) >= MaxBatchTokens {
		return fmt.Errorf("batch full: %d tokens staged", MaxBatchTokens)
	}
	b.staged = append(b.staged, StagedToken{ID: id, Pos: pos, Seq: seq, Logits: logits})
	return nil
}

// Clear drops all staged tokens, keeping capacity.
func (b *Batch) Clear() { b.staged = b.staged[:0] }

// Len reports the number of staged tokens.
func (b *Batch) Len() int { return len(b.staged) }

// Tokens returns the staged tokens in submission order.
func (b *Batch) Tokens() []StagedToken { return b.staged }

// LastIndex is the batch index of the most recently staged token, i.e. the
// position whose logits the sampler reads after a forward pass.
func (b *Batch) LastIndex() int32 { return int32(len(b.staged) - 1) }
