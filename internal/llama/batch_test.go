package llama

import "testing"

func TestBatchAddAndLastIndex(t *testing.T) {
	b := NewBatch()
	if b.Len() != 0 { t.Fatalf("new batch len=%d", b.Len()) }
	for i := 0; i < 3; i++ {
		if err := b.Add(Token(100+i), int32(i), 0, i == 2); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	if b.Len() != 3 { t.Fatalf("len=%d", b.Len()) }
	if b.LastIndex() != 2 { t.Fatalf("last index=%d", b.LastIndex()) }
	toks := b.Tokens()
	if toks[0].Logits || toks[1].Logits || !toks[2].Logits {
		t.Fatalf("logits flags wrong: %+v", toks)
	}
	if toks[2].ID != 102 || toks[2].Pos != 2 || toks[2].Seq != 0 {
		t.Fatalf("unexpected staged token: %+v", toks[2])
	}
}

func TestBatchCapacity(t *testing.T) {
	b := NewBatch()
	for i := 0; i < MaxBatchTokens; i++ {
		if err := b.Add(Token(i), int32(i), 0, false); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	if err := b.Add(Token(0), int32(MaxBatchTokens), 0, true); err == nil {
		t.Fatalf("expected error past %d tokens", MaxBatchTokens)
	}
}

func TestBatchClear(t *testing.T) {
	b := NewBatch()
	_ = b.Add(1, 0, 0, true)
	b.Clear()
	if b.Len() != 0 { t.Fatalf("len after clear=%d", b.Len()) }
	if err := b.Add(2, 1, 0, true); err != nil { t.Fatalf("add after clear: %v", err) }
	if got := b.Tokens()[0].ID; got != 2 { t.Fatalf("token id=%d", got) }
}
