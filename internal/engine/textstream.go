package engine

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// streamDecoder turns token byte fragments back into text. A token may end
// in the middle of a multi-byte code point, so incomplete trailing bytes are
// carried into the next Write. Each session owns its own decoder; the carry
// state must never be shared across requests.
type streamDecoder struct {
	tr    transform.Transformer
	carry []byte
}

func newStreamDecoder() *streamDecoder {
	return &streamDecoder{tr: unicode.UTF8.NewDecoder().Transformer}
}

// Write decodes p, prefixed by any bytes carried from the previous call, and
// returns the complete code points as a string. Invalid bytes become U+FFFD;
// a truncated trailing sequence is held back for the next call.
func (d *streamDecoder) Write(p []byte) string {
	src := p
	if len(d.carry) > 0 {
		src = append(d.carry, p...)
	}
	var out []byte
	dst := make([]byte, len(src)*utf8.UTFMax+utf8.UTFMax)
	for {
		nDst, nSrc, err := d.tr.Transform(dst, src, false)
		out = append(out, dst[:nDst]...)
		src = src[nSrc:]
		if err != transform.ErrShortDst {
			break
		}
	}
	d.carry = append(d.carry[:0:0], src...)
	return string(out)
}
