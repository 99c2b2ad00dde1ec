package main

import (
	"fmt"
	"strings"

	"translatord/internal/engine"
)

// parseModelSpec parses a --model flag value of the form SRC:TGT=path.
func parseModelSpec(raw string) (engine.ModelSpec, error) {
	pair, path, ok := strings.Cut(raw, "=")
	if !ok {
		return engine.ModelSpec{}, fmt.Errorf("invalid --model %q: no '=' found, want SRC:TGT=path", raw)
	}
	src, tgt, ok := strings.Cut(pair, ":")
	if !ok {
		return engine.ModelSpec{}, fmt.Errorf("invalid --model %q: direction must be SRC:TGT", raw)
	}
	src = strings.TrimSpace(src)
	tgt = strings.TrimSpace(tgt)
	path = strings.TrimSpace(path)
	if src == "" || tgt == "" || path == "" {
		return engine.ModelSpec{}, fmt.Errorf("invalid --model %q: empty source, target or path", raw)
	}
	return engine.ModelSpec{Source: src, Target: tgt, Path: path}, nil
}
