package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"translatord/internal/llama"
	"translatord/pkg/types"
)

// Direction is an ordered (source, target) language pair.
type Direction struct {
	Source string
	Target string
}

func (d Direction) String() string { return d.Source + " -> " + d.Target }

// ModelSpec binds one direction to a GGUF model file.
type ModelSpec struct {
	Source string
	Target string
	Path   string
}

// ModelHandle is an immutable, process-lifetime reference to loaded weights.
// Specs pointing at the same file share one handle, so they also share the
// forward-pass mutex.
type ModelHandle struct {
	ID    string
	Model llama.Model

	// fwd serializes forward passes on this model. Inference backends are
	// assumed non-reentrant unless proven otherwise.
	fwd sync.Mutex
}

// Registry holds the direction lookup table. It is built once at startup and
// read-only afterwards, so any number of requests may consult it without
// synchronization.
type Registry struct {
	table map[Direction]*ModelHandle
	order []Direction
}

// LoadRegistry loads every configured model and builds the direction table.
// Adding a direction is a config change, not a code change. Any load failure
// is startup-fatal to the caller.
func LoadRegistry(p llama.Provider, specs []ModelSpec, params llama.ModelParams) (*Registry, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("no models configured")
	}
	r := &Registry{table: make(map[Direction]*ModelHandle, len(specs))}
	byPath := make(map[string]*ModelHandle)
	for _, spec := range specs {
		dir := Direction{Source: spec.Source, Target: spec.Target}
		if dir.Source == "" || dir.Target == "" {
			return nil, fmt.Errorf("model entry %q: source and target are required", spec.Path)
		}
		if _, dup := r.table[dir]; dup {
			return nil, fmt.Errorf("duplicate direction %s", dir)
		}
		path, err := normalizePath(spec.Path)
		if err != nil {
			return nil, err
		}
		h, loaded := byPath[path]
		if !loaded {
			m, err := p.Load(path, params)
			if err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
			h = &ModelHandle{ID: filepath.Base(path), Model: m}
			byPath[path] = h
		}
		r.table[dir] = h
		r.order = append(r.order, dir)
	}
	return r, nil
}

// Lookup selects the model serving dir. Unconfigured pairs fail before any
// tokenization or compute happens.
func (r *Registry) Lookup(dir Direction) (*ModelHandle, error) {
	h, ok := r.table[dir]
	if !ok {
		return nil, unsupportedDirectionError{source: dir.Source, target: dir.Target}
	}
	return h, nil
}

// Directions lists the configured pairs in configuration order.
func (r *Registry) Directions() []types.DirectionInfo {
	out := make([]types.DirectionInfo, 0, len(r.order))
	for _, d := range r.order {
		out = append(out, types.DirectionInfo{Source: d.Source, Target: d.Target, Model: r.table[d].ID})
	}
	return out
}

// Close releases every loaded model exactly once.
func (r *Registry) Close() error {
	seen := make(map[*ModelHandle]bool)
	var first error
	for _, h := range r.table {
		if seen[h] {
			continue
		}
		seen[h] = true
		if err := h.Model.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// normalizePath expands a leading '~' and makes the path absolute.
func normalizePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty model path")
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home dir: %w", err)
		}
		if path == "~" {
			path = home
		} else {
			path = filepath.Join(home, strings.TrimPrefix(path, "~/"))
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("abs path: %w", err)
	}
	return abs, nil
}
