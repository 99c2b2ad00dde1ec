package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\nmax_tokens: 64\nseed: 7\nctx_size: 4096\nlog_level: debug\nmodels:\n  - source: uk\n    target: en\n    path: /m/uk-en.gguf\n  - source: en\n    target: uk\n    path: /m/en-uk.gguf\n")
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Addr != ":9999" || cfg.MaxTokens != 64 || cfg.Seed != 7 || cfg.CtxSize != 4096 || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.Models) != 2 || cfg.Models[0].Source != "uk" || cfg.Models[1].Path != "/m/en-uk.gguf" {
		t.Fatalf("unexpected models: %+v", cfg.Models)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","max_tokens":48,"threads":4,"threads_batch":8,"gpu_layers":-1,"models":[{"source":"uk","target":"en","path":"/m/a.gguf"}]}`)
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Addr != ":7070" || cfg.MaxTokens != 48 || cfg.Threads != 4 || cfg.ThreadsBatch != 8 || cfg.GPULayers != -1 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.Models) != 1 || cfg.Models[0].Target != "en" {
		t.Fatalf("unexpected models: %+v", cfg.Models)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nseed=1234\n[[models]]\nsource=\"en\"\ntarget=\"uk\"\npath=\"/m/b.gguf\"\n")
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Addr != ":8081" || cfg.Seed != 1234 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.Models) != 1 || cfg.Models[0].Source != "en" || cfg.Models[0].Path != "/m/b.gguf" {
		t.Fatalf("unexpected models: %+v", cfg.Models)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil { t.Fatalf("expected error on empty path") }
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil { t.Fatalf("expected unsupported extension error") }
	if _, err := Load(filepath.Join(d, "missing.yaml")); err == nil { t.Fatalf("expected error on missing file") }
}
