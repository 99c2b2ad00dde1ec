package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ModelEntry maps one translation direction to a GGUF model file.
// Several entries may point at the same path; the registry loads it once.
type ModelEntry struct {
	Source string `json:"source" yaml:"source" toml:"source"`
	Target string `json:"target" yaml:"target" toml:"target"`
	Path   string `json:"path" yaml:"path" toml:"path"`
}

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr         string       `json:"addr" yaml:"addr" toml:"addr"`
	Models       []ModelEntry `json:"models" yaml:"models" toml:"models"`
	MaxTokens    int          `json:"max_tokens" yaml:"max_tokens" toml:"max_tokens"`
	Seed         uint32       `json:"seed" yaml:"seed" toml:"seed"`
	Threads      int          `json:"threads" yaml:"threads" toml:"threads"`
	ThreadsBatch int          `json:"threads_batch" yaml:"threads_batch" toml:"threads_batch"`
	CtxSize      int          `json:"ctx_size" yaml:"ctx_size" toml:"ctx_size"`
	GPULayers    int          `json:"gpu_layers" yaml:"gpu_layers" toml:"gpu_layers"`
	MaxBodyBytes int64        `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	LogLevel     string       `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
