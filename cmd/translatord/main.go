package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"translatord/internal/config"
	"translatord/internal/engine"
	"translatord/internal/httpapi"
	"translatord/internal/llama"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "translatord:", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "translatord",
		Short:         "Translation server over directional GGUF models",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, configPath)
		},
	}
	f := root.Flags()
	f.StringVar(&configPath, "config", os.Getenv("TRANSLATORD_CONFIG"), "Path to config file (.yaml/.json/.toml)")
	f.String("addr", envOr("TRANSLATORD_ADDR", "127.0.0.1:3000"), "HTTP listen address")
	f.StringArray("model", nil, "Direction model as SRC:TGT=path/to/model.gguf (repeatable)")
	f.Int("max-tokens", 0, "Length of prompt plus output in tokens (default 32)")
	f.Uint32("seed", 0, "RNG seed for the sampler (default 1234)")
	f.Int("threads", 0, "Threads used during generation (default: provider choice)")
	f.Int("threads-batch", 0, "Threads used during prompt processing (default: --threads)")
	f.Int("ctx-size", 0, "Context window size in tokens (default 2048)")
	f.Int("gpu-layers", 0, "Layers to offload to the GPU (-1 for all, 0 disables)")
	f.String("log-level", envOr("TRANSLATORD_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	return root
}

// run merges config file and flags (flags win), loads the models and serves
// HTTP until SIGINT/SIGTERM.
func run(cmd *cobra.Command, configPath string) error {
	var cfg config.Config
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	f := cmd.Flags()
	if v, _ := f.GetString("addr"); f.Changed("addr") || cfg.Addr == "" {
		cfg.Addr = v
	}
	if v, _ := f.GetInt("max-tokens"); v > 0 {
		cfg.MaxTokens = v
	}
	if v, _ := f.GetUint32("seed"); v != 0 {
		cfg.Seed = v
	}
	if v, _ := f.GetInt("threads"); v > 0 {
		cfg.Threads = v
	}
	if v, _ := f.GetInt("threads-batch"); v > 0 {
		cfg.ThreadsBatch = v
	}
	if v, _ := f.GetInt("ctx-size"); v > 0 {
		cfg.CtxSize = v
	}
	if v, _ := f.GetInt("gpu-layers"); f.Changed("gpu-layers") {
		cfg.GPULayers = v
	}
	if v, _ := f.GetString("log-level"); f.Changed("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = v
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("config: invalid log level %q", cfg.LogLevel)
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	log.Debug().Bool("llama_built", llama.Built()).Msg("starting")

	specs := make([]engine.ModelSpec, 0, len(cfg.Models))
	for _, m := range cfg.Models {
		specs = append(specs, engine.ModelSpec{Source: m.Source, Target: m.Target, Path: m.Path})
	}
	modelFlags, _ := f.GetStringArray("model")
	for _, raw := range modelFlags {
		spec, err := parseModelSpec(raw)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
	}

	reg, err := engine.LoadRegistry(llama.NewProvider(), specs, llama.ModelParams{GPULayers: cfg.GPULayers})
	if err != nil {
		return fmt.Errorf("load models: %w", err)
	}
	defer reg.Close()

	eng := engine.New(reg, engine.Params{
		MaxTokens:    cfg.MaxTokens,
		Seed:         cfg.Seed,
		Threads:      cfg.Threads,
		ThreadsBatch: cfg.ThreadsBatch,
		CtxSize:      cfg.CtxSize,
	}, log)

	httpapi.SetLogger(log)
	if cfg.MaxBodyBytes > 0 {
		httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	}
	srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(eng)}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Int("directions", len(eng.Directions())).Msg("translatord listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-stop:
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown")
	}
	return nil
}
