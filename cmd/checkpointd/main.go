package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/grestin/checkpoint/internal/border/common/clock"
	"github.com/grestin/checkpoint/internal/border/common/log"
	"github.com/grestin/checkpoint/internal/border/domain"
	"github.com/grestin/checkpoint/internal/border/infra/config"
	"github.com/grestin/checkpoint/internal/border/infra/roster"
	"github.com/grestin/checkpoint/internal/border/record"
	"github.com/grestin/checkpoint/internal/border/repos/verdictcache"
	"github.com/grestin/checkpoint/internal/border/rules"
	"github.com/grestin/checkpoint/internal/border/services/inspector"
)

const (
	version = "0.1.0-dev"
	appName = "checkpointd"
)

// Application holds the wired components of the admission daemon.
type Application struct {
	config    *config.AppConfig
	inspector *inspector.Inspector
}

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Configure global logging
	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Info(map[string]any{
		"version":      version,
		"env":          cfg.Env,
		"log_level":    cfg.LogLevel,
		"cache_size":   cfg.CacheSize,
		"roster_file":  cfg.RosterFile,
		"bulletin_dir": cfg.BulletinDir,
	}, "Starting checkpointd")

	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err}, "Failed to build application")
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info(map[string]any{"signal": sig.String()}, "Shutdown signal received")
		cancel()
	}()

	if err := app.Run(ctx, os.Stdin, os.Stdout); err != nil {
		log.Fatal(map[string]any{"error": err}, "Inspection loop failed")
	}

	log.Info(nil, "checkpointd stopped")
}

// buildApplication constructs all components and wires them together.
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	clk := &clock.RealClock{}
	logger := log.GetLogger()

	// Roster: static configuration data consumed by the engine.
	rst := domain.DefaultRoster()
	if cfg.RosterFile != "" {
		var err error
		rst, err = roster.Load(cfg.RosterFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load roster: %w", err)
		}
	}
	log.Info(map[string]any{
		"home":    rst.Home,
		"nations": len(rst.Nations),
	}, "Roster configured")

	// Verdict cache
	cacheSize := cfg.CacheSize
	if cfg.DisableCache {
		cacheSize = 0
		log.Info(map[string]any{"disabled": true}, "Verdict caching disabled")
	}
	cache, err := verdictcache.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create verdict cache: %w", err)
	}

	registry := rules.NewRegistry(rst, clk, logger)

	insp := inspector.New(inspector.Options{
		Registry: registry,
		Cache:    cache,
		Roster:   rst,
		Logger:   logger,
	})

	// Ingest startup bulletins, oldest first.
	if cfg.BulletinDir != "" {
		n, err := ingestBulletinDir(insp, cfg.BulletinDir)
		if err != nil {
			return nil, fmt.Errorf("failed to ingest bulletins: %w", err)
		}
		log.Info(map[string]any{
			"bulletin_dir": cfg.BulletinDir,
			"bulletins":    n,
		}, "Startup bulletins ingested")
	}

	return &Application{config: cfg, inspector: insp}, nil
}

// ingestBulletinDir feeds every *.txt file under dir to the inspector in
// lexical order and returns how many bulletins were ingested.
func ingestBulletinDir(insp *inspector.Inspector, dir string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return 0, err
	}
	sort.Strings(paths)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("reading bulletin %s: %w", path, err)
		}
		if err := insp.Ingest(string(data)); err != nil {
			return 0, fmt.Errorf("ingesting bulletin %s: %w", path, err)
		}
	}
	return len(paths), nil
}

// Run reads entrant submissions as one JSON object per line (document kind
// to text block) and writes one decision message per line. It returns when
// input is exhausted or the context is cancelled.
func (app *Application) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var sub record.Submission
		if err := json.Unmarshal([]byte(line), &sub); err != nil {
			log.Warn(map[string]any{"error": err.Error()}, "Malformed submission line")
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}

		verdict, err := app.inspector.Inspect(sub)
		if err != nil {
			log.Warn(map[string]any{"error": err.Error()}, "Inspection failed")
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		fmt.Fprintln(out, verdict)
	}
	return scanner.Err()
}
