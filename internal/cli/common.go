package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/danieljhkim/filescope/internal/config"
	"github.com/danieljhkim/filescope/internal/engine"
)

// newEngine loads configuration, sets up logging and opens the engine for
// the current workspace. The caller must Close the engine.
func newEngine(ctx context.Context) (*engine.Engine, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	cfg, err := loadConfig(paths)
	if err != nil {
		return nil, err
	}

	logger := setupLogger(cfg, stderr)

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	return engine.Open(ctx, &engine.OpenRequest{
		CWD:       cwd,
		Workspace: workspaceDir,
		Paths:     paths,
		Config:    cfg,
		Logger:    logger,
	})
}

// loadConfig reads the config file named by --config, or the default one.
func loadConfig(paths *config.Paths) (*config.Config, error) {
	configPath := cfgFile
	if configPath == "" {
		configPath = paths.ConfigFile()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// setupLogger builds the logger from the config, with --log-level and
// --log-format taking precedence. Logs go to w so stdout stays parseable.
func setupLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	levelStr := cfg.Log.Level
	if logLevel != "" {
		levelStr = logLevel
	}
	formatStr := cfg.Log.Format
	if logFormat != "" {
		formatStr = logFormat
	}

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: level}

	if formatStr == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
