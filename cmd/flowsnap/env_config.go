package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/deskdocs/flowsnap/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // FLOWSNAP_CONFIG: config file name or path
	Engine     string        // FLOWSNAP_ENGINE: path to mermaid.min.js
	OutputDir  string        // FLOWSNAP_OUTPUT_DIR: default render output directory
	Timeout    time.Duration // FLOWSNAP_TIMEOUT: ready timeout for render and export
	Workers    int           // FLOWSNAP_WORKERS: concurrent render jobs
}

// knownEnvVars lists valid FLOWSNAP_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"FLOWSNAP_CONFIG":     true,
	"FLOWSNAP_ENGINE":     true,
	"FLOWSNAP_OUTPUT_DIR": true,
	"FLOWSNAP_TIMEOUT":    true,
	"FLOWSNAP_WORKERS":    true,
	"FLOWSNAP_CONTAINER":  true, // doctor: force container detection on/off
}

// loadEnvConfig reads configuration from environment variables.
// Malformed duration or integer values are skipped; the variables are
// ambient and a stale value must not brick unrelated commands.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("FLOWSNAP_CONFIG"),
		Engine:     getenv("FLOWSNAP_ENGINE"),
		OutputDir:  getenv("FLOWSNAP_OUTPUT_DIR"),
	}

	if timeout := getenv("FLOWSNAP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := getenv("FLOWSNAP_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized FLOWSNAP_* variables.
// Helps catch typos like FLOWSNAP_ENGIN instead of FLOWSNAP_ENGINE.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "FLOWSNAP_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Env values override config file values; CLI flags are merged afterwards
// and override both: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Engine != "" {
		cfg.Engine.Path = env.Engine
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Timeout > 0 {
		cfg.Render.Timeout = env.Timeout.String()
		cfg.Export.Timeout = env.Timeout.String()
	}
	if env.Workers > 0 {
		cfg.Render.Workers = env.Workers
	}
}

// resolveConfig loads the effective config: the --config flag wins over
// FLOWSNAP_CONFIG, then env var overrides are layered on top of the file.
func resolveConfig(flagConfig string, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)

	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}
