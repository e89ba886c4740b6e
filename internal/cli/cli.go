// Package cli implements the rnaplot command-line interface.
//
// This package provides commands for drawing RNA secondary structures
// from dot-bracket strings, inspecting parse and layout statistics,
// debugging the structure tree, serving the HTTP API, and managing the
// layout cache. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - draw: Render a structure to SVG, PNG, PDF, or JSON
//   - inspect: Show parse and layout statistics
//   - tree: Render the structure tree via Graphviz
//   - serve: Start the HTTP API
//   - cache: Manage the layout and artifact cache
//   - version: Show build information
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and
// --quiet (-q) to suppress everything below warnings. Loggers are
// passed through context.Context.
//
// # Example
//
//	import "github.com/strandlab/rnaplot/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(context.Background()); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/strandlab/rnaplot/pkg/buildinfo"
	"github.com/strandlab/rnaplot/pkg/cache"
	"github.com/strandlab/rnaplot/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "rnaplot"

// Execute runs the rnaplot CLI and returns an error if any command
// fails. The context carries cancellation from signal handling in main.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//   - With --quiet (-q): warn level
//
// The logger and resolved settings are attached to the command context
// and accessible to all commands via loggerFromContext and
// settingsFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		quiet      bool
		cacheDir   string
		noCache    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "rnaplot draws RNA secondary structures",
		Long:         `rnaplot renders RNA secondary structures from dot-bracket notation as deterministic 2D diagrams, with per-base coloring, base-pair probability shading, and SVG, PNG, PDF, and JSON output.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			if quiet {
				level = charmlog.WarnLevel
			}
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			s := &settings{
				config:   cfg,
				cacheDir: cacheDir,
				noCache:  noCache,
				quiet:    quiet,
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(withSettings(ctx, s))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress status output")
	pf.StringVar(&cacheDir, "cache-dir", "", "cache directory (default ~/.cache/rnaplot)")
	pf.BoolVar(&noCache, "no-cache", false, "disable layout and artifact caching")
	pf.StringVar(&configPath, "config", "", "config file (default ~/.config/rnaplot/config.toml)")

	root.AddCommand(newDrawCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newTreeCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newVersionCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}

// settings holds resolved global flags and the loaded config file.
type settings struct {
	config   *Config
	cacheDir string
	noCache  bool
	quiet    bool
}

// settingsKey is the context key for storing resolved settings.
const settingsKey ctxKey = 1

// withSettings returns a new context with the given settings attached.
func withSettings(ctx context.Context, s *settings) context.Context {
	return context.WithValue(ctx, settingsKey, s)
}

// settingsFromContext retrieves the settings from ctx. If no settings
// are attached, it returns zero-value settings with a default config so
// commands remain usable in tests.
func settingsFromContext(ctx context.Context) *settings {
	if s, ok := ctx.Value(settingsKey).(*settings); ok {
		return s
	}
	return &settings{config: defaultConfig()}
}

// newRunner creates a pipeline runner backed by the configured cache.
func newRunner(ctx context.Context) (*pipeline.Runner, error) {
	s := settingsFromContext(ctx)
	c, err := newCache(ctx, s)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(c, nil, loggerFromContext(ctx)), nil
}

// newCache builds the cache backend from flags and config. Flag values
// take precedence over the config file.
func newCache(ctx context.Context, s *settings) (cache.Cache, error) {
	if s.noCache || s.config.Cache.Backend == backendNone {
		return cache.NewNullCache(), nil
	}
	if s.config.Cache.Backend == backendRedis {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     s.config.Redis.Addr,
			Password: s.config.Redis.Password,
			DB:       s.config.Redis.DB,
		})
	}
	dir, err := s.resolveCacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// resolveCacheDir picks the cache directory: --cache-dir flag, then the
// config file, then the XDG default (~/.cache/rnaplot/).
func (s *settings) resolveCacheDir() (string, error) {
	if s.cacheDir != "" {
		return s.cacheDir, nil
	}
	if s.config.Cache.Dir != "" {
		return s.config.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
