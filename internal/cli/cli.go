// Package cli implements the obst command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/obst/pkg/cache"
	"github.com/matzehuels/obst/pkg/config"
	"github.com/matzehuels/obst/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "obst"

	// keyPrefix scopes cache keys so shared backends can hold other data.
	keyPrefix = "obst:v1:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded in the root command's PersistentPreRunE.
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the configuration file named by --config, or the
// default location.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, cache.NewScopedKeyer(nil, keyPrefix), c.Logger), nil
}

// openCache opens the configured backend. An unusable file cache
// directory degrades to no caching.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	opts := c.Config.CacheOptions(dir)
	if err != nil && opts.Backend == cache.BackendFile && opts.Dir == "" {
		c.Logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	store, err := cache.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return store, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/obst/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// flagFields copies the option behind each flag from src to dst.
var flagFields = map[string]func(dst *pipeline.Options, src pipeline.Options){
	"locale":           func(d *pipeline.Options, s pipeline.Options) { d.Locale = s.Locale },
	"byte-order":       func(d *pipeline.Options, s pipeline.Options) { d.ByteOrder = s.ByteOrder },
	"allow-duplicates": func(d *pipeline.Options, s pipeline.Options) { d.AllowDuplicates = s.AllowDuplicates },
	"max-entries":      func(d *pipeline.Options, s pipeline.Options) { d.MaxEntries = s.MaxEntries },
	"type":             func(d *pipeline.Options, s pipeline.Options) { d.VizType = s.VizType },
	"width":            func(d *pipeline.Options, s pipeline.Options) { d.Width = s.Width },
	"height":           func(d *pipeline.Options, s pipeline.Options) { d.Height = s.Height },
	"origin-x":         func(d *pipeline.Options, s pipeline.Options) { d.OriginX = s.OriginX },
	"origin-y":         func(d *pipeline.Options, s pipeline.Options) { d.OriginY = s.OriginY },
	"spacing":          func(d *pipeline.Options, s pipeline.Options) { d.Spacing = s.Spacing },
	"step":             func(d *pipeline.Options, s pipeline.Options) { d.VerticalStep = s.VerticalStep },
	"shrink":           func(d *pipeline.Options, s pipeline.Options) { d.Shrink = s.Shrink },
	"detailed":         func(d *pipeline.Options, s pipeline.Options) { d.Detailed = s.Detailed },
	"style":            func(d *pipeline.Options, s pipeline.Options) { d.Style = s.Style },
	"scale":            func(d *pipeline.Options, s pipeline.Options) { d.Scale = s.Scale },
	"fit":              func(d *pipeline.Options, s pipeline.Options) { d.Fit = s.Fit },
}

// applyConfig fills opts from the configuration, then restores every flag
// the user set explicitly, so --fit=false beats fit = true in the file.
// A numeric flag set to 0 selects the built-in default.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *pipeline.Options) {
	fromFlags := *opts
	c.Config.Apply(opts)
	restoreFlags(cmd, opts, fromFlags)
}

// restoreFlags copies the options of changed flags from src into dst.
func restoreFlags(cmd *cobra.Command, dst *pipeline.Options, src pipeline.Options) {
	for name, restore := range flagFields {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			restore(dst, src)
		}
	}
}

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields nil so the configured formats apply.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
