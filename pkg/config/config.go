// Package config loads the obst configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/obst/config.toml, falling
// back to ~/.config/obst/config.toml. A missing file is not an error: every
// field has a default, and command-line flags override whatever the file
// sets.
//
//	[build]
//	locale = "sv"
//
//	[render]
//	style = "simple"
//	formats = ["svg", "txt"]
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "12h"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/obst/pkg/cache"
	errs "github.com/matzehuels/obst/pkg/errors"
	"github.com/matzehuels/obst/pkg/pipeline"
)

const (
	appName  = "obst"
	fileName = "config.toml"
)

// Config is the contents of the configuration file.
type Config struct {
	Build  Build  `toml:"build"`
	Layout Layout `toml:"layout"`
	Render Render `toml:"render"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Build holds dataset and ordering settings.
type Build struct {
	Locale          string `toml:"locale,omitempty"`
	ByteOrder       bool   `toml:"byte_order,omitempty"`
	AllowDuplicates bool   `toml:"allow_duplicates,omitempty"`
	MaxEntries      int    `toml:"max_entries,omitempty"`
}

// Layout holds positioning settings. Zero fields use the layout defaults.
type Layout struct {
	VizType      string  `toml:"viz_type,omitempty"`
	OriginX      float64 `toml:"origin_x,omitempty"`
	OriginY      float64 `toml:"origin_y,omitempty"`
	Spacing      float64 `toml:"spacing,omitempty"`
	VerticalStep float64 `toml:"vertical_step,omitempty"`
	Shrink       float64 `toml:"shrink,omitempty"`
	Width        float64 `toml:"width,omitempty"`
	Height       float64 `toml:"height,omitempty"`
	Detailed     bool    `toml:"detailed,omitempty"`
}

// Render holds output settings.
type Render struct {
	Style   string   `toml:"style,omitempty"`
	Formats []string `toml:"formats,omitempty"`
	Scale   float64  `toml:"scale,omitempty"`
	Fit     bool     `toml:"fit,omitempty"`
}

// Cache selects the cache backend.
type Cache struct {
	Backend         string   `toml:"backend,omitempty"`
	Dir             string   `toml:"dir,omitempty"`
	RedisURL        string   `toml:"redis_url,omitempty"`
	RedisPrefix     string   `toml:"redis_prefix,omitempty"`
	MongoURI        string   `toml:"mongo_uri,omitempty"`
	MongoDatabase   string   `toml:"mongo_database,omitempty"`
	MongoCollection string   `toml:"mongo_collection,omitempty"`
	TTL             Duration `toml:"ttl,omitempty"`
}

// Server holds HTTP API settings.
type Server struct {
	Addr            string   `toml:"addr,omitempty"`
	ReadTimeout     Duration `toml:"read_timeout,omitempty"`
	WriteTimeout    Duration `toml:"write_timeout,omitempty"`
	ShutdownTimeout Duration `toml:"shutdown_timeout,omitempty"`
	MaxBodyBytes    int64    `toml:"max_body_bytes,omitempty"`
}

// Duration is a time.Duration written as a string such as "30s".
type Duration time.Duration

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Render: Render{
			Style:   pipeline.DefaultStyle,
			Formats: []string{pipeline.FormatSVG},
		},
		Cache: Cache{Backend: cache.BackendFile},
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     Duration(30 * time.Second),
			WriteTimeout:    Duration(2 * time.Minute),
			ShutdownTimeout: Duration(10 * time.Second),
			MaxBodyBytes:    1 << 20,
		},
	}
}

// Dir returns the obst configuration directory.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the default configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the file at path over the defaults. An empty path means
// [Path]. A missing file yields the defaults. Unknown keys are rejected so
// typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errs.New(errs.ErrCodeInvalidFormat, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}

// Validate checks values the pipeline and cache would reject later.
func (c Config) Validate() error {
	if _, err := pipeline.ParseLocale(c.Build.Locale); err != nil {
		return err
	}
	if c.Build.MaxEntries < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "build.max_entries must not be negative")
	}
	if c.Layout.VizType != "" {
		if err := pipeline.ValidateVizType(c.Layout.VizType); err != nil {
			return err
		}
	}
	if c.Layout.Shrink < 0 || c.Layout.Shrink > 1 {
		return errs.New(errs.ErrCodeInvalidInput, "layout.shrink must be in (0, 1], got %v", c.Layout.Shrink)
	}
	if c.Render.Style != "" {
		if err := pipeline.ValidateStyle(c.Render.Style); err != nil {
			return err
		}
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return err
	}
	if c.Cache.Backend != "" && !slices.Contains(cache.Backends, c.Cache.Backend) {
		return errs.New(errs.ErrCodeInvalidInput, "cache.backend %q (must be one of: %s)", c.Cache.Backend, strings.Join(cache.Backends, ", "))
	}
	if c.Cache.TTL < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	return nil
}

// Apply fills unset pipeline options from the configuration. Fields the
// caller already set, typically from flags, are kept.
func (c Config) Apply(opts *pipeline.Options) {
	if opts.Locale == "" {
		opts.Locale = c.Build.Locale
	}
	opts.ByteOrder = opts.ByteOrder || c.Build.ByteOrder
	opts.AllowDuplicates = opts.AllowDuplicates || c.Build.AllowDuplicates
	if opts.MaxEntries == 0 {
		opts.MaxEntries = c.Build.MaxEntries
	}

	if opts.VizType == "" {
		opts.VizType = c.Layout.VizType
	}
	setFloat(&opts.OriginX, c.Layout.OriginX)
	setFloat(&opts.OriginY, c.Layout.OriginY)
	setFloat(&opts.Spacing, c.Layout.Spacing)
	setFloat(&opts.VerticalStep, c.Layout.VerticalStep)
	setFloat(&opts.Shrink, c.Layout.Shrink)
	setFloat(&opts.Width, c.Layout.Width)
	setFloat(&opts.Height, c.Layout.Height)
	opts.Detailed = opts.Detailed || c.Layout.Detailed

	if opts.Style == "" {
		opts.Style = c.Render.Style
	}
	if len(opts.Formats) == 0 {
		opts.Formats = slices.Clone(c.Render.Formats)
	}
	setFloat(&opts.Scale, c.Render.Scale)
	opts.Fit = opts.Fit || c.Render.Fit
}

// CacheOptions returns the options for [cache.Open]. A file backend with
// no directory uses defaultDir.
func (c Config) CacheOptions(defaultDir string) cache.Options {
	dir := c.Cache.Dir
	if dir == "" && (c.Cache.Backend == "" || c.Cache.Backend == cache.BackendFile) {
		dir = defaultDir
	}
	return cache.Options{
		Backend:         c.Cache.Backend,
		Dir:             dir,
		RedisURL:        c.Cache.RedisURL,
		RedisPrefix:     c.Cache.RedisPrefix,
		MongoURI:        c.Cache.MongoURI,
		MongoDatabase:   c.Cache.MongoDatabase,
		MongoCollection: c.Cache.MongoCollection,
		MaxTTL:          c.Cache.TTL.Std(),
	}
}

func setFloat(dst *float64, v float64) {
	if *dst == 0 {
		*dst = v
	}
}
