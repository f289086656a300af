package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/obst/pkg/cache"
	errs "github.com/matzehuels/obst/pkg/errors"
	"github.com/matzehuels/obst/pkg/pipeline"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != cache.BackendFile {
		t.Errorf("Cache.Backend = %q, want file", cfg.Cache.Backend)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[build]
locale = "sv"
allow_duplicates = true

[layout]
spacing = 150.0
shrink = 0.5

[render]
style = "simple"
formats = ["svg", "txt"]

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/0"
ttl = "12h"

[server]
read_timeout = "5s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Build.Locale != "sv" || !cfg.Build.AllowDuplicates {
		t.Errorf("Build = %+v", cfg.Build)
	}
	if cfg.Layout.Spacing != 150 || cfg.Layout.Shrink != 0.5 {
		t.Errorf("Layout = %+v", cfg.Layout)
	}
	if cfg.Render.Style != "simple" || len(cfg.Render.Formats) != 2 {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Cache.TTL.Std() != 12*time.Hour {
		t.Errorf("Cache.TTL = %v, want 12h", cfg.Cache.TTL.Std())
	}
	if cfg.Server.ReadTimeout.Std() != 5*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 5s", cfg.Server.ReadTimeout.Std())
	}
	// Unset fields keep their defaults.
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errs.Code
	}{
		{"syntax", "[build\n", errs.ErrCodeInvalidFormat},
		{"unknown key", "[build]\nlocal = \"sv\"\n", errs.ErrCodeInvalidFormat},
		{"bad duration", "[cache]\nttl = \"soon\"\n", errs.ErrCodeInvalidFormat},
		{"bad style", "[render]\nstyle = \"handdrawn\"\n", errs.ErrCodeInvalidStyle},
		{"bad format", "[render]\nformats = [\"gif\"]\n", errs.ErrCodeInvalidFormat},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", errs.ErrCodeInvalidInput},
		{"bad locale", "[build]\nlocale = \"x!\"\n", errs.ErrCodeInvalidLocale},
		{"bad shrink", "[layout]\nshrink = 2.0\n", errs.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errs.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Build.Locale = "de"
	cfg.Cache.TTL = Duration(90 * time.Minute)

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Build.Locale != "de" {
		t.Errorf("Build.Locale = %q, want de", got.Build.Locale)
	}
	if got.Cache.TTL != cfg.Cache.TTL {
		t.Errorf("Cache.TTL = %v, want %v", got.Cache.TTL.Std(), cfg.Cache.TTL.Std())
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	got, err := Path()
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if want := filepath.Join("/tmp/xdg", "obst", "config.toml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/tmp/home")
	got, err = Path()
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if want := filepath.Join("/tmp/home", ".config", "obst", "config.toml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestApply(t *testing.T) {
	cfg := Default()
	cfg.Build.Locale = "sv"
	cfg.Layout.Spacing = 150
	cfg.Render.Formats = []string{"txt"}

	// Flags already set win.
	opts := pipeline.Options{Locale: "de", Style: "simple"}
	cfg.Apply(&opts)

	if opts.Locale != "de" {
		t.Errorf("Locale = %q, want flag value de", opts.Locale)
	}
	if opts.Style != "simple" {
		t.Errorf("Style = %q, want flag value simple", opts.Style)
	}
	if opts.Spacing != 150 {
		t.Errorf("Spacing = %v, want 150", opts.Spacing)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "txt" {
		t.Errorf("Formats = %v, want [txt]", opts.Formats)
	}

	opts.Formats[0] = "svg"
	if cfg.Render.Formats[0] != "txt" {
		t.Error("Apply should copy the formats slice")
	}
}

func TestCacheOptions(t *testing.T) {
	cfg := Default()
	cfg.Cache.TTL = Duration(time.Hour)

	got := cfg.CacheOptions("/var/cache/obst")
	if got.Dir != "/var/cache/obst" || got.Backend != cache.BackendFile {
		t.Errorf("CacheOptions() = %+v", got)
	}
	if got.MaxTTL != time.Hour {
		t.Errorf("MaxTTL = %v, want 1h", got.MaxTTL)
	}

	cfg.Cache.Backend = cache.BackendRedis
	if got := cfg.CacheOptions("/var/cache/obst"); got.Dir != "" {
		t.Errorf("redis backend should not get a dir, got %q", got.Dir)
	}
}
