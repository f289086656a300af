// Package cache stores pipeline outputs (results, layouts and rendered
// artifacts) behind a small byte-oriented interface.
//
// Backends:
//   - [FileCache]: JSON entry files under a directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by the server
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: caching disabled
//
// Keys are built by a [Keyer] from content hashes and the options that
// affect each stage, so equal inputs share cache entries.
package cache

import (
	"context"
	"time"
)

// Default TTLs for each pipeline stage. Outputs are pure functions of their
// inputs, so entries only expire to bound storage.
const (
	TTLResult   = 7 * 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys for pipeline stages.
type Keyer interface {
	ResultKey(datasetHash string, opts ResultKeyOpts) string
	LayoutKey(resultHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// ResultKeyOpts are the build options that change a result.
type ResultKeyOpts struct {
	Locale    string `json:"locale,omitempty"`
	ByteOrder bool   `json:"byte_order,omitempty"`
}

// LayoutKeyOpts are the layout options that change a layout.
type LayoutKeyOpts struct {
	VizType      string  `json:"viz_type"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	OriginX      float64 `json:"origin_x"`
	OriginY      float64 `json:"origin_y"`
	Spacing      float64 `json:"spacing"`
	VerticalStep float64 `json:"vertical_step"`
	Shrink       float64 `json:"shrink"`
	Detailed     bool    `json:"detailed,omitempty"`
	Style        string  `json:"style,omitempty"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Style  string  `json:"style"`
	Scale  float64 `json:"scale,omitempty"`
	Fit    bool    `json:"fit,omitempty"`
}

// DefaultKeyer builds keys of the form "stage:sha256(parts)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey generates a key for a built result.
func (DefaultKeyer) ResultKey(datasetHash string, opts ResultKeyOpts) string {
	return hashKey("result", datasetHash, opts)
}

// LayoutKey generates a key for a computed layout.
func (DefaultKeyer) LayoutKey(resultHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", resultHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
