// Package pipeline provides the build → layout → render pipeline for obst.
//
// This package implements the complete pipeline used by the CLI and the HTTP
// API. By centralizing this logic, both entry points share defaults,
// validation and caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Filter and validate the dataset, then compute the optimal tree
//  2. Layout: Position the tree (or emit DOT for Graphviz)
//  3. Render: Generate outputs (SVG, PNG, PDF, JSON, DOT, text)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Entries: dataset.Default(),
//	    Formats: []string{"svg", "txt"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	res, err := runner.Build(ctx, opts)
//	l, err := runner.GenerateLayout(ctx, res, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"

	"github.com/matzehuels/obst/pkg/cache"
	"github.com/matzehuels/obst/pkg/dataset"
	errs "github.com/matzehuels/obst/pkg/errors"
	"github.com/matzehuels/obst/pkg/graph"
	"github.com/matzehuels/obst/pkg/layout"
	"github.com/matzehuels/obst/pkg/obst"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMaxEntries bounds dataset size. The builder is cubic in the
	// number of keys.
	DefaultMaxEntries = dataset.DefaultMaxEntries

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// DefaultVizType is the default visualization type.
const DefaultVizType = graph.VizTypeTree

// DefaultStyle is the default visual style.
const DefaultStyle = graph.StyleClassic

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatText = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatText: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	graph.StyleSimple:  true,
	graph.StyleClassic: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	graph.VizTypeTree:     true,
	graph.VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests. Zero values
// mean "use the default".
type Options struct {
	// Build options
	Entries         []obst.Entry `json:"entries,omitempty"`
	Locale          string       `json:"locale,omitempty"`     // BCP 47 tag for key collation
	ByteOrder       bool         `json:"byte_order,omitempty"` // Compare keys bytewise instead
	AllowDuplicates bool         `json:"allow_duplicates,omitempty"`
	MaxEntries      int          `json:"max_entries,omitempty"`

	// Layout options
	VizType      string  `json:"viz_type,omitempty"`
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	OriginX      float64 `json:"origin_x,omitempty"`
	OriginY      float64 `json:"origin_y,omitempty"`
	Spacing      float64 `json:"spacing,omitempty"`
	VerticalStep float64 `json:"vertical_step,omitempty"`
	Shrink       float64 `json:"shrink,omitempty"`
	Detailed     bool    `json:"detailed,omitempty"` // Nodelink labels show index, interval and cost

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Fit     bool     `json:"fit,omitempty"` // Grow the SVG viewBox to cover every node

	// Runtime options (not serialized)
	Logger         *log.Logger `json:"-"`
	Refresh        bool        `json:"-"` // Skip cache reads
	RequireEntries bool        `json:"-"` // Reject datasets that filter down to nothing

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Build is the computed tree with its tables.
	Build *obst.Result

	// Dropped is the number of entries removed by filtering.
	Dropped int

	// ResultHash is the content hash of the result document.
	ResultHash string

	// Layout is the serialized layout.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Keys       int
	Height     int
	TotalCost  float64
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit  bool // Whether the result came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, validList(ValidFormats))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errs.New(errs.ErrCodeInvalidStyle, "invalid style: %q (must be one of: %s)", style, validList(ValidStyles))
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errs.New(errs.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: %s)", vizType, validList(ValidVizTypes))
	}
	return nil
}

// ParseLocale parses a BCP 47 tag. The empty string is the root locale.
func ParseLocale(locale string) (language.Tag, error) {
	if locale == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und, errs.Wrap(errs.ErrCodeInvalidLocale, err, "invalid locale %q", locale)
	}
	return tag, nil
}

func validList(set map[string]bool) string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetBuildDefaults sets default values for building.
func (o *Options) SetBuildDefaults() {
	if o.MaxEntries == 0 {
		o.MaxEntries = DefaultMaxEntries
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForBuild sets build defaults and checks the locale.
// Entries are checked when the build runs.
func (o *Options) ValidateForBuild() error {
	o.SetBuildDefaults()
	if o.MaxEntries < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "max_entries must not be negative")
	}
	_, err := ParseLocale(o.Locale)
	return err
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width == 0 {
		o.Width = layout.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = layout.DefaultHeight
	}
	if o.OriginX == 0 {
		o.OriginX = layout.DefaultOriginX
	}
	if o.OriginY == 0 {
		o.OriginY = layout.DefaultOriginY
	}
	if o.Spacing == 0 {
		o.Spacing = layout.DefaultSpacing
	}
	if o.VerticalStep == 0 {
		o.VerticalStep = layout.DefaultVerticalStep
	}
	if o.Shrink == 0 {
		o.Shrink = layout.DefaultShrink
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if o.Width < 0 || o.Height < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "frame size must be positive, got %vx%v", o.Width, o.Height)
	}
	if o.Spacing < 0 || o.VerticalStep < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "spacing and vertical_step must be positive")
	}
	if o.Shrink < 0 || o.Shrink > 1 {
		return errs.New(errs.ErrCodeInvalidInput, "shrink must be in (0, 1], got %v", o.Shrink)
	}
	return ValidateStyle(o.Style)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.SetLayoutDefaults()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// IsTree returns true if this is a positioned tree visualization.
func (o *Options) IsTree() bool {
	return o.VizType == "" || o.VizType == graph.VizTypeTree
}

// IsNodelink returns true if this is a Graphviz visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == graph.VizTypeNodelink
}

// BuildOptions returns the key ordering options for obst.Build.
func (o *Options) BuildOptions() ([]obst.Option, error) {
	if o.ByteOrder {
		return []obst.Option{obst.WithByteOrder()}, nil
	}
	tag, err := ParseLocale(o.Locale)
	if err != nil {
		return nil, err
	}
	return []obst.Option{obst.WithLocale(tag)}, nil
}

// DatasetOptions returns the filtering and validation options.
func (o *Options) DatasetOptions() dataset.Options {
	return dataset.Options{
		AllowDuplicates: o.AllowDuplicates,
		RequireEntries:  o.RequireEntries,
		MaxEntries:      o.MaxEntries,
	}
}

// LayoutOptions returns the positioning options for layout.Compute.
func (o *Options) LayoutOptions() []layout.Option {
	return []layout.Option{
		layout.WithOrigin(o.OriginX, o.OriginY),
		layout.WithSpacing(o.Spacing),
		layout.WithVerticalStep(o.VerticalStep),
		layout.WithShrink(o.Shrink),
		layout.WithFrame(o.Width, o.Height),
	}
}

// ResultKeyOpts returns cache key options for building.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		Locale:    o.Locale,
		ByteOrder: o.ByteOrder,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		VizType:      o.VizType,
		Width:        o.Width,
		Height:       o.Height,
		OriginX:      o.OriginX,
		OriginY:      o.OriginY,
		Spacing:      o.Spacing,
		VerticalStep: o.VerticalStep,
		Shrink:       o.Shrink,
		Detailed:     o.Detailed,
		Style:        o.Style,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Style: o.Style, Fit: o.Fit}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
