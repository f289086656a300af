package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/obst/pkg/errors"
	"github.com/matzehuels/obst/pkg/pipeline"
)

// renderCommand creates the render command, which runs the whole
// build → layout → render pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		in         inputFlags
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [key=frequency ...]",
		Short: "Draw the optimal tree for a dataset",
		Long: `Draw the optimal tree for a dataset.

The render command builds the tree, lays it out and draws it in one step.
--input accepts a dataset file or a result document from 'build -o'.
Without input the sample dataset is drawn.

Every stage is cached locally; a second run with the same input and options
only reads the cache.`,
		Example: `  obst render --sample -f svg,png
  obst render -i words.toml -t nodelink -o words.svg
  obst render a=3 b=1 c=4 -f txt -o -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			c.applyConfig(cmd, &opts)
			return c.runRender(cmd.Context(), &in, args, opts, output, noCache)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file (single format, "-" for stdout) or base path (multiple)`)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, txt (comma-separated)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG scale factor (default 2)")
	cmd.Flags().BoolVar(&opts.Fit, "fit", opts.Fit, "grow the SVG viewBox to cover every node")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	registerBuildFlags(cmd, &opts)
	registerLayoutFlags(cmd, &opts)

	return cmd
}

// runRender executes the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, in *inputFlags, args []string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if in.file != "" && in.file != "-" && isResultDocument(in.file) {
		return c.renderResultDocument(ctx, runner, in.file, opts, output)
	}

	entries, src, err := in.entries(args, os.Stdin)
	if err != nil {
		return err
	}
	if src.fallback && output != "-" {
		printInfo("No input given; using the sample dataset")
	}
	opts.Entries = entries

	base := "obst"
	switch {
	case src.name == "sample":
		base = "sample"
	case in.file != "" && in.file != "-":
		base = outputBase(in.file)
	}

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if result.Dropped > 0 && output != "-" {
		printWarning("Dropped %d entries with a blank key or non-positive frequency", result.Dropped)
	}

	formats := opts.Formats
	if len(formats) == 0 {
		formats = []string{pipeline.FormatSVG}
	}
	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   formats,
		base:      base,
		output:    output,
		cacheHit:  result.CacheInfo.RenderHit,
		stats:     &result.Stats,
	})
}

// renderResultDocument lays out and draws a saved result document.
func (c *CLI) renderResultDocument(ctx context.Context, runner *pipeline.Runner, path string, opts pipeline.Options, output string) error {
	res, base, _, err := c.resolveResult(ctx, runner, path, opts)
	if err != nil {
		return err
	}
	l, err := runner.GenerateLayout(ctx, res, opts)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	formats := opts.Formats
	if len(formats) == 0 {
		formats = []string{pipeline.FormatSVG}
	}
	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   formats,
		base:      base,
		output:    output,
		cacheHit:  cacheHit,
		stats: &pipeline.Stats{
			Keys:      res.Len(),
			Height:    res.Tree.Height(),
			TotalCost: res.TotalCost,
		},
	})
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams holds the inputs of writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	base      string // base path derived from the input
	output    string // -o flag value
	cacheHit  bool
	stats     *pipeline.Stats
}

// writeArtifacts writes each rendered format to its file. A single format
// goes to -o when given ("-" means stdout); several formats are written as
// <base>.<format>, where -o overrides the base.
func writeArtifacts(p artifactWriteParams) error {
	if p.output == "-" {
		if len(p.formats) != 1 {
			return errs.New(errs.ErrCodeInvalidInput, "-o - needs exactly one format, got %d", len(p.formats))
		}
		_, err := os.Stdout.Write(p.artifacts[p.formats[0]])
		return err
	}

	paths := artifactPaths(p.formats, p.base, p.output)
	for _, format := range p.formats {
		path := paths[format]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
	}

	printSuccess("Render complete")
	for _, format := range p.formats {
		printFile(paths[format])
	}
	if p.stats != nil {
		printStats(p.stats.Keys, p.stats.Height, p.stats.TotalCost, p.cacheHit)
	}
	return nil
}

// artifactPaths maps each format to its output path.
func artifactPaths(formats []string, base, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	if output != "" {
		base = basePath(output)
	}
	for _, format := range formats {
		paths[format] = base + "." + format
	}
	return paths
}

// basePath strips a known format extension from an output path.
func basePath(output string) string {
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
