package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/obst/pkg/graph"
	"github.com/matzehuels/obst/pkg/pipeline"
)

// registerLayoutFlags adds the positioning flags shared by layout and render.
func registerLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", opts.VizType, "visualization type: tree (default), nodelink")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width (default 1000)")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height (default 500)")
	cmd.Flags().Float64Var(&opts.OriginX, "origin-x", opts.OriginX, "x position of the root (default 500)")
	cmd.Flags().Float64Var(&opts.OriginY, "origin-y", opts.OriginY, "y position of the root (default 50)")
	cmd.Flags().Float64Var(&opts.Spacing, "spacing", opts.Spacing, "horizontal offset of the root's children (default 200)")
	cmd.Flags().Float64Var(&opts.VerticalStep, "step", opts.VerticalStep, "vertical distance between levels (default 80)")
	cmd.Flags().Float64Var(&opts.Shrink, "shrink", opts.Shrink, "spacing factor applied per level (default 0.6)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", opts.Detailed, "label nodelink nodes with index, interval and cost")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: classic (default), simple")
}

// layoutCommand creates the layout command for computing visualization layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [dataset|result.json]",
		Short: "Compute the drawing layout of an optimal tree",
		Long: `Compute the drawing layout of an optimal tree.

The layout command takes a dataset file or a result document (produced by
'build -o') and positions every node. The output is a layout.json file (same
format as 'render -f json') that can be drawn with the 'visualize' command.

Without an argument the sample dataset is used.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			return c.runLayout(cmd.Context(), firstArg(args), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	registerBuildFlags(cmd, &opts)
	registerLayoutFlags(cmd, &opts)

	return cmd
}

// runLayout loads the tree, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, base, _, err := c.resolveResult(ctx, runner, input, opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	layout, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, res, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = base + ".layout.json"
	}
	if err := graph.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(res.Len(), res.Tree.Height(), res.TotalCost, cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}

// firstArg returns args[0], or "" when there are no arguments.
func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
