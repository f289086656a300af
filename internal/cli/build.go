package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/obst/pkg/errors"
	"github.com/matzehuels/obst/pkg/graph"
	"github.com/matzehuels/obst/pkg/obst"
	"github.com/matzehuels/obst/pkg/pipeline"
	"github.com/matzehuels/obst/pkg/render/text"
)

// registerBuildFlags adds the key ordering and dataset flags shared by every
// command that builds a tree.
func registerBuildFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVar(&opts.Locale, "locale", opts.Locale, "BCP 47 locale for key collation (default: root collation)")
	cmd.Flags().BoolVar(&opts.ByteOrder, "byte-order", opts.ByteOrder, "compare keys bytewise instead of by collation")
	cmd.Flags().BoolVar(&opts.AllowDuplicates, "allow-duplicates", opts.AllowDuplicates, "keep repeated keys as distinct entries")
	cmd.Flags().IntVar(&opts.MaxEntries, "max-entries", opts.MaxEntries, "reject datasets with more entries")
}

// buildCommand creates the build command, which computes the optimal tree
// and prints it with its tables.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		in      inputFlags
		explain string
		tables  bool
		outline bool
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "build [key=frequency ...]",
		Short: "Compute the optimal binary search tree",
		Long: `Compute the optimal binary search tree for a set of keys.

Entries are read from --input, from key=frequency arguments, or from the
sample dataset. Entries with a blank key or a non-positive frequency are
dropped. The tree is printed with its total cost, followed by the keys, cost
and root tables.

Use -o to save the result document (JSON) for 'layout' and 'render'.`,
		Example: `  obst build --sample
  obst build a=3 b=1 c=4 --explain 0,2
  obst build -i words.toml --locale sv -o words.result.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, src, err := in.entries(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			opts.Entries = entries
			c.applyConfig(cmd, &opts)

			var cell []int
			if explain != "" {
				if cell, err = parseCell(explain); err != nil {
					return err
				}
			}
			return c.runBuild(cmd.Context(), opts, src, buildView{
				explain: cell,
				tables:  tables,
				outline: outline,
				output:  output,
				noCache: noCache,
			})
		},
	}

	in.register(cmd)
	registerBuildFlags(cmd, &opts)
	cmd.Flags().StringVar(&explain, "explain", "", "show the candidate roots for cell i,j")
	cmd.Flags().BoolVar(&tables, "tables", true, "print the keys, cost and root tables")
	cmd.Flags().BoolVar(&outline, "outline", false, "print the tree as an outline with L/R markers")
	cmd.Flags().StringVarP(&output, "output", "o", "", `write the result document to a file ("-" for stdout)`)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")

	return cmd
}

// buildView holds the display settings of the build command.
type buildView struct {
	explain []int
	tables  bool
	outline bool
	output  string
	noCache bool
}

// runBuild builds the tree and prints it.
func (c *CLI) runBuild(ctx context.Context, opts pipeline.Options, src source, view buildView) error {
	if src.fallback {
		printInfo("No input given; using the sample dataset")
	}

	runner, err := c.newRunner(ctx, view.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, dropped, cacheHit, err := runner.BuildWithCacheInfo(ctx, opts)
	if err != nil {
		return err
	}
	prog.done("Built tree", "keys", res.Len(), "source", src.name)

	if view.explain != nil {
		if _, ok := res.Candidates(view.explain[0], view.explain[1]); !ok {
			return errs.New(errs.ErrCodeInvalidInput, "cell %d,%d is outside the table (0 ≤ i ≤ j < %d)", view.explain[0], view.explain[1], res.Len())
		}
	}

	if view.output == "-" {
		return graph.WriteDocument(res, os.Stdout)
	}

	if dropped > 0 {
		printWarning("Dropped %d entries with a blank key or non-positive frequency", dropped)
	}
	if res.Len() == 0 {
		printWarning("No usable entries; the tree is empty")
		printKeyValue("Total cost", text.FormatNumber(0))
		return nil
	}

	printTree(res, view.outline)
	printNewline()
	printKeyValue("Total cost", StyleNumber.Render(text.FormatNumber(res.TotalCost)))
	printStats(res.Len(), res.Tree.Height(), res.TotalCost, cacheHit)

	if view.tables {
		printNewline()
		printTables(res)
	}
	if view.explain != nil {
		printNewline()
		printCandidates(res, view.explain[0], view.explain[1])
	}

	if view.output != "" {
		if err := graph.WriteDocumentFile(res, view.output); err != nil {
			return fmt.Errorf("write output %s: %w", view.output, err)
		}
		printNewline()
		printSuccess("Result saved")
		printFile(view.output)
		printNextStep("Lay out", appName+" layout "+view.output)
	}
	return nil
}

// parseCell parses an "i,j" table cell.
func parseCell(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "cell %q: want i,j", s)
	}
	cell := make([]int, 2)
	for k, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return nil, errs.New(errs.ErrCodeInvalidInput, "cell %q: want two non-negative integers", s)
		}
		cell[k] = n
	}
	return cell, nil
}

// resolveResult loads the tree a layout or render command works on. path
// names a result document or a dataset file; an empty path means the
// sample dataset. It also returns the base path for derived output files.
func (c *CLI) resolveResult(ctx context.Context, runner *pipeline.Runner, path string, opts pipeline.Options) (*obst.Result, string, bool, error) {
	if path != "" && isResultDocument(path) {
		res, err := graph.ReadDocumentFile(path)
		if err != nil {
			return nil, "", false, fmt.Errorf("load result %s: %w", path, err)
		}
		buildOpts, err := opts.BuildOptions()
		if err != nil {
			return nil, "", false, err
		}
		res.UseOrdering(buildOpts...)
		return res, outputBase(path), false, nil
	}

	in := inputFlags{file: path}
	entries, src, err := in.entries(nil, os.Stdin)
	if err != nil {
		return nil, "", false, err
	}
	base := outputBase(path)
	if src.fallback {
		printInfo("No input given; using the sample dataset")
		base = "sample"
	}

	opts.Entries = entries
	res, dropped, hit, err := runner.BuildWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, "", false, err
	}
	if dropped > 0 {
		printWarning("Dropped %d entries with a blank key or non-positive frequency", dropped)
	}
	return res, base, hit, nil
}

// outputBase strips the extension and any ".result" or ".layout" suffix.
func outputBase(path string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	for _, suffix := range []string{".result", ".layout"} {
		base = strings.TrimSuffix(base, suffix)
	}
	return base
}

// isResultDocument reports whether the JSON file at path holds a result
// document rather than a dataset.
func isResultDocument(path string) bool {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var fields map[string]json.RawMessage
	if json.Unmarshal(data, &fields) != nil {
		return false
	}
	_, hasKeys := fields["keys"]
	_, hasCost := fields["total_cost"]
	return hasKeys && hasCost
}
