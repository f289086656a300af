package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/obst/pkg/errors"
	"github.com/matzehuels/obst/pkg/pipeline"
)

// exploreCommand creates the explore command, an interactive view of the
// cost and root tables.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		in      inputFlags
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "explore [key=frequency ...]",
		Short: "Browse the cost and root tables interactively",
		Long: `Browse the cost and root tables interactively.

Move the cursor over any interval [i, j] to see every root the builder
considered for it: the cost of the left and right subtrees, the interval's
frequency sum, and the resulting total. The chosen root is highlighted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, src, err := in.entries(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			opts.Entries = entries
			c.applyConfig(cmd, &opts)
			return c.runExplore(cmd.Context(), opts, src, noCache)
		},
	}

	in.register(cmd)
	registerBuildFlags(cmd, &opts)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runExplore builds the tree and starts the explorer.
func (c *CLI) runExplore(ctx context.Context, opts pipeline.Options, src source, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Build(ctx, opts)
	if err != nil {
		return err
	}
	if res.Len() == 0 {
		return errs.New(errs.ErrCodeEmptyDataset, "nothing to explore: the dataset has no usable entries")
	}
	c.Logger.Debug("exploring", "keys", res.Len(), "source", src.name)

	p := tea.NewProgram(NewExploreModel(res), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("explore: %w", err)
	}
	return nil
}
