package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/obst/pkg/dataset"
)

// sampleCommand creates the sample command, which prints the built-in
// dataset in any supported format.
func (c *CLI) sampleCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the sample dataset",
		Long: `Print the sample dataset: nine words with access frequencies.

The output is a valid dataset file, so it is a starting point for your own:

  obst sample -o words.toml
  obst build -i words.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = dataset.FormatTOML
				if output != "" {
					if f, err := dataset.FormatFromPath(output); err == nil {
						format = f
					}
				}
			}

			out, err := openOutput(output)
			if err != nil {
				return fmt.Errorf("create output %s: %w", output, err)
			}
			defer out.Close()

			if err := dataset.Write(out, dataset.Default(), format); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintln(os.Stderr, styleIconSuccess.Render(iconSuccess)+" Sample written to "+output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "dataset format: toml (default), json, csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}
