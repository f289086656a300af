package cli

import (
	"io"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/obst/pkg/pipeline"
)

// optionsCommand returns a command carrying the build, layout and fit flags.
func optionsCommand(opts *pipeline.Options) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	registerBuildFlags(cmd, opts)
	registerLayoutFlags(cmd, opts)
	cmd.Flags().BoolVar(&opts.Fit, "fit", opts.Fit, "")
	return cmd
}

func TestApplyConfig(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, o pipeline.Options)
	}{
		{
			name: "config fills unset flags",
			check: func(t *testing.T, o pipeline.Options) {
				if !o.Fit || !o.AllowDuplicates || o.OriginX != 300 || o.Style != "simple" {
					t.Errorf("options = %+v, want the configured values", o)
				}
			},
		},
		{
			name: "explicit false wins",
			args: []string{"--fit=false", "--allow-duplicates=false"},
			check: func(t *testing.T, o pipeline.Options) {
				if o.Fit {
					t.Error("--fit=false should override fit = true")
				}
				if o.AllowDuplicates {
					t.Error("--allow-duplicates=false should override allow_duplicates = true")
				}
				if o.OriginX != 300 {
					t.Errorf("OriginX = %v, want configured 300", o.OriginX)
				}
			},
		},
		{
			name: "explicit zero wins",
			args: []string{"--origin-x", "0", "--style", "classic"},
			check: func(t *testing.T, o pipeline.Options) {
				if o.OriginX != 0 {
					t.Errorf("OriginX = %v, want 0", o.OriginX)
				}
				if o.Style != "classic" {
					t.Errorf("Style = %q, want classic", o.Style)
				}
				if o.Spacing != 120 {
					t.Errorf("Spacing = %v, want configured 120", o.Spacing)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(io.Discard, LogInfo)
			c.Config.Render.Fit = true
			c.Config.Render.Style = "simple"
			c.Config.Build.AllowDuplicates = true
			c.Config.Layout.OriginX = 300
			c.Config.Layout.Spacing = 120

			var opts pipeline.Options
			cmd := optionsCommand(&opts)
			if err := cmd.Flags().Parse(tt.args); err != nil {
				t.Fatalf("Parse(%v) error: %v", tt.args, err)
			}
			c.applyConfig(cmd, &opts)
			tt.check(t, opts)
		})
	}
}

func TestApplyConfigZeroSelectsDefault(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Layout.OriginX = 300

	var opts pipeline.Options
	cmd := optionsCommand(&opts)
	if err := cmd.Flags().Parse([]string{"--origin-x", "0"}); err != nil {
		t.Fatal(err)
	}
	c.applyConfig(cmd, &opts)
	opts.SetLayoutDefaults()

	if opts.OriginX != 500 {
		t.Errorf("OriginX = %v, want the built-in default 500", opts.OriginX)
	}
}
