package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/pkg/pipeline"
)

// layoutFlags binds the layout options shared by several commands.
func layoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.Engine, "engine", "e", "", "layout engine: waterfall, flow (default: from document)")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "viewport width (default: from document, else 375)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "viewport height (default: from document, else 667)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached result exists")
}

// layoutCommand creates the layout command for computing layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [document]",
		Short: "Compute a layout from a layout document",
		Long: `Compute a layout from a layout document.

The layout command reads a document (.json, .toml, .yaml) describing the
viewport and the sections to lay out, runs the waterfall or flow engine and
writes the geometry table as <document>.layout.json.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	layoutFlags(cmd, &opts)

	return cmd
}

// runLayout loads the document, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	doc, err := pipeline.LoadDocument(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Formats = []string{pipeline.FormatJSON}

	spin := newSpinner(ctx, c.errOut, "Computing layout...")
	spin.Start()
	result, err := runner.Execute(ctx, doc, opts)
	spin.Stop()
	if err != nil {
		c.out.failure("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}
	if err := os.WriteFile(outputPath, result.Artifacts[pipeline.FormatJSON], 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	c.out.success("Layout complete")
	c.out.file(outputPath)
	c.out.stats(result.Stats, result.CacheInfo.LayoutHit)
	c.out.nextStep("Render", appName+" render -f svg "+input)

	return nil
}
