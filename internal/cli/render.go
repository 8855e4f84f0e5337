package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/pkg/pipeline"
)

// renderCommand creates the render command for writing artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Render a layout document to SVG or JSON",
		Long: `Render a layout document to SVG or JSON.

The SVG output is a wireframe of every header, cell and footer. With --sticky
the viewport at --offset is outlined and pinned headers are drawn where the
sticky overlay places them.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			opts.Sticky = opts.Sticky || cmd.Flags().Changed("offset")
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "label entries with their section and item")
	cmd.Flags().BoolVar(&opts.Sticky, "sticky", false, "apply the sticky header overlay")
	cmd.Flags().Float64Var(&opts.OffsetY, "offset", 0, "vertical scroll offset for --sticky")
	cmd.Flags().Float64Var(&opts.FixedTopOffset, "fixed-top", 0, "height of a bar drawn over the top of the content")
	layoutFlags(cmd, &opts)

	return cmd
}

// runRender loads the document and writes one file per requested format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	spin := newSpinner(ctx, c.errOut, "Rendering...")
	spin.Start()
	result, err := runner.Execute(ctx, doc, opts)
	spin.Stop()
	if err != nil {
		c.out.failure("Render failed")
		return fmt.Errorf("render: %w", err)
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	c.out.success("Render complete")
	for _, p := range paths {
		c.out.file(p)
	}
	c.out.stats(result.Stats, result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes each artifact and returns the paths written, in
// format order. A single format goes to output verbatim when it is set;
// otherwise files are named <base>.svg and <base>.layout.json.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	formats = slices.Compact(slices.Clone(formats))
	base := basePath(output, input)

	var paths []string
	for _, format := range formats {
		path := base + "." + format
		if format == pipeline.FormatJSON {
			path = base + ".layout.json"
		}
		if len(formats) == 1 && output != "" {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
