package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/pkg/layout/sticky"
	"github.com/matzehuels/pinboard/pkg/pipeline"
)

// previewCommand creates the preview command for interactive scrolling.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		noCache   bool
		allSticky bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "preview [document]",
		Short: "Scroll through a layout in the terminal",
		Long: `Scroll through a layout in the terminal.

The preview shows the viewport as a character grid. Cells are drawn as boxes
labelled section.item, headers as ▓ and footers as ▒. Headers pinned by the
sticky overlay are drawn as █ on top of the content.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], opts, noCache, allSticky)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&allSticky, "all", false, "treat every section header as sticky")
	cmd.Flags().Float64Var(&opts.OffsetY, "offset", 0, "initial vertical scroll offset")
	cmd.Flags().Float64Var(&opts.FixedTopOffset, "fixed-top", 0, "height of a bar drawn over the top of the content")
	layoutFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, opts pipeline.Options, noCache, allSticky bool) error {
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
	opts.ApplyDocument(doc)
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	res, err := runner.GenerateLayout(ctx, doc, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	var src sticky.Source = res
	if allSticky {
		src = sticky.AllSticky(res)
	}
	overlay := sticky.New(src, sticky.WithFixedTopOffset(opts.FixedTopOffset))

	model := NewPreviewModel(doc.Name, res, overlay, opts.Viewport()).scrollTo(opts.OffsetY)
	_, err = tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}
