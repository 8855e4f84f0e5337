package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/pkg/layout"
	"github.com/matzehuels/pinboard/pkg/layout/sticky"
	"github.com/matzehuels/pinboard/pkg/pipeline"
)

type stickyOpts struct {
	noCache   bool
	navBar    bool
	safeArea  float64
	allSticky bool
	asJSON    bool
}

// stickyCommand creates the sticky command for inspecting the overlay.
func (c *CLI) stickyCommand() *cobra.Command {
	var so stickyOpts
	opts := pipeline.Options{Sticky: true}

	cmd := &cobra.Command{
		Use:   "sticky [document]",
		Short: "Show the entries visible at a scroll offset with headers pinned",
		Long: `Show the entries visible at a scroll offset with headers pinned.

The sticky command lays out the document, then applies the sticky header
overlay for a viewport scrolled to --offset. Sticky headers whose section is
still on screen are moved to the top of the viewport and pushed up by the
next section's header.

Use --nav-bar to leave room for a navigation bar drawn over the content.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if so.navBar {
				opts.FixedTopOffset = sticky.FixedTopOffset(so.safeArea)
			}
			return c.runSticky(cmd.Context(), args[0], opts, so)
		},
	}

	cmd.Flags().BoolVar(&so.noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&opts.OffsetY, "offset", 0, "vertical scroll offset")
	cmd.Flags().Float64Var(&opts.FixedTopOffset, "fixed-top", 0, "height of a bar drawn over the top of the content")
	cmd.Flags().BoolVar(&so.navBar, "nav-bar", false, "reserve a navigation bar (64pt, 88pt with --safe-area)")
	cmd.Flags().Float64Var(&so.safeArea, "safe-area", 0, "bottom safe-area inset of the display")
	cmd.Flags().BoolVar(&so.allSticky, "all", false, "treat every section header as sticky")
	cmd.Flags().BoolVar(&so.asJSON, "json", false, "print entries as JSON")
	layoutFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runSticky(ctx context.Context, input string, opts pipeline.Options, so stickyOpts) error {
	doc, err := pipeline.LoadDocument(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	runner, err := c.newRunner(so.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.ApplyDocument(doc)
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	res, hit, err := runner.GenerateLayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done("Computed layout", "items", res.ItemCount(), "cached", hit)

	var entries []layout.Attributes
	if so.allSticky {
		overlay := sticky.New(sticky.AllSticky(res), sticky.WithFixedTopOffset(opts.FixedTopOffset))
		entries = overlay.Visible(opts.Viewport())
	} else {
		entries = runner.Sticky(ctx, res, opts)
	}

	if so.asJSON {
		enc := json.NewEncoder(c.out.w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	v := opts.Viewport()
	c.out.keyValue("viewport", fmt.Sprintf("%.0f×%.0f at y=%g", v.Width, v.Height, v.Offset.Y))
	c.out.keyValue("content", fmt.Sprintf("%g×%g", res.ContentWidth, res.ContentHeight))
	c.out.keyValue("cache", cacheLabel(hit))
	c.out.line(entriesTable(entries))
	c.out.stats(pipeline.Stats{
		Engine:   opts.Engine,
		Sections: res.NumberOfSections(),
		Items:    res.ItemCount(),
		Pinned:   pipeline.CountPinned(entries),
	}, hit)
	return nil
}

// entriesTable renders entries as a table, highlighting pinned headers.
func entriesTable(entries []layout.Attributes) string {
	rows := make([][]string, 0, len(entries))
	for _, a := range entries {
		item := strconv.Itoa(a.Item)
		if !a.IsCell() {
			item = "—"
		}
		rows = append(rows, []string{
			a.Kind.String(),
			strconv.Itoa(a.Section),
			item,
			formatFloat(a.Frame.X),
			formatFloat(a.Frame.Y),
			formatFloat(a.Frame.Width),
			formatFloat(a.Frame.Height),
			strconv.Itoa(a.ZIndex),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "Section", "Item", "X", "Y", "Width", "Height", "Z").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= 0 && row < len(entries) && entries[row].ZIndex == sticky.ZIndex {
				return stylePinned
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
