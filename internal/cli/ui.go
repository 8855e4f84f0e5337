package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pinboard/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleLink renders URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue renders data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(10)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	stylePinned  = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

var (
	markSuccess = lipgloss.NewStyle().Foreground(colorGreen).Render(iconSuccess)
	markError   = lipgloss.NewStyle().Foreground(colorRed).Render(iconError)
	markWarning = lipgloss.NewStyle().Foreground(colorYellow).Render(iconWarning)
	markInfo    = lipgloss.NewStyle().Foreground(colorGray).Render(iconInfo)
)

// =============================================================================
// Printer
// =============================================================================

// printer writes human-readable command output. Log records go to the
// logger; everything a user is meant to read after a command finishes goes
// through a printer.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) *printer {
	if w == nil {
		w = io.Discard
	}
	return &printer{w: w}
}

func (p *printer) line(s string) { fmt.Fprintln(p.w, s) }

func (p *printer) success(format string, args ...any) {
	p.line(markSuccess + " " + fmt.Sprintf(format, args...))
}

func (p *printer) failure(format string, args ...any) {
	p.line(markError + " " + fmt.Sprintf(format, args...))
}

func (p *printer) warning(format string, args ...any) {
	p.line(markWarning + " " + styleWarning.Render(fmt.Sprintf(format, args...)))
}

func (p *printer) info(format string, args ...any) {
	p.line(markInfo + " " + fmt.Sprintf(format, args...))
}

// detail prints an indented, dimmed line.
func (p *printer) detail(format string, args ...any) {
	p.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints a written output path.
func (p *printer) file(path string) {
	p.line("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func (p *printer) keyValue(key, value string) {
	p.line(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// stats prints layout statistics on a single line:
//
//	waterfall · 2 sections · 40 items · 1 pinned · cached
func (p *printer) stats(stats pipeline.Stats, cached bool) {
	parts := []string{stats.Engine}
	if stats.Sections > 0 {
		parts = append(parts, plural(stats.Sections, "section", "sections"))
	}
	parts = append(parts, plural(stats.Items, "item", "items"))
	if stats.Pinned > 0 {
		parts = append(parts, fmt.Sprintf("%d pinned", stats.Pinned))
	}
	for i := range parts {
		parts[i] = StyleDim.Render(parts[i])
	}

	status := styleComputed.Render(iconFresh)
	if cached {
		status = styleCached.Render(iconCached)
	}
	parts = append(parts, status)

	p.line("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// nextStep suggests a follow-up command after a blank line.
func (p *printer) nextStep(description, cmd string) {
	p.line("")
	p.line(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

func cacheLabel(hit bool) string {
	if hit {
		return iconCached
	}
	return iconFresh
}
