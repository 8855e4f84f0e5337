package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pinboard/pkg/layout"
	"github.com/matzehuels/pinboard/pkg/layout/sticky"
	"github.com/matzehuels/pinboard/pkg/pipeline"
)

// Preview styles
var (
	previewTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	previewStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	previewFrameStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorDim)
)

// Canvas fill characters per entry kind.
const (
	fillHeader = '▓'
	fillPinned = '█'
	fillFooter = '▒'
)

// chromeRows is the number of terminal rows used by the title, status line,
// help line and the canvas border.
const chromeRows = 5

// =============================================================================
// Key bindings
// =============================================================================

type previewKeyMap struct {
	Down     key.Binding
	Up       key.Binding
	PageDown key.Binding
	PageUp   key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Quit     key.Binding
}

func (k previewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.PageDown, k.PageUp, k.Top, k.Bottom, k.Quit}
}

func (k previewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Down, k.Up}, {k.PageDown, k.PageUp}, {k.Top, k.Bottom, k.Quit}}
}

var previewKeys = previewKeyMap{
	Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "scroll down")),
	Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "scroll up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", " ", "f"), key.WithHelp("pgdn", "page down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
	Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// =============================================================================
// PreviewModel - Interactive scroll preview
// =============================================================================

// PreviewModel is the bubbletea model for scrolling through a layout with
// the sticky overlay applied at every offset.
type PreviewModel struct {
	Title    string
	Result   layout.Result
	Viewport layout.Viewport

	// Step is the scroll distance of a single line step, in points.
	Step float64

	overlay *sticky.Layout
	cols    int
	rows    int
	help    help.Model
}

// NewPreviewModel creates a preview of res through viewport v.
func NewPreviewModel(title string, res layout.Result, overlay *sticky.Layout, v layout.Viewport) PreviewModel {
	return PreviewModel{
		Title:    title,
		Result:   res,
		Viewport: v,
		Step:     math.Max(v.Height/20, 1),
		overlay:  overlay,
		cols:     60,
		rows:     20,
		help:     help.New(),
	}
}

// Offset returns the current vertical scroll offset.
func (m PreviewModel) Offset() float64 { return m.Viewport.Offset.Y }

// maxOffset is the largest offset that still fills the viewport.
func (m PreviewModel) maxOffset() float64 {
	return math.Max(m.Result.ContentHeight-m.Viewport.Height, 0)
}

func (m PreviewModel) scrollTo(y float64) PreviewModel {
	m.Viewport.Offset.Y = math.Min(math.Max(y, 0), m.maxOffset())
	return m
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		y := m.Offset()
		switch {
		case key.Matches(msg, previewKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, previewKeys.Down):
			m = m.scrollTo(y + m.Step)
		case key.Matches(msg, previewKeys.Up):
			m = m.scrollTo(y - m.Step)
		case key.Matches(msg, previewKeys.PageDown):
			m = m.scrollTo(y + m.Viewport.Height)
		case key.Matches(msg, previewKeys.PageUp):
			m = m.scrollTo(y - m.Viewport.Height)
		case key.Matches(msg, previewKeys.Top):
			m = m.scrollTo(0)
		case key.Matches(msg, previewKeys.Bottom):
			m = m.scrollTo(m.maxOffset())
		}
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-2, 10)
		m.rows = max(msg.Height-chromeRows, 5)
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m PreviewModel) View() string {
	entries := m.overlay.Visible(m.Viewport)

	var b strings.Builder
	b.WriteString(previewTitleStyle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(previewFrameStyle.Render(drawCanvas(entries, m.Viewport, m.cols, m.rows)))
	b.WriteString("\n")
	b.WriteString(previewStatusStyle.Render(fmt.Sprintf("y=%g / %g  ·  %d visible  ·  %d pinned",
		m.Offset(), m.maxOffset(), len(entries), pipeline.CountPinned(entries))))
	b.WriteString("\n")
	b.WriteString(m.help.View(previewKeys))
	return b.String()
}

// =============================================================================
// Canvas
// =============================================================================

// drawCanvas rasterizes entries into a cols×rows character grid covering the
// viewport. Raised entries are drawn last so they cover the cells beneath.
func drawCanvas(entries []layout.Attributes, v layout.Viewport, cols, rows int) string {
	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}
	if v.Width <= 0 || v.Height <= 0 {
		return joinGrid(grid)
	}
	sx := float64(cols) / v.Width
	sy := float64(rows) / v.Height

	draw := func(a layout.Attributes) {
		f := a.Frame
		x0 := clampInt(int(math.Floor((f.X-v.Offset.X)*sx)), 0, cols)
		x1 := clampInt(int(math.Ceil((f.Right()-v.Offset.X)*sx)), 0, cols)
		y0 := clampInt(int(math.Floor((f.Y-v.Offset.Y)*sy)), 0, rows)
		y1 := clampInt(int(math.Ceil((f.Bottom()-v.Offset.Y)*sy)), 0, rows)
		if x1 <= x0 || y1 <= y0 {
			return
		}
		fill := ' '
		switch {
		case a.ZIndex == sticky.ZIndex:
			fill = fillPinned
		case a.IsHeader():
			fill = fillHeader
		case a.IsFooter():
			fill = fillFooter
		}
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				grid[y][x] = fill
			}
		}
		if a.IsCell() && x1-x0 >= 3 && y1-y0 >= 2 {
			drawBox(grid, x0, y0, x1-1, y1-1)
			label := []rune(fmt.Sprintf("%d.%d", a.Section, a.Item))
			for i, r := range label {
				if x0+1+i >= x1-1 || y0+1 >= y1-1 {
					break
				}
				grid[y0+1][x0+1+i] = r
			}
		}
	}

	for _, a := range entries {
		if a.ZIndex == 0 {
			draw(a)
		}
	}
	for _, a := range entries {
		if a.ZIndex != 0 {
			draw(a)
		}
	}
	return joinGrid(grid)
}

func drawBox(grid [][]rune, x0, y0, x1, y1 int) {
	for x := x0; x <= x1; x++ {
		grid[y0][x] = '─'
		grid[y1][x] = '─'
	}
	for y := y0; y <= y1; y++ {
		grid[y][x0] = '│'
		grid[y][x1] = '│'
	}
	grid[y0][x0], grid[y0][x1] = '┌', '┐'
	grid[y1][x0], grid[y1][x1] = '└', '┘'
}

func joinGrid(grid [][]rune) string {
	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
