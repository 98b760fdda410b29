package bubbletea

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/fable"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/reflow/truncate"
)

// Compile-time interface verification.
var _ fable.Drawer = (*Canvas)(nil)

// Terminal cell size in story pixels.
const (
	CellWidth  = 10.0
	CellHeight = 20.0
)

// headingSize is the smallest title size drawn in bold.
const headingSize = 30.0

const (
	marker   = ">"
	ellipsis = "…"
	tabWidth = 4
)

// cell is a run of styled text placed at a column.
type cell struct {
	col   int
	text  string
	style lipgloss.Style
}

// Canvas maps story draw calls onto terminal rows.
// Create a new Canvas for every frame.
type Canvas struct {
	width    int // Columns, 0 for unlimited
	height   int // Rows, 0 for unlimited
	palette  fable.Palette
	renderer *lipgloss.Renderer
	rows     map[int][]cell
}

// NewCanvas returns an empty canvas of the given size in cells.
// If renderer is nil, the default lipgloss renderer is used.
func NewCanvas(width, height int, palette fable.Palette, renderer *lipgloss.Renderer) *Canvas {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	return &Canvas{
		width:    width,
		height:   height,
		palette:  palette,
		renderer: renderer,
		rows:     make(map[int][]cell),
	}
}

// DrawText places text on the row holding baseline y.
func (c *Canvas) DrawText(text string, x, y, size float64, col fable.Color) {
	style := c.renderer.NewStyle().Foreground(lipgloss.Color(c.blend(c.palette.Text, col.A)))
	if size >= headingSize {
		style = style.Bold(true)
	}
	c.place(x, y, text, style)
}

// DrawMarker places the selection marker on the row holding baseline y.
func (c *Canvas) DrawMarker(x, y, size float64, col fable.Color) {
	style := c.renderer.NewStyle().Foreground(lipgloss.Color(c.blend(c.palette.Marker, col.A)))
	c.place(x, y, marker, style)
}

func (c *Canvas) place(x, y float64, text string, style lipgloss.Style) {
	row := int(math.Floor(y / CellHeight))
	col := int(math.Floor(x / CellWidth))
	if row < 0 || col < 0 {
		return
	}
	text = expandTabs(text, col)
	if c.width > 0 {
		avail := c.width - col
		if avail <= 0 {
			return
		}
		text = truncate.StringWithTail(text, uint(avail), ellipsis)
	}
	c.rows[row] = append(c.rows[row], cell{col: col, text: text, style: style})
}

// blend fades hex toward the background as alpha drops.
func (c *Canvas) blend(hex string, alpha uint8) string {
	if alpha == math.MaxUint8 {
		return hex
	}
	fg, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	bg, err := colorful.Hex(c.palette.Background)
	if err != nil {
		return hex
	}
	t := 1 - float64(alpha)/math.MaxUint8
	return fg.BlendRgb(bg, t).Clamped().Hex()
}

// Rows returns the number of rows drawn on, counting from row 0.
func (c *Canvas) Rows() int {
	n := 0
	for row := range c.rows {
		if row+1 > n {
			n = row + 1
		}
	}
	return n
}

// String renders the canvas. When more rows were drawn than fit, the
// bottom-most rows are kept so the newest content stays visible.
func (c *Canvas) String() string {
	total := c.Rows()
	first := 0
	if c.height > 0 && total > c.height {
		first = total - c.height
	}

	lines := make([]string, 0, total-first)
	for row := first; row < total; row++ {
		lines = append(lines, c.line(c.rows[row]))
	}
	return strings.Join(lines, "\n")
}

func (c *Canvas) line(cells []cell) string {
	sorted := make([]cell, len(cells))
	copy(sorted, cells)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].col < sorted[j].col
	})

	var sb strings.Builder
	width := 0
	for _, cl := range sorted {
		if cl.col > width {
			sb.WriteString(strings.Repeat(" ", cl.col-width))
			width = cl.col
		}
		sb.WriteString(cl.style.Render(cl.text))
		width += lipgloss.Width(cl.text)
	}
	return sb.String()
}

// expandTabs converts tabs to spaces using fixed tab stops, given the
// column the text starts at.
func expandTabs(s string, startCol int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := startCol
	for _, r := range s {
		if r == '\t' {
			next := (col/tabWidth + 1) * tabWidth
			sb.WriteString(strings.Repeat(" ", next-col))
			col = next
			continue
		}
		sb.WriteRune(r)
		col += lipgloss.Width(string(r))
	}
	return sb.String()
}
