package fable

import "math"

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// White is the color all story text is drawn in before transparency applies.
var White = Color{R: 255, G: 255, B: 255, A: 255}

// Drawer receives the draw calls for one frame. Coordinates are in pixels,
// y grows downward and names the text baseline.
type Drawer interface {
	DrawText(text string, x, y, size float64, c Color)
	// DrawMarker draws the selection marker on the row whose baseline is y.
	DrawMarker(x, y, size float64, c Color)
}

// Layout constants, in pixels.
const (
	TextIndent   = 20.0 // x of titles and the selection marker
	ChoiceIndent = 40.0 // x of choice labels
	ChoiceSize   = 20.0 // Text size of choice labels
	LineMargin   = 20.0 // Added to the text size when advancing the cursor
	Baseline     = 10.0 // Offset from the cursor to the text baseline
)

// Cursor lays out one frame. Create a new one for every frame.
type Cursor struct {
	Transparency uint8
	Y            float64

	story  StoryMap
	clock  Clock
	drawer Drawer
}

// NewCursor returns a cursor at the top of the frame, fully opaque.
func NewCursor(story StoryMap, clock Clock, d Drawer) *Cursor {
	return &Cursor{
		Transparency: math.MaxUint8,
		story:        story,
		clock:        clock,
		drawer:       d,
	}
}

func (c *Cursor) alpha(col Color) Color {
	col.A = c.Transparency
	return col
}

// text draws s at the cursor and moves the cursor below it.
func (c *Cursor) text(s string, size, x float64) {
	c.drawer.DrawText(s, x, c.Y+Baseline, size, c.alpha(White))
	c.Y += size + LineMargin
}

// Render draws s and everything it displays.
func (c *Cursor) Render(s Story) {
	switch n := s.(type) {
	case Choices[StoryID]:
		for i, item := range n.Items {
			y := c.Y + Baseline
			c.text(item.Label, ChoiceSize, ChoiceIndent)
			if i == n.Selected {
				c.drawer.DrawMarker(TextIndent, y, ChoiceSize, c.alpha(White))
			}
		}
	case Fade[StoryID]:
		prev := c.Transparency
		c.Transparency = n.Alpha(c.clock)
		c.Render(c.lookup(n.Node))
		c.Transparency = prev
	case Title[StoryID]:
		c.text(n.Text, n.Size, TextIndent)
	}
}

func (c *Cursor) lookup(id StoryID) Story {
	s, ok := c.story[id]
	if !ok {
		panic("fable: dangling story id " + id.String())
	}
	return s
}
