package mock

import "github.com/fwojciec/fable"

// Compile-time interface verification.
var _ fable.Drawer = (*Drawer)(nil)

// DrawCall records one call made to a Drawer.
type DrawCall struct {
	Marker bool // DrawMarker rather than DrawText
	Text   string
	X, Y   float64
	Size   float64
	Color  fable.Color
}

// Drawer records every draw call it receives.
type Drawer struct {
	Calls []DrawCall
}

func (d *Drawer) DrawText(text string, x, y, size float64, c fable.Color) {
	d.Calls = append(d.Calls, DrawCall{Text: text, X: x, Y: y, Size: size, Color: c})
}

func (d *Drawer) DrawMarker(x, y, size float64, c fable.Color) {
	d.Calls = append(d.Calls, DrawCall{Marker: true, X: x, Y: y, Size: size, Color: c})
}

// Texts returns the text of every DrawText call in order.
func (d *Drawer) Texts() []string {
	var out []string
	for _, c := range d.Calls {
		if !c.Marker {
			out = append(out, c.Text)
		}
	}
	return out
}
