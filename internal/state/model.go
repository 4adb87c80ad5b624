package state

import (
	"fmt"
	"image/color"
)

// Rectangle is one shape on the board. X and Y are always the top-left
// corner; Width and Height are never negative.
type Rectangle struct {
	ID     string
	X      float64
	Y      float64
	Width  float64
	Height float64
	Fill   color.NRGBA
}

// Box returns the geometry of the rectangle without its identity.
func (r Rectangle) Box() Box {
	return Box{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// WithBox returns a copy of r moved and sized to b.
func (r Rectangle) WithBox(b Box) Rectangle {
	r.X, r.Y, r.Width, r.Height = b.X, b.Y, b.Width, b.Height
	return r
}

// Box is an axis-aligned area on the canvas.
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether the point lies inside b, edges included.
func (b Box) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.Width &&
		y >= b.Y && y <= b.Y+b.Height
}

// Intersects reports whether the two boxes share any area or edge.
func (b Box) Intersects(o Box) bool {
	return !(b.X+b.Width < o.X || o.X+o.Width < b.X ||
		b.Y+b.Height < o.Y || o.Y+o.Height < b.Y)
}

// Frame is the extent of the canvas, the document's root node.
type Frame struct {
	Width  float64
	Height float64
}

func (f Frame) String() string {
	return fmt.Sprintf("%gx%g", f.Width, f.Height)
}

// Draft is the rectangle being dragged out in drawing mode. Width and Height
// are signed until the gesture is committed.
type Draft struct {
	ID      string
	OriginX float64
	OriginY float64
	Width   float64
	Height  float64
	Fill    color.NRGBA
}

// Preview returns the draft as a normalized rectangle for drawing feedback,
// painted in DraftFill. It is never added to the store.
func (d Draft) Preview() Rectangle {
	b := normalize(d.OriginX, d.OriginY, d.Width, d.Height)
	return Rectangle{ID: d.ID, Fill: DraftFill}.WithBox(b)
}
