// Package export renders a board as PDF or SVG.
package export

import (
	"io"

	"RectBoard/internal/state"

	"github.com/jung-kurt/gofpdf"
)

// PDF writes the board as a single page the size of the frame, measured in
// points, with the shapes painted in order.
func PDF(w io.Writer, shapes []state.Rectangle, frame state.Frame) error {
	p := newPage(frame)
	for _, r := range shapes {
		p.SetFillColor(int(r.Fill.R), int(r.Fill.G), int(r.Fill.B))
		if r.Fill.A < 255 {
			p.SetAlpha(float64(r.Fill.A)/255, "Normal")
		} else {
			p.SetAlpha(1, "Normal")
		}
		p.Rect(r.X, r.Y, r.Width, r.Height, "F")
	}
	return p.Output(w)
}

func newPage(frame state.Frame) *gofpdf.Fpdf {
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: frame.Width, Ht: frame.Height},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	p.SetDrawColor(0, 0, 0)
	p.SetLineWidth(0.5)
	p.Rect(0, 0, frame.Width, frame.Height, "D")
	return p
}
