package export

import (
	"bytes"
	"encoding/xml"
	"io"
	"math"

	"RectBoard/internal/state"

	svg "github.com/ajstarks/svgo"
)

// SVG writes the board as an SVG image. Coordinates are rounded to whole
// pixels.
func SVG(w io.Writer, shapes []state.Rectangle, frame state.Frame) {
	canvas := svg.New(w)
	canvas.Start(px(frame.Width), px(frame.Height))
	canvas.Rect(0, 0, px(frame.Width), px(frame.Height), `id="root"`, "fill:white;stroke:black")
	for _, r := range shapes {
		canvas.Rect(px(r.X), px(r.Y), px(r.Width), px(r.Height),
			`id="`+attr(r.ID)+`"`,
			"fill:"+state.CSS(r.Fill))
	}
	canvas.End()
}

// attr escapes s for use inside a double-quoted XML attribute.
func attr(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func px(v float64) int {
	return int(math.Round(v))
}
