package state

import (
	"fmt"
	"image/color"
	"math/rand/v2"
)

// DraftFill is the translucent blue used for a rectangle still being drawn.
var DraftFill = color.NRGBA{R: 0, G: 0, B: 255, A: 128}

// RandomFill returns an opaque color with random channels. Fill is
// presentation only and is never persisted.
func RandomFill() color.NRGBA {
	return color.NRGBA{
		R: uint8(rand.IntN(256)),
		G: uint8(rand.IntN(256)),
		B: uint8(rand.IntN(256)),
		A: 255,
	}
}

// CSS formats c as an rgb() or rgba() color string.
func CSS(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", c.R, c.G, c.B, float64(c.A)/255)
}
