package state

import "math"

// MinSize is the smallest width or height a rectangle may have. Drags at or
// below it are treated as clicks, and resizes never shrink a shape past it.
const MinSize = 5.0

// NormalizeDrag turns a drag starting at the origin with a signed delta into
// a rectangle whose origin is the top-left corner. It returns false when
// either side of the drag is MinSize or smaller.
func NormalizeDrag(originX, originY, rawWidth, rawHeight float64) (Box, bool) {
	if math.Abs(rawWidth) <= MinSize || math.Abs(rawHeight) <= MinSize {
		return Box{}, false
	}
	return normalize(originX, originY, rawWidth, rawHeight), true
}

func normalize(originX, originY, rawWidth, rawHeight float64) Box {
	return Box{
		X:      math.Min(originX, originX+rawWidth),
		Y:      math.Min(originY, originY+rawHeight),
		Width:  math.Abs(rawWidth),
		Height: math.Abs(rawHeight),
	}
}

// ClampSize floors the width and height of b at MinSize.
func ClampSize(b Box) Box {
	b.Width = math.Max(MinSize, b.Width)
	b.Height = math.Max(MinSize, b.Height)
	return b
}

// BoundBox is the check applied while a transform handle is being dragged:
// a proposed box smaller than MinSize on either side is refused and the
// previous box is kept.
func BoundBox(old, proposed Box) Box {
	if proposed.Width < MinSize || proposed.Height < MinSize {
		return old
	}
	return proposed
}
