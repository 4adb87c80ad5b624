package ui

import (
	"math"
	"sync"

	"RectBoard/internal/state"
)

// handleSize is the half-width of a corner grip, in board units.
const handleSize = 6.0

type corner int

const (
	topLeft corner = iota
	topRight
	bottomLeft
	bottomRight
)

var corners = [...]corner{topLeft, topRight, bottomLeft, bottomRight}

func (c corner) point(b state.Box) (float64, float64) {
	switch c {
	case topLeft:
		return b.X, b.Y
	case topRight:
		return b.X + b.Width, b.Y
	case bottomLeft:
		return b.X, b.Y + b.Height
	default:
		return b.X + b.Width, b.Y + b.Height
	}
}

// resize moves corner c of b to (x, y), keeping the opposite corner fixed.
func (c corner) resize(b state.Box, x, y float64) state.Box {
	right, bottom := b.X+b.Width, b.Y+b.Height
	switch c {
	case topLeft:
		return state.Box{X: x, Y: y, Width: right - x, Height: bottom - y}
	case topRight:
		return state.Box{X: b.X, Y: y, Width: x - b.X, Height: bottom - y}
	case bottomLeft:
		return state.Box{X: x, Y: b.Y, Width: right - x, Height: y - b.Y}
	default:
		return state.Box{X: b.X, Y: b.Y, Width: x - b.X, Height: y - b.Y}
	}
}

// transformer is the resize handle. The editor tells it which shape it is
// bound to; the board feeds it pointer positions while a corner is held.
type transformer struct {
	mu     sync.Mutex
	id     string
	active bool
	corner corner
	start  state.Box
	box    state.Box
}

func newTransformer() *transformer {
	return &transformer{}
}

func (t *transformer) AttachHandle(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.id != id {
		t.active = false
	}
	t.id = id
}

func (t *transformer) DetachHandle() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.id = ""
	t.active = false
}

func (t *transformer) attached() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.id
}

// grab starts a resize if (x, y) is on one of the corners of b, the box of
// the attached shape.
func (t *transformer) grab(b state.Box, x, y float64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.id == "" {
		return false
	}
	for _, c := range corners {
		cx, cy := c.point(b)
		if math.Abs(x-cx) <= handleSize && math.Abs(y-cy) <= handleSize {
			t.active = true
			t.corner = c
			t.start = b
			t.box = b
			return true
		}
	}
	return false
}

func (t *transformer) resizing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// drag updates the previewed box. Proposals under the minimum size keep the
// last accepted box.
func (t *transformer) drag(x, y float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return
	}
	t.box = state.BoundBox(t.box, t.corner.resize(t.start, x, y))
}

// preview returns the box being dragged, if a resize is in progress.
func (t *transformer) preview() (string, state.Box, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.id, t.box, t.active
}

// release ends the resize and returns the final box.
func (t *transformer) release() (string, state.Box, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return "", state.Box{}, false
	}
	t.active = false
	return t.id, t.box, t.box != t.start
}
