package state

import "image/color"

// Mode is the interaction mode of the board.
type Mode int

const (
	// ModeIdle is select mode: pointer presses pick or clear shapes.
	ModeIdle Mode = iota
	// ModeDrawing turns pointer drags into new rectangles.
	ModeDrawing
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDrawing:
		return "drawing"
	}
	return "unknown"
}

// Machine tracks the mode and the draw gesture in progress. Only one gesture
// can be active at a time.
type Machine struct {
	mode  Mode
	draft *Draft
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode { return m.mode }

// Drawing reports whether the machine is in drawing mode.
func (m *Machine) Drawing() bool { return m.mode == ModeDrawing }

// Active reports whether a draw gesture is in progress.
func (m *Machine) Active() bool { return m.draft != nil }

// Draft returns the gesture in progress.
func (m *Machine) Draft() (Draft, bool) {
	if m.draft == nil {
		return Draft{}, false
	}
	return *m.draft, true
}

// Toggle switches between idle and drawing. A gesture in progress is dropped
// without being committed; abandoned reports whether that happened.
func (m *Machine) Toggle() (abandoned bool) {
	abandoned = m.draft != nil
	m.draft = nil
	if m.mode == ModeDrawing {
		m.mode = ModeIdle
	} else {
		m.mode = ModeDrawing
	}
	return abandoned
}

// Begin starts a gesture at the pointer position. It does nothing outside
// drawing mode or while another gesture is active.
func (m *Machine) Begin(x, y float64, id string, fill color.NRGBA) bool {
	if m.mode != ModeDrawing || m.draft != nil {
		return false
	}
	m.draft = &Draft{ID: id, OriginX: x, OriginY: y, Fill: fill}
	return true
}

// Move stretches the active gesture to the pointer position.
func (m *Machine) Move(x, y float64) bool {
	if m.draft == nil {
		return false
	}
	m.draft.Width = x - m.draft.OriginX
	m.draft.Height = y - m.draft.OriginY
	return true
}

// End finishes the gesture. The draft is always discarded; the returned
// rectangle is only valid when the drag passed the minimum size check.
func (m *Machine) End() (Rectangle, bool) {
	if m.draft == nil {
		return Rectangle{}, false
	}
	d := *m.draft
	m.draft = nil
	b, ok := NormalizeDrag(d.OriginX, d.OriginY, d.Width, d.Height)
	if !ok {
		return Rectangle{}, false
	}
	return Rectangle{ID: d.ID, Fill: d.Fill}.WithBox(b), true
}

// Cancel drops the gesture in progress, if any.
func (m *Machine) Cancel() {
	m.draft = nil
}
