package ui

import (
	"testing"

	"RectBoard/internal/state"
)

func TestCornerResize(t *testing.T) {
	box := state.Box{X: 10, Y: 10, Width: 90, Height: 70}
	tests := []struct {
		name string
		c    corner
		x, y float64
		want state.Box
	}{
		{"top left", topLeft, 0, 5, state.Box{X: 0, Y: 5, Width: 100, Height: 75}},
		{"top right", topRight, 120, 0, state.Box{X: 10, Y: 0, Width: 110, Height: 80}},
		{"bottom left", bottomLeft, 20, 50, state.Box{X: 20, Y: 10, Width: 80, Height: 40}},
		{"bottom right", bottomRight, 60, 60, state.Box{X: 10, Y: 10, Width: 50, Height: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.resize(box, tt.x, tt.y); got != tt.want {
				t.Errorf("resize = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTransformerNeedsAttachment(t *testing.T) {
	tr := newTransformer()
	box := state.Box{X: 10, Y: 10, Width: 90, Height: 70}
	if tr.grab(box, 10, 10) {
		t.Fatal("grabbed a corner with no shape attached")
	}

	tr.AttachHandle("a")
	if tr.grab(box, 50, 50) {
		t.Error("grabbed the middle of the shape")
	}
	if !tr.grab(box, 98, 82) {
		t.Error("missed the bottom-right grip")
	}
}

func TestTransformerKeepsLastValidBox(t *testing.T) {
	tr := newTransformer()
	tr.AttachHandle("a")
	box := state.Box{X: 10, Y: 10, Width: 90, Height: 70}
	tr.grab(box, 100, 80)

	tr.drag(60, 60)
	want := state.Box{X: 10, Y: 10, Width: 50, Height: 50}
	if _, got, ok := tr.preview(); !ok || got != want {
		t.Fatalf("preview = %+v %v", got, ok)
	}

	// Past the opposite corner: refused.
	tr.drag(12, 12)
	if _, got, _ := tr.preview(); got != want {
		t.Errorf("preview after refused drag = %+v, want %+v", got, want)
	}

	id, got, ok := tr.release()
	if !ok || id != "a" || got != want {
		t.Errorf("release = %q %+v %v", id, got, ok)
	}
	if tr.resizing() {
		t.Error("still resizing after release")
	}
	if _, _, ok := tr.release(); ok {
		t.Error("second release reported a change")
	}
}

func TestTransformerUnchangedRelease(t *testing.T) {
	tr := newTransformer()
	tr.AttachHandle("a")
	tr.grab(state.Box{Width: 50, Height: 50}, 0, 0)
	if _, _, ok := tr.release(); ok {
		t.Error("release without drag reported a change")
	}
}

func TestDetachCancelsResize(t *testing.T) {
	tr := newTransformer()
	tr.AttachHandle("a")
	tr.grab(state.Box{Width: 50, Height: 50}, 50, 50)
	tr.DetachHandle()
	if tr.resizing() || tr.attached() != "" {
		t.Error("detach left the handle active")
	}
}
