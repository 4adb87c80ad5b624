package state

import (
	"image/color"
	"testing"
)

func TestMachineDrawGesture(t *testing.T) {
	var m Machine
	if m.Begin(10, 10, "r1", color.NRGBA{}) {
		t.Fatal("gesture started in idle mode")
	}

	m.Toggle()
	if !m.Drawing() {
		t.Fatal("Toggle did not enter drawing mode")
	}
	if !m.Begin(10, 10, "r1", color.NRGBA{R: 1, A: 255}) {
		t.Fatal("Begin refused in drawing mode")
	}
	if d, _ := m.Draft(); d.Width != 0 || d.Height != 0 {
		t.Fatalf("fresh draft has size %gx%g", d.Width, d.Height)
	}
	if m.Begin(20, 20, "r2", color.NRGBA{}) {
		t.Fatal("second gesture started while one is active")
	}

	m.Move(50, 50)
	m.Move(100, 80)
	if d, _ := m.Draft(); d.Width != 90 || d.Height != 70 {
		t.Fatalf("draft size = %gx%g", d.Width, d.Height)
	}

	r, ok := m.End()
	if !ok {
		t.Fatal("End rejected a large drag")
	}
	want := Rectangle{ID: "r1", X: 10, Y: 10, Width: 90, Height: 70, Fill: color.NRGBA{R: 1, A: 255}}
	if r != want {
		t.Errorf("End = %+v, want %+v", r, want)
	}
	if m.Active() || !m.Drawing() {
		t.Error("after End the machine should be drawing with no gesture")
	}
}

func TestMachineMoveKeepsSignedSize(t *testing.T) {
	var m Machine
	m.Toggle()
	m.Begin(100, 80, "r", color.NRGBA{})
	m.Move(10, 10)
	d, _ := m.Draft()
	if d.Width != -90 || d.Height != -70 {
		t.Fatalf("draft size = %gx%g, want -90x-70", d.Width, d.Height)
	}
	if p := d.Preview(); p.Box() != (Box{X: 10, Y: 10, Width: 90, Height: 70}) || p.Fill != DraftFill {
		t.Errorf("preview = %+v", p)
	}
	r, ok := m.End()
	if !ok || r.Box() != (Box{X: 10, Y: 10, Width: 90, Height: 70}) {
		t.Errorf("End = %+v, %v", r, ok)
	}
}

func TestMachineRejectsSmallDrag(t *testing.T) {
	var m Machine
	m.Toggle()
	m.Begin(10, 10, "r", color.NRGBA{})
	m.Move(13, 60)
	if _, ok := m.End(); ok {
		t.Fatal("small drag accepted")
	}
	if m.Active() {
		t.Error("rejected draft was kept")
	}
	if !m.Drawing() {
		t.Error("rejection left drawing mode")
	}
}

func TestMachineToggleAbandonsGesture(t *testing.T) {
	var m Machine
	m.Toggle()
	m.Begin(0, 0, "r", color.NRGBA{})
	m.Move(50, 50)
	if !m.Toggle() {
		t.Fatal("Toggle did not report the abandoned gesture")
	}
	if m.Active() || m.Drawing() {
		t.Fatal("gesture or drawing mode survived toggle")
	}
	if _, ok := m.End(); ok {
		t.Error("End committed an abandoned gesture")
	}
	if m.Toggle() {
		t.Error("Toggle without a gesture reported an abandonment")
	}
}

func TestModeString(t *testing.T) {
	if ModeIdle.String() != "idle" || ModeDrawing.String() != "drawing" {
		t.Errorf("unexpected mode names %q %q", ModeIdle, ModeDrawing)
	}
}
