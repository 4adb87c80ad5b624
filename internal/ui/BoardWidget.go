package ui

import (
	"image/color"
	"log"
	"sync"

	"RectBoard/internal/editor"
	"RectBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

var (
	frameStroke    = color.NRGBA{R: 160, G: 160, B: 160, A: 255}
	selectedStroke = color.NRGBA{R: 30, G: 144, B: 255, A: 255}
	handleFill     = color.White
)

// moveDrag tracks a selected shape being dragged in select mode.
type moveDrag struct {
	id     string
	box    state.Box
	dx, dy float64
	moved  bool
}

// Board draws the editor's shapes and turns mouse input into editor calls.
// It keeps only a copy of the last View it was shown.
type Board struct {
	widget.BaseWidget
	editor *editor.Editor
	handle *transformer

	mu   sync.RWMutex
	view editor.View
	move *moveDrag

	statusBar *widget.Label
}

var _ fyne.Widget = (*Board)(nil)
var _ fyne.Draggable = (*Board)(nil)
var _ desktop.Mouseable = (*Board)(nil)
var _ desktop.Cursorable = (*Board)(nil)

func NewBoard(ed *editor.Editor) *Board {
	b := &Board{
		editor:    ed,
		handle:    newTransformer(),
		view:      ed.View(),
		statusBar: widget.NewLabel("Ready"),
	}
	b.ExtendBaseWidget(b)
	ed.SetHandleBinder(b.handle)
	ed.OnChange(func(v editor.View) {
		fyne.Do(func() { b.show(v) })
	})
	return b
}

// show replaces the board's view. Views older than the one shown are
// ignored.
func (b *Board) show(v editor.View) {
	b.mu.Lock()
	if v.Revision < b.view.Revision {
		b.mu.Unlock()
		return
	}
	b.view = v
	b.mu.Unlock()
	b.Refresh()
}

// SetStatus updates the status line. Safe from any goroutine.
func (b *Board) SetStatus(text string) {
	fyne.Do(func() { b.statusBar.SetText(text) })
}

func (b *Board) snapshot() (editor.View, *moveDrag) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.move == nil {
		return b.view, nil
	}
	mv := *b.move
	return b.view, &mv
}

func pos(p fyne.Position) (float64, float64) {
	return float64(p.X), float64(p.Y)
}

func (b *Board) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	x, y := pos(e.Position)

	if v, _ := b.snapshot(); v.Mode == state.ModeIdle {
		if r, ok := v.Selected(); ok && b.handle.grab(r.Box(), x, y) {
			b.Refresh()
			return
		}
	}

	b.editor.PointerDown(x, y)

	v := b.editor.View()
	if v.Mode != state.ModeIdle {
		return
	}
	if r, ok := v.Selected(); ok && r.Box().Contains(x, y) {
		b.mu.Lock()
		b.move = &moveDrag{id: r.ID, box: r.Box(), dx: x - r.X, dy: y - r.Y}
		b.mu.Unlock()
	}
}

func (b *Board) Dragged(e *fyne.DragEvent) {
	x, y := pos(e.Position)

	if b.handle.resizing() {
		b.handle.drag(x, y)
		b.Refresh()
		return
	}
	if b.editor.Mode() == state.ModeDrawing {
		b.editor.PointerMove(x, y)
		return
	}

	b.mu.Lock()
	mv := b.move
	if mv != nil {
		mv.box.X, mv.box.Y = x-mv.dx, y-mv.dy
		mv.moved = true
	}
	b.mu.Unlock()
	if mv != nil {
		b.Refresh()
	}
}

func (b *Board) DragEnd() {
	b.finish()
}

func (b *Board) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.finish()
	}
}

// finish commits whatever gesture is in progress. Fyne may deliver DragEnd
// and MouseUp in either order, so the second call finds nothing to do.
func (b *Board) finish() {
	if id, box, ok := b.handle.release(); ok {
		if err := b.editor.CommitTransform(id, box); err != nil {
			log.Printf("[UI] Transform of %s dropped: %v", id, err)
		}
	}

	b.mu.Lock()
	mv := b.move
	b.move = nil
	b.mu.Unlock()
	if mv != nil && mv.moved {
		if err := b.editor.CommitMove(mv.id, mv.box.X, mv.box.Y); err != nil {
			log.Printf("[UI] Move of %s dropped: %v", mv.id, err)
		}
	}

	if b.editor.Mode() == state.ModeDrawing {
		b.editor.PointerUp()
	}
	b.Refresh()
}

func (b *Board) MouseIn(*desktop.MouseEvent) {}
func (b *Board) MouseOut() {}
func (b *Board) MouseMoved(*desktop.MouseEvent) {}

func (b *Board) Cursor() desktop.Cursor {
	if b.editor.Mode() == state.ModeDrawing {
		return desktop.CrosshairCursor
	}
	return desktop.DefaultCursor
}

func (b *Board) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	r.background.StrokeColor = frameStroke
	r.background.StrokeWidth = 1
	r.draft = canvas.NewRectangle(state.DraftFill)
	r.draft.StrokeColor = selectedStroke
	r.draft.StrokeWidth = 1
	for i := range r.grips {
		r.grips[i] = canvas.NewRectangle(handleFill)
		r.grips[i].StrokeColor = selectedStroke
		r.grips[i].StrokeWidth = 1
	}
	r.rebuild()
	return r
}

// boardRenderer keeps one rectangle per shape and reuses them across
// refreshes. objects is rebuilt only in Refresh.
type boardRenderer struct {
	board      *Board
	background *canvas.Rectangle
	shapes     []*canvas.Rectangle
	draft      *canvas.Rectangle
	grips      [4]*canvas.Rectangle
	objects    []fyne.CanvasObject
}

func place(o fyne.CanvasObject, box state.Box) {
	o.Move(fyne.NewPos(float32(box.X), float32(box.Y)))
	o.Resize(fyne.NewSize(float32(box.Width), float32(box.Height)))
}

func (r *boardRenderer) rebuild() {
	v, mv := r.board.snapshot()
	handleID, resized, resizing := r.board.handle.preview()

	place(r.background, state.Box{Width: v.Frame.Width, Height: v.Frame.Height})
	objects := append(r.objects[:0], r.background)

	for len(r.shapes) < len(v.Shapes) {
		r.shapes = append(r.shapes, canvas.NewRectangle(color.Transparent))
	}

	var selected *state.Box
	for i, s := range v.Shapes {
		box := s.Box()
		switch {
		case resizing && s.ID == handleID:
			box = resized
		case mv != nil && s.ID == mv.id:
			box = mv.box
		}

		rect := r.shapes[i]
		rect.FillColor = s.Fill
		rect.StrokeColor = nil
		rect.StrokeWidth = 0
		if s.ID == v.SelectedID {
			rect.StrokeColor = selectedStroke
			rect.StrokeWidth = 2
			sel := box
			selected = &sel
		}
		place(rect, box)
		objects = append(objects, rect)
	}

	if v.Draft != nil {
		r.draft.FillColor = v.Draft.Fill
		place(r.draft, v.Draft.Box())
		objects = append(objects, r.draft)
	}

	if selected != nil && handleID != "" {
		for i, c := range corners {
			x, y := c.point(*selected)
			place(r.grips[i], state.Box{X: x - handleSize, Y: y - handleSize, Width: 2 * handleSize, Height: 2 * handleSize})
			objects = append(objects, r.grips[i])
		}
	}
	r.objects = objects
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *boardRenderer) Refresh() {
	r.rebuild()
	for _, o := range r.objects {
		o.Refresh()
	}
}

func (r *boardRenderer) Layout(fyne.Size) {}

func (r *boardRenderer) MinSize() fyne.Size {
	v, _ := r.board.snapshot()
	return fyne.NewSize(float32(v.Frame.Width), float32(v.Frame.Height))
}

func (r *boardRenderer) Destroy() {}
