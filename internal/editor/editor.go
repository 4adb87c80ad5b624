// Package editor owns the board state and turns pointer gestures and toolbar
// commands into store mutations. All state lives in one Editor value; the
// rendering surface, the HTTP API and the live feed talk to it instead of
// holding state of their own.
package editor

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand/v2"
	"sync"

	"RectBoard/internal/document"
	"RectBoard/internal/state"
)

// DefaultShapeSize is the side of a rectangle added with AddRectangle.
const DefaultShapeSize = 100.0

// ErrInvalidFrame is returned when the canvas is resized to a non-positive
// extent.
var ErrInvalidFrame = errors.New("canvas size must be positive")

// HandleBinder is the part of the rendering surface that shows the transform
// handle. Its methods are called with the editor locked and must not call
// back into the editor.
type HandleBinder interface {
	AttachHandle(id string)
	DetachHandle()
}

// View is a read-only snapshot of the board.
type View struct {
	Shapes     []state.Rectangle
	SelectedID string
	Mode       state.Mode
	Draft      *state.Rectangle
	Frame      state.Frame

	// Revision counts the changes made to the editor. Views delivered to
	// listeners carry strictly increasing revisions.
	Revision uint64
}

// Selected returns the selected shape from the snapshot.
func (v View) Selected() (state.Rectangle, bool) {
	if v.SelectedID == "" {
		return state.Rectangle{}, false
	}
	for _, r := range v.Shapes {
		if r.ID == v.SelectedID {
			return r, true
		}
	}
	return state.Rectangle{}, false
}

// Option configures an Editor.
type Option func(*Editor)

// WithFrame sets the initial canvas size.
func WithFrame(f state.Frame) Option { return func(e *Editor) { e.frame = f } }

// WithIDSource sets the id source used for new shapes.
func WithIDSource(ids *state.IDSource) Option { return func(e *Editor) { e.ids = ids } }

// WithFill sets the fill generator for drawn and imported shapes.
func WithFill(fn func() color.NRGBA) Option { return func(e *Editor) { e.fill = fn } }

// WithHandleBinder connects the transform handle of the rendering surface.
func WithHandleBinder(b HandleBinder) Option { return func(e *Editor) { e.handles = b } }

// WithPlacement sets how AddRectangle picks a position inside the frame.
func WithPlacement(fn func(f state.Frame, size float64) (x, y float64)) Option {
	return func(e *Editor) { e.place = fn }
}

// Editor is the board controller: the shape store, the interaction mode, the
// canvas frame and the transform handle binding. Every exported method runs
// as one step under the editor lock, so selection and shapes are never seen
// out of step.
type Editor struct {
	mu        sync.Mutex
	store     *state.Store
	machine   state.Machine
	frame     state.Frame
	ids       *state.IDSource
	fill      func() color.NRGBA
	place     func(f state.Frame, size float64) (x, y float64)
	handles   HandleBinder
	handleID  string
	listeners []func(View)
	revision  uint64
	pending   []View
	dispatch  sync.Mutex
}

// New creates an editor with an empty board.
func New(opts ...Option) *Editor {
	e := &Editor{
		store: state.NewStore(),
		frame: state.Frame{Width: 1024, Height: 768},
		fill:  state.RandomFill,
		place: randomPlacement,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.ids == nil {
		e.ids = state.NewIDSource()
	}
	return e
}

func randomPlacement(f state.Frame, size float64) (float64, float64) {
	return rand.Float64() * math.Max(0, f.Width-size), rand.Float64() * math.Max(0, f.Height-size)
}

// OnChange registers fn to be called with a fresh View after every change.
// Listeners run after the lock is released, one view at a time and in
// revision order. A listener may call back into the editor, but views from
// changes it makes are delivered only after it returns.
func (e *Editor) OnChange(fn func(View)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

// SetHandleBinder connects the transform handle after construction and binds
// it to the current selection.
func (e *Editor) SetHandleBinder(b HandleBinder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handles = b
	e.handleID = ""
	e.syncHandle()
}

// mutate runs fn under the lock, rebinds the transform handle and queues a
// View for listeners when fn reports a change.
func (e *Editor) mutate(fn func() (bool, error)) error {
	e.mu.Lock()
	changed, err := fn()
	e.syncHandle()
	if changed {
		e.revision++
		e.pending = append(e.pending, e.viewLocked())
	}
	e.mu.Unlock()

	if changed {
		e.deliver()
	}
	return err
}

// deliver hands queued views to the listeners in revision order. Only one
// goroutine delivers at a time; a mutation made while another goroutine is
// delivering (or from inside a listener) leaves its view in the queue for
// that goroutine.
func (e *Editor) deliver() {
	for {
		if !e.dispatch.TryLock() {
			return
		}
		for {
			e.mu.Lock()
			if len(e.pending) == 0 {
				e.mu.Unlock()
				break
			}
			v := e.pending[0]
			e.pending = e.pending[1:]
			listeners := append([]func(View){}, e.listeners...)
			e.mu.Unlock()

			for _, l := range listeners {
				l(v)
			}
		}
		e.dispatch.Unlock()

		e.mu.Lock()
		more := len(e.pending) > 0
		e.mu.Unlock()
		if !more {
			return
		}
	}
}

// syncHandle keeps the transform handle on the selected shape: attached
// exactly while something is selected, detached otherwise.
func (e *Editor) syncHandle() {
	selected, _ := e.store.Selected()
	if selected == e.handleID {
		return
	}
	if e.handles != nil {
		if e.handleID != "" {
			e.handles.DetachHandle()
		}
		if selected != "" {
			e.handles.AttachHandle(selected)
		}
	}
	e.handleID = selected
}

func (e *Editor) viewLocked() View {
	v := View{
		Shapes:   e.store.Shapes(),
		Mode:     e.machine.Mode(),
		Frame:    e.frame,
		Revision: e.revision,
	}
	v.SelectedID, _ = e.store.Selected()
	if d, ok := e.machine.Draft(); ok {
		preview := d.Preview()
		v.Draft = &preview
	}
	return v
}

// View returns a snapshot of the board.
func (e *Editor) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewLocked()
}

// Mode returns the interaction mode.
func (e *Editor) Mode() state.Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machine.Mode()
}

// Overlaps lists the shapes touching the one with the given id.
func (e *Editor) Overlaps(id string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Overlapping(id)
}

// ToggleDrawing switches between select and drawing mode. Entering or leaving
// drawing mode clears the selection and drops any unfinished rectangle.
func (e *Editor) ToggleDrawing() {
	_ = e.mutate(func() (bool, error) {
		if e.machine.Toggle() {
			log.Printf("[EDITOR] Abandoned rectangle in progress")
		}
		e.store.ClearSelection()
		log.Printf("[EDITOR] Mode is now %s", e.machine.Mode())
		return true, nil
	})
}

// PointerDown handles a press at canvas coordinates. In drawing mode it starts
// a new rectangle; otherwise it selects the shape under the pointer or clears
// the selection when the background was hit.
func (e *Editor) PointerDown(x, y float64) {
	_ = e.mutate(func() (bool, error) {
		if e.machine.Drawing() {
			return e.machine.Begin(x, y, e.nextID(), e.fill()), nil
		}
		if r, ok := e.store.ShapeAt(x, y); ok {
			return e.selectLocked(r.ID), nil
		}
		if _, ok := e.store.Selected(); !ok {
			return false, nil
		}
		e.store.ClearSelection()
		return true, nil
	})
}

// PointerMove stretches the rectangle being drawn.
func (e *Editor) PointerMove(x, y float64) {
	_ = e.mutate(func() (bool, error) {
		return e.machine.Move(x, y), nil
	})
}

// PointerUp finishes the rectangle being drawn. Drags too small to pass the
// minimum size are dropped without complaint and drawing mode stays on.
func (e *Editor) PointerUp() {
	_ = e.mutate(func() (bool, error) {
		if !e.machine.Active() {
			return false, nil
		}
		r, ok := e.machine.End()
		if !ok {
			return true, nil
		}
		if err := e.store.Add(r); err != nil {
			log.Printf("[EDITOR] BUG: dropping drawn rectangle: %v", err)
		}
		return true, nil
	})
}

// nextID returns an id not used by any shape in the store.
func (e *Editor) nextID() string {
	for {
		id := e.ids.Next()
		if !e.store.Has(id) {
			return id
		}
	}
}

// Select makes id the active shape. It does nothing in drawing mode or when no
// such shape exists, and reports whether the selection now points at id.
func (e *Editor) Select(id string) bool {
	var selected bool
	_ = e.mutate(func() (bool, error) {
		if e.machine.Drawing() {
			return false, nil
		}
		selected = e.selectLocked(id)
		return selected, nil
	})
	return selected
}

func (e *Editor) selectLocked(id string) bool {
	if err := e.store.Select(id); err != nil {
		log.Printf("[EDITOR] Ignoring select: %v", err)
		return false
	}
	return true
}

// ClearSelection drops the active shape. It is allowed in any mode.
func (e *Editor) ClearSelection() {
	_ = e.mutate(func() (bool, error) {
		if _, ok := e.store.Selected(); !ok {
			return false, nil
		}
		e.store.ClearSelection()
		return true, nil
	})
}

// CommitTransform stores the result of a resize or move of a shape. Width and
// height are floored at state.MinSize.
func (e *Editor) CommitTransform(id string, b state.Box) error {
	return e.mutate(func() (bool, error) {
		if err := e.store.Update(id, state.ClampSize(b)); err != nil {
			return false, err
		}
		return true, nil
	})
}

// CommitMove stores the new position of a dragged shape, keeping its size.
func (e *Editor) CommitMove(id string, x, y float64) error {
	return e.mutate(func() (bool, error) {
		r, ok := e.store.Get(id)
		if !ok {
			return false, fmt.Errorf("move %s: %w", id, state.ErrNotFound)
		}
		b := r.Box()
		b.X, b.Y = x, y
		if err := e.store.Update(id, b); err != nil {
			return false, err
		}
		return true, nil
	})
}

// DeleteSelected removes the active shape. It reports whether anything was
// deleted.
func (e *Editor) DeleteSelected() bool {
	var deleted bool
	_ = e.mutate(func() (bool, error) {
		id, ok := e.store.Selected()
		if !ok {
			return false, nil
		}
		deleted = e.store.Remove(id) == nil
		return deleted, nil
	})
	return deleted
}

// MoveSelectedToFront paints the active shape above all others. It reports
// whether the order changed.
func (e *Editor) MoveSelectedToFront() bool {
	var moved bool
	_ = e.mutate(func() (bool, error) {
		id, ok := e.store.Selected()
		if !ok {
			return false, nil
		}
		moved = e.store.MoveToFront(id)
		return moved, nil
	})
	return moved
}

// AddRectangle drops a default-sized rectangle somewhere inside the frame.
func (e *Editor) AddRectangle() (state.Rectangle, error) {
	var r state.Rectangle
	err := e.mutate(func() (bool, error) {
		x, y := e.place(e.frame, DefaultShapeSize)
		r = state.Rectangle{
			ID:     e.nextID(),
			X:      x,
			Y:      y,
			Width:  DefaultShapeSize,
			Height: DefaultShapeSize,
			Fill:   e.fill(),
		}
		if err := e.store.Add(r); err != nil {
			return false, err
		}
		return true, nil
	})
	return r, err
}

// ResizeFrame changes the canvas extent.
func (e *Editor) ResizeFrame(width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize to %gx%g: %w", width, height, ErrInvalidFrame)
	}
	return e.mutate(func() (bool, error) {
		e.frame = state.Frame{Width: width, Height: height}
		return true, nil
	})
}

// Export returns the board as a document.
func (e *Editor) Export() document.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return document.Export(e.store.Shapes(), e.frame)
}

// ExportJSON returns the board as document text.
func (e *Editor) ExportJSON() ([]byte, error) {
	return document.Encode(e.Export())
}

// Import replaces the board with the one described by text. The text is fully
// validated first; on any error the board is left exactly as it was.
func (e *Editor) Import(text []byte) error {
	doc, err := document.Decode(text)
	if err != nil {
		log.Printf("[EDITOR] Import rejected: %v", err)
		return err
	}
	return e.ImportDocument(doc)
}

// ImportDocument is Import for an already decoded document.
func (e *Editor) ImportDocument(doc document.Document) error {
	return e.mutate(func() (bool, error) {
		shapes, frame, err := document.Import(doc, e.fill)
		if err != nil {
			log.Printf("[EDITOR] Import rejected: %v", err)
			return false, err
		}
		if err := e.store.ReplaceAll(shapes); err != nil {
			return false, &document.ImportError{Reason: document.ReasonDuplicateID, Err: err}
		}
		for _, r := range shapes {
			e.ids.Reserve(r.ID)
		}
		e.frame = frame
		log.Printf("[EDITOR] Imported %d shapes on a %s canvas", len(shapes), frame)
		return true, nil
	})
}
