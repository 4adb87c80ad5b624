package state

import (
	"errors"
	"fmt"
	"log"
)

var (
	// ErrNotFound is returned when an operation names a shape that is not in
	// the store.
	ErrNotFound = errors.New("shape not found")
	// ErrDuplicateID is returned when a shape id is already taken.
	ErrDuplicateID = errors.New("duplicate shape id")
)

// Store is the ordered shape collection plus the selected id. Later entries
// are painted on top and win hit tests. Every method leaves the selection
// pointing at an existing shape or at nothing.
//
// Store is not safe for concurrent use; the editor owns it and serialises
// access.
type Store struct {
	shapes   []Rectangle
	selected string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{shapes: make([]Rectangle, 0)}
}

func (s *Store) index(id string) int {
	for i, r := range s.shapes {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Add appends r as the front-most shape.
func (s *Store) Add(r Rectangle) error {
	if s.index(r.ID) >= 0 {
		return fmt.Errorf("add %s: %w", r.ID, ErrDuplicateID)
	}
	s.shapes = append(s.shapes, r)
	log.Printf("[STORE] Added %s at (%g, %g) %gx%g", r.ID, r.X, r.Y, r.Width, r.Height)
	return nil
}

// Update replaces the geometry of the shape with the given id, keeping its
// fill and its place in the order.
func (s *Store) Update(id string, patch Box) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	s.shapes[i] = s.shapes[i].WithBox(patch)
	return nil
}

// Remove deletes the shape and, if it was selected, the selection with it.
func (s *Store) Remove(id string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
	if s.selected == id {
		s.selected = ""
	}
	log.Printf("[STORE] Removed %s", id)
	return nil
}

// MoveToFront moves the shape to the end of the order. It reports whether the
// order changed; unknown ids and the current front shape are left as is.
func (s *Store) MoveToFront(id string) bool {
	i := s.index(id)
	if i < 0 || i == len(s.shapes)-1 {
		return false
	}
	r := s.shapes[i]
	copy(s.shapes[i:], s.shapes[i+1:])
	s.shapes[len(s.shapes)-1] = r
	return true
}

// ReplaceAll swaps in a whole new collection and clears the selection. A
// collection with repeated ids is refused and the store is left untouched.
func (s *Store) ReplaceAll(rects []Rectangle) error {
	seen := make(map[string]struct{}, len(rects))
	for _, r := range rects {
		if _, ok := seen[r.ID]; ok {
			return fmt.Errorf("replace: %s: %w", r.ID, ErrDuplicateID)
		}
		seen[r.ID] = struct{}{}
	}
	next := make([]Rectangle, len(rects))
	copy(next, rects)
	s.shapes = next
	s.selected = ""
	log.Printf("[STORE] Replaced collection with %d shapes", len(next))
	return nil
}

// Select marks id as the active shape. Unknown ids leave the selection as it
// was.
func (s *Store) Select(id string) error {
	if s.index(id) < 0 {
		return fmt.Errorf("select %s: %w", id, ErrNotFound)
	}
	s.selected = id
	return nil
}

// ClearSelection drops the active shape, if any.
func (s *Store) ClearSelection() {
	s.selected = ""
}

// Selected returns the active shape id.
func (s *Store) Selected() (string, bool) {
	return s.selected, s.selected != ""
}

// Get returns the shape with the given id.
func (s *Store) Get(id string) (Rectangle, bool) {
	if i := s.index(id); i >= 0 {
		return s.shapes[i], true
	}
	return Rectangle{}, false
}

// Has reports whether a shape with the given id exists.
func (s *Store) Has(id string) bool {
	return s.index(id) >= 0
}

// Shapes returns a copy of the collection in paint order.
func (s *Store) Shapes() []Rectangle {
	out := make([]Rectangle, len(s.shapes))
	copy(out, s.shapes)
	return out
}

// Len returns the number of shapes.
func (s *Store) Len() int {
	return len(s.shapes)
}
