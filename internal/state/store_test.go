package state

import (
	"errors"
	"testing"
)

func rect(id string, x, y, w, h float64) Rectangle {
	return Rectangle{ID: id, X: x, Y: y, Width: w, Height: h}
}

func ids(rs []Rectangle) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newStore(t *testing.T, rs ...Rectangle) *Store {
	t.Helper()
	s := NewStore()
	for _, r := range rs {
		if err := s.Add(r); err != nil {
			t.Fatalf("Add(%s): %v", r.ID, err)
		}
	}
	return s
}

func TestStoreAdd(t *testing.T) {
	s := newStore(t, rect("a", 0, 0, 10, 10), rect("b", 5, 5, 10, 10))
	if got := ids(s.Shapes()); !equalIDs(got, []string{"a", "b"}) {
		t.Fatalf("order = %v", got)
	}
	err := s.Add(rect("a", 1, 1, 10, 10))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("duplicate add changed store: %d shapes", s.Len())
	}
}

func TestStoreUpdate(t *testing.T) {
	s := newStore(t, rect("a", 0, 0, 10, 10), rect("b", 5, 5, 10, 10))
	s.shapes[0].Fill.R = 200

	if err := s.Update("a", Box{X: 7, Y: 8, Width: 30, Height: 40}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := s.Get("a")
	if got.Box() != (Box{X: 7, Y: 8, Width: 30, Height: 40}) || got.Fill.R != 200 {
		t.Errorf("Update result = %+v", got)
	}
	if order := ids(s.Shapes()); !equalIDs(order, []string{"a", "b"}) {
		t.Errorf("Update changed order: %v", order)
	}
	if err := s.Update("missing", Box{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreRemoveClearsSelection(t *testing.T) {
	s := newStore(t, rect("a", 0, 0, 10, 10), rect("b", 5, 5, 10, 10))
	if err := s.Select("b"); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove("a"); err != nil {
		t.Fatal(err)
	}
	if id, _ := s.Selected(); id != "b" {
		t.Fatalf("removing another shape changed selection to %q", id)
	}
	if err := s.Remove("b"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Selected(); ok {
		t.Fatal("selection survived removal of the selected shape")
	}
	if err := s.Remove("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreMoveToFront(t *testing.T) {
	s := newStore(t, rect("a", 0, 0, 1, 1), rect("b", 0, 0, 1, 1), rect("c", 0, 0, 1, 1))

	if !s.MoveToFront("a") {
		t.Fatal("MoveToFront(a) reported no change")
	}
	if got := ids(s.Shapes()); !equalIDs(got, []string{"b", "c", "a"}) {
		t.Fatalf("order = %v", got)
	}
	if s.MoveToFront("a") {
		t.Error("moving the front shape reported a change")
	}
	if s.MoveToFront("zzz") {
		t.Error("moving an unknown shape reported a change")
	}
	if got := ids(s.Shapes()); !equalIDs(got, []string{"b", "c", "a"}) {
		t.Errorf("no-op moves changed order: %v", got)
	}
}

func TestStoreReplaceAll(t *testing.T) {
	s := newStore(t, rect("a", 0, 0, 1, 1))
	_ = s.Select("a")

	err := s.ReplaceAll([]Rectangle{rect("x", 0, 0, 1, 1), rect("x", 1, 1, 1, 1)})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if id, _ := s.Selected(); id != "a" || s.Len() != 1 {
		t.Fatal("refused replace modified the store")
	}

	if err := s.ReplaceAll([]Rectangle{rect("a", 0, 0, 1, 1), rect("b", 0, 0, 1, 1)}); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Selected(); ok {
		t.Error("ReplaceAll kept the selection")
	}
	if got := ids(s.Shapes()); !equalIDs(got, []string{"a", "b"}) {
		t.Errorf("order = %v", got)
	}
}

func TestStoreSelectUnknownKeepsSelection(t *testing.T) {
	s := newStore(t, rect("a", 0, 0, 1, 1))
	_ = s.Select("a")
	if err := s.Select("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if id, _ := s.Selected(); id != "a" {
		t.Errorf("selection = %q, want a", id)
	}
}

func TestStoreShapesIsACopy(t *testing.T) {
	s := newStore(t, rect("a", 0, 0, 1, 1))
	snap := s.Shapes()
	snap[0].X = 99
	if got, _ := s.Get("a"); got.X != 0 {
		t.Error("snapshot aliases store memory")
	}
}

func TestStoreShapeAt(t *testing.T) {
	s := newStore(t, rect("back", 0, 0, 100, 100), rect("front", 50, 50, 100, 100))

	if r, ok := s.ShapeAt(75, 75); !ok || r.ID != "front" {
		t.Errorf("overlap hit = %q, %v; want front", r.ID, ok)
	}
	if r, ok := s.ShapeAt(10, 10); !ok || r.ID != "back" {
		t.Errorf("hit = %q, %v; want back", r.ID, ok)
	}
	if _, ok := s.ShapeAt(300, 300); ok {
		t.Error("background hit returned a shape")
	}

	s.MoveToFront("back")
	if r, _ := s.ShapeAt(75, 75); r.ID != "back" {
		t.Errorf("after MoveToFront hit = %q, want back", r.ID)
	}
}

func TestStoreOverlapping(t *testing.T) {
	s := newStore(t,
		rect("a", 0, 0, 10, 10),
		rect("b", 5, 5, 10, 10),
		rect("c", 100, 100, 10, 10),
	)
	if got := s.Overlapping("a"); !equalIDs(got, []string{"b"}) {
		t.Errorf("Overlapping(a) = %v", got)
	}
	if got := s.Overlapping("c"); len(got) != 0 {
		t.Errorf("Overlapping(c) = %v", got)
	}
	if got := s.Overlapping("missing"); got != nil {
		t.Errorf("Overlapping(missing) = %v", got)
	}
}
