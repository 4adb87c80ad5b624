package state

// ShapeAt returns the front-most shape containing the point.
func (s *Store) ShapeAt(x, y float64) (Rectangle, bool) {
	for i := len(s.shapes) - 1; i >= 0; i-- {
		if s.shapes[i].Box().Contains(x, y) {
			return s.shapes[i], true
		}
	}
	return Rectangle{}, false
}

// Overlapping lists, in paint order, the ids of shapes whose area touches the
// shape with the given id.
func (s *Store) Overlapping(id string) []string {
	target, ok := s.Get(id)
	if !ok {
		return nil
	}
	var ids []string
	for _, r := range s.shapes {
		if r.ID != id && r.Box().Intersects(target.Box()) {
			ids = append(ids, r.ID)
		}
	}
	return ids
}
