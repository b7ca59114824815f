package geom

// Selection tracks a drag-selection gesture over the page raster. It moves
// between two states: idle and dragging. A press anchors a new rectangle
// and discards the previous one; every move while dragging recomputes the
// normalised bounding box of the anchor and the cursor; release returns to
// idle with the rectangle kept for a later export.
type Selection struct {
	anchor   Point
	rect     Rect
	dragging bool
}

// Begin starts a new selection gesture at p, discarding any previous
// rectangle.
func (s *Selection) Begin(p Point) {
	s.anchor = p
	s.rect = Rect{X: p.X, Y: p.Y}
	s.dragging = true
}

// Update recomputes the rectangle for the current cursor position. It is a
// no-op when no gesture is in progress.
func (s *Selection) Update(p Point) {
	if !s.dragging {
		return
	}
	s.rect = BoundingRect(s.anchor, p)
}

// End finishes the gesture at p. The rectangle persists until the next
// Begin or Clear.
func (s *Selection) End(p Point) {
	if !s.dragging {
		return
	}
	s.rect = BoundingRect(s.anchor, p)
	s.dragging = false
}

// Clear resets the selection to the idle, empty state.
func (s *Selection) Clear() {
	s.rect = Rect{}
	s.dragging = false
}

// Dragging reports whether a gesture is in progress.
func (s *Selection) Dragging() bool {
	return s.dragging
}

// Rect returns the current rectangle. It is empty until a drag has moved
// the cursor away from the anchor.
func (s *Selection) Rect() Rect {
	return s.rect
}
