// Package geom holds the pixel-space selection model and the conversion
// from raster pixels to PDF points.
package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// MinSelectionPx is the smallest selection edge (in raster pixels) that is
// still considered a usable region. Anything narrower is treated as an
// accidental click rather than a selection.
const MinSelectionPx = 2

// Point is a position in raster pixel coordinates.
type Point struct {
	X int
	Y int
}

// Rect is an axis-aligned rectangle in raster pixel coordinates with
// non-negative width and height.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// BoundingRect returns the normalised rectangle spanned by two corner
// points, in any order.
func BoundingRect(a, b Point) Rect {
	x, w := span(a.X, b.X)
	y, h := span(a.Y, b.Y)
	return Rect{X: x, Y: y, W: w, H: h}
}

func span(a, b int) (origin, length int) {
	if a > b {
		a, b = b, a
	}
	return a, b - a
}

// Empty reports whether the rectangle has zero area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Degenerate reports whether the rectangle is too small to export.
func (r Rect) Degenerate() bool {
	return r.W < MinSelectionPx || r.H < MinSelectionPx
}

func (r Rect) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", r.X, r.Y, r.W, r.H)
}

// ParseRect parses a rectangle from its "x,y,w,h" string form, as accepted
// by the extract subcommand's --rect flag.
func ParseRect(s string) (Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Rect{}, fmt.Errorf("rect must have the form x,y,w,h, got %q", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Rect{}, fmt.Errorf("rect component %d is not an integer: %q", i+1, p)
		}
		vals[i] = v
	}
	r := Rect{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}
	if r.W < 0 || r.H < 0 {
		return Rect{}, fmt.Errorf("rect width and height must be non-negative, got %q", s)
	}
	return r, nil
}
