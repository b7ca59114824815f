package geom

import (
	"errors"
	"fmt"
)

// ErrZeroRaster is returned when a conversion is attempted against a
// raster with a zero dimension, which would otherwise divide by zero.
var ErrZeroRaster = errors.New("raster has a zero dimension")

// PointRect is a region on a PDF page in points (1/72 inch), truncated to
// integers because pdftocairo only accepts integer geometry arguments.
type PointRect struct {
	X int
	Y int
	W int
	H int
}

func (r PointRect) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", r.X, r.Y, r.W, r.H)
}

// ToPoints converts a selection rectangle in raster pixel coordinates to
// page point coordinates. The scale on each axis is the ratio of the page's
// physical size in points to the raster's size in pixels. Results are
// truncated, not rounded.
func ToPoints(sel Rect, rasterW, rasterH int, pageW, pageH float64) (PointRect, error) {
	if rasterW <= 0 || rasterH <= 0 {
		return PointRect{}, fmt.Errorf("%w: %dx%d px", ErrZeroRaster, rasterW, rasterH)
	}
	scaleX := pageW / float64(rasterW)
	scaleY := pageH / float64(rasterH)
	return PointRect{
		X: int(float64(sel.X) * scaleX),
		Y: int(float64(sel.Y) * scaleY),
		W: int(float64(sel.W) * scaleX),
		H: int(float64(sel.H) * scaleY),
	}, nil
}
