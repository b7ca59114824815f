// Package ui is the fyne front end: a single window with navigation
// controls and a page view that supports drag-selecting a region of the
// rendered raster.
package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"

	"github.com/pdfsnip/pdfsnip/internal/geom"
)

var (
	selectionFill   = color.NRGBA{R: 0, G: 120, B: 215, A: 50}
	selectionStroke = color.NRGBA{R: 0, G: 120, B: 215, A: 200}
)

// PageView displays the rendered page raster and tracks a drag selection
// over it. The selection is kept in raster pixel coordinates so zooming
// the view never changes what a selection means.
type PageView struct {
	widget.BaseWidget

	raster  image.Image
	display *canvas.Image
	box     *canvas.Rectangle

	sel        geom.Selection
	lastCursor geom.Point
	zoom       float64
}

// NewPageView returns an empty view at 100% zoom.
func NewPageView() *PageView {
	v := &PageView{zoom: 1}
	v.display = canvas.NewImageFromImage(nil)
	v.display.FillMode = canvas.ImageFillStretch
	v.box = canvas.NewRectangle(selectionFill)
	v.box.StrokeColor = selectionStroke
	v.box.StrokeWidth = 2
	v.box.Hide()
	v.ExtendBaseWidget(v)
	return v
}

// SetImage replaces the page raster wholesale, discarding any selection.
func (v *PageView) SetImage(img image.Image) {
	v.raster = img
	v.sel.Clear()
	v.rebuildDisplay()
	v.Refresh()
}

// SetZoom rescales the displayed raster. The selection survives because it
// lives in raster space.
func (v *PageView) SetZoom(zoom float64) {
	if zoom <= 0 || zoom == v.zoom {
		return
	}
	v.zoom = zoom
	v.rebuildDisplay()
	v.Refresh()
}

// Zoom returns the current zoom factor.
func (v *PageView) Zoom() float64 {
	return v.zoom
}

// Selection returns the current selection rectangle in raster pixels.
func (v *PageView) Selection() geom.Rect {
	return v.sel.Rect()
}

// RasterSize returns the pixel dimensions of the underlying render, or
// zeros when no page is loaded.
func (v *PageView) RasterSize() (w, h int) {
	if v.raster == nil {
		return 0, 0
	}
	b := v.raster.Bounds()
	return b.Dx(), b.Dy()
}

// rebuildDisplay regenerates the displayed image for the current zoom.
// Scaling is done here with CatmullRom rather than by the canvas so zoomed
// pages stay crisp.
func (v *PageView) rebuildDisplay() {
	if v.raster == nil {
		v.display.Image = nil
		return
	}
	if v.zoom == 1 {
		v.display.Image = v.raster
		return
	}

	b := v.raster.Bounds()
	w := int(float64(b.Dx()) * v.zoom)
	h := int(float64(b.Dy()) * v.zoom)
	if w < 1 || h < 1 {
		v.display.Image = v.raster
		return
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), v.raster, b, xdraw.Over, nil)
	v.display.Image = dst
}

// displaySize is the on-screen size of the raster at the current zoom.
func (v *PageView) displaySize() fyne.Size {
	w, h := v.RasterSize()
	return fyne.NewSize(float32(float64(w)*v.zoom), float32(float64(h)*v.zoom))
}

// toRaster maps a widget-local event position to raster pixel coordinates,
// clamped to the raster bounds.
func (v *PageView) toRaster(pos fyne.Position) geom.Point {
	w, h := v.RasterSize()
	p := geom.Point{
		X: clamp(int(float64(pos.X)/v.zoom), 0, w),
		Y: clamp(int(float64(pos.Y)/v.zoom), 0, h),
	}
	return p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MouseDown anchors a new selection, discarding the previous one.
func (v *PageView) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || v.raster == nil {
		return
	}
	v.lastCursor = v.toRaster(e.Position)
	v.sel.Begin(v.lastCursor)
	v.Refresh()
}

// MouseUp completes the gesture. The rectangle persists for export.
func (v *PageView) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || !v.sel.Dragging() {
		return
	}
	v.sel.End(v.toRaster(e.Position))
	v.Refresh()
}

// Dragged grows the selection to the normalised bounding box of the anchor
// and the cursor.
func (v *PageView) Dragged(e *fyne.DragEvent) {
	if !v.sel.Dragging() {
		return
	}
	v.lastCursor = v.toRaster(e.Position)
	v.sel.Update(v.lastCursor)
	v.Refresh()
}

// DragEnd finishes the gesture if MouseUp was swallowed by the drag.
func (v *PageView) DragEnd() {
	if !v.sel.Dragging() {
		return
	}
	v.sel.End(v.lastCursor)
	v.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (v *PageView) CreateRenderer() fyne.WidgetRenderer {
	return &pageViewRenderer{view: v}
}

type pageViewRenderer struct {
	view *PageView
}

func (r *pageViewRenderer) MinSize() fyne.Size {
	return r.view.displaySize()
}

func (r *pageViewRenderer) Layout(size fyne.Size) {
	r.view.display.Resize(size)
	r.syncBox()
}

func (r *pageViewRenderer) Refresh() {
	r.view.display.Refresh()
	r.syncBox()
	canvas.Refresh(r.view)
}

func (r *pageViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.display, r.view.box}
}

func (r *pageViewRenderer) Destroy() {}

// syncBox positions the selection overlay in display coordinates.
func (r *pageViewRenderer) syncBox() {
	sel := r.view.sel.Rect()
	if sel.Empty() {
		r.view.box.Hide()
		return
	}
	z := r.view.zoom
	r.view.box.Move(fyne.NewPos(float32(float64(sel.X)*z), float32(float64(sel.Y)*z)))
	r.view.box.Resize(fyne.NewSize(float32(float64(sel.W)*z), float32(float64(sel.H)*z)))
	r.view.box.Show()
}

// Interface guards for the event plumbing the view relies on.
var (
	_ fyne.Widget       = (*PageView)(nil)
	_ fyne.Draggable    = (*PageView)(nil)
	_ desktop.Mouseable = (*PageView)(nil)
)
