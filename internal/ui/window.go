package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/pdfsnip/pdfsnip/internal/document"
	"github.com/pdfsnip/pdfsnip/internal/geom"
	"github.com/pdfsnip/pdfsnip/internal/poppler"
)

// statusDuration is how long a transient status message stays visible.
const statusDuration = 4 * time.Second

// zoomSteps are the available view magnifications.
var zoomSteps = []float64{0.5, 0.75, 1, 1.25, 1.5, 2, 3}

// Controller owns the window and wires the UI events to the document
// session and the poppler toolset. All tool invocations run synchronously
// in the handler that triggered them, so only one render or export is ever
// in flight.
type Controller struct {
	logger *logrus.Logger
	tools  *poppler.Toolset
	dpi    int

	fyneApp fyne.App
	win     fyne.Window

	workdir *poppler.Workdir
	session *document.Session
	watcher *document.Watcher

	view   *PageView
	scroll *container.Scroll

	btnOpen    *widget.Button
	btnPrev    *widget.Button
	btnNext    *widget.Button
	btnSave    *widget.Button
	btnZoomIn  *widget.Button
	btnZoomOut *widget.Button
	lblPage    *widget.Label
	lblZoom    *widget.Label
	status     *widget.Label

	zoomIdx     int
	statusEpoch int
}

// Run opens the main window and blocks until it is closed.
func Run(logger *logrus.Logger, tools *poppler.Toolset, dpi int) error {
	workdir, err := poppler.NewWorkdir(logger)
	if err != nil {
		return err
	}

	c := &Controller{
		logger:  logger,
		tools:   tools,
		dpi:     dpi,
		workdir: workdir,
		zoomIdx: indexOf(zoomSteps, 1),
	}

	c.fyneApp = app.New()
	c.win = c.fyneApp.NewWindow("PDF Vector Extractor")
	c.win.SetContent(c.buildLayout())
	c.win.Resize(fyne.NewSize(1000, 800))
	c.win.SetOnClosed(c.shutdown)

	c.setStatus("Open a PDF to begin.")
	c.win.ShowAndRun()
	return nil
}

func (c *Controller) buildLayout() fyne.CanvasObject {
	c.view = NewPageView()
	c.scroll = container.NewScroll(c.view)

	c.btnOpen = widget.NewButton("Open PDF", c.openPDF)
	c.btnPrev = widget.NewButton("<< Prev", c.prevPage)
	c.btnNext = widget.NewButton("Next >>", c.nextPage)
	c.btnSave = widget.NewButton("Save Region as SVG", c.saveSVG)
	c.btnZoomOut = widget.NewButton("-", func() { c.stepZoom(-1) })
	c.btnZoomIn = widget.NewButton("+", func() { c.stepZoom(1) })
	c.lblPage = widget.NewLabel("Page: N/A")
	c.lblZoom = widget.NewLabel("100%")
	c.status = widget.NewLabel("")

	for _, b := range []*widget.Button{c.btnPrev, c.btnNext, c.btnSave, c.btnZoomIn, c.btnZoomOut} {
		b.Disable()
	}

	controls := container.NewHBox(
		c.btnOpen,
		layout.NewSpacer(),
		c.btnPrev,
		c.lblPage,
		c.btnNext,
		layout.NewSpacer(),
		c.btnZoomOut,
		c.lblZoom,
		c.btnZoomIn,
		layout.NewSpacer(),
		c.btnSave,
	)

	return container.NewBorder(controls, c.status, nil, nil, c.scroll)
}

// openPDF shows the file-open dialog and opens the chosen document.
func (c *Controller) openPDF() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, c.win)
			return
		}
		if rc == nil {
			return // cancelled
		}
		path := rc.URI().Path()
		_ = rc.Close()
		c.openDocument(path)
	}, c.win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	d.Show()
}

func (c *Controller) openDocument(path string) {
	sess, err := document.Open(context.Background(), c.logger, c.tools, path, c.dpi)
	if err != nil {
		dialog.ShowError(fmt.Errorf("could not open %s: %w", path, err), c.win)
		return
	}

	if c.watcher != nil {
		_ = c.watcher.Close()
		c.watcher = nil
	}
	c.session = sess

	if !c.renderCurrent(true) {
		c.session = nil
		return
	}

	w, err := document.Watch(c.logger, path, func() {
		fyne.Do(c.reloadDocument)
	})
	if err != nil {
		c.logger.WithError(err).Warn("Auto-reload unavailable")
	} else {
		c.watcher = w
	}
}

// renderCurrent renders the session's current page into the view and
// recomputes the navigation affordances. An open-time failure aborts the
// open; later failures leave the previous page on screen.
func (c *Controller) renderCurrent(openTime bool) bool {
	img, err := c.session.Render(context.Background(), c.workdir.Dir())
	if err != nil {
		c.logger.WithError(err).WithField("page", c.session.PageNumber()).Error("Render failed")
		dialog.ShowError(fmt.Errorf("failed to render page %d: %w", c.session.PageNumber(), err), c.win)
		if openTime {
			c.lblPage.SetText("Page: N/A")
		}
		return false
	}

	c.view.SetImage(img)
	c.scroll.Refresh()
	c.updateNav()
	return true
}

func (c *Controller) updateNav() {
	c.lblPage.SetText(c.session.Label())
	setEnabled(c.btnPrev, c.session.HasPrev())
	setEnabled(c.btnNext, c.session.HasNext())
	c.btnSave.Enable()
	c.btnZoomIn.Enable()
	c.btnZoomOut.Enable()
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

func (c *Controller) prevPage() {
	if c.session != nil && c.session.Prev() {
		c.renderCurrent(false)
	}
}

func (c *Controller) nextPage() {
	if c.session != nil && c.session.Next() {
		c.renderCurrent(false)
	}
}

// reloadDocument re-renders after the file changed on disk.
func (c *Controller) reloadDocument() {
	if c.session == nil {
		return
	}
	if err := c.session.Reload(context.Background()); err != nil {
		c.logger.WithError(err).Warn("Reload failed")
		c.setStatus("Document changed on disk but could not be reloaded.")
		return
	}
	if c.renderCurrent(false) {
		c.setStatus("Document changed on disk; view reloaded.")
	}
}

func (c *Controller) stepZoom(delta int) {
	next := c.zoomIdx + delta
	if next < 0 || next >= len(zoomSteps) {
		return
	}
	c.zoomIdx = next
	zoom := zoomSteps[next]
	c.view.SetZoom(zoom)
	c.scroll.Refresh()
	c.lblZoom.SetText(fmt.Sprintf("%d%%", int(zoom*100)))
}

// saveSVG converts the selection from raster pixels to page points and
// hands it to pdftocairo.
func (c *Controller) saveSVG() {
	if c.session == nil {
		return
	}

	sel := c.view.Selection()
	if sel.Degenerate() {
		c.setStatus("Please select a region first.")
		return
	}

	pageSize := c.session.PageSize()
	if pageSize.Zero() {
		c.setStatus("Page size unknown; cannot export this page safely.")
		return
	}

	rasterW, rasterH := c.view.RasterSize()
	region, err := geom.ToPoints(sel, rasterW, rasterH, pageSize.Width, pageSize.Height)
	if err != nil {
		dialog.ShowError(err, c.win)
		return
	}

	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, c.win)
			return
		}
		if wc == nil {
			c.setStatus("Save cancelled.")
			return
		}
		outPath := wc.URI().Path()
		_ = wc.Close()
		c.exportRegion(region, outPath)
	}, c.win)
	d.SetFileName("region.svg")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".svg"}))
	d.Show()
}

func (c *Controller) exportRegion(region geom.PointRect, outPath string) {
	result, err := c.tools.ExportRegion(context.Background(), c.session.Path(), c.session.PageNumber(), region, outPath)
	if err != nil {
		if errors.Is(err, poppler.ErrToolNotFound) {
			c.setStatus("pdftocairo not found; install poppler-utils.")
			return
		}
		dialog.ShowError(fmt.Errorf("error saving SVG: %w", err), c.win)
		return
	}

	if result.Warnings != "" {
		c.logger.WithField("warnings", result.Warnings).Warn("Export finished with diagnostics")
		c.setStatus(fmt.Sprintf("Saved to %s (with warnings).", outPath))
		return
	}
	c.setStatus(fmt.Sprintf("Successfully saved to %s.", outPath))
}

// setStatus shows a transient message in the status bar. A newer message
// cancels the pending clear of an older one.
func (c *Controller) setStatus(msg string) {
	c.statusEpoch++
	epoch := c.statusEpoch
	c.status.SetText(msg)
	time.AfterFunc(statusDuration, func() {
		fyne.Do(func() {
			if c.statusEpoch == epoch {
				c.status.SetText("")
			}
		})
	})
}

// shutdown cleans the session temp directory and defensively sweeps any
// stale ones left behind by earlier crashes.
func (c *Controller) shutdown() {
	if c.watcher != nil {
		_ = c.watcher.Close()
	}
	c.workdir.Cleanup()
	poppler.SweepStale(c.logger)
}

func indexOf(steps []float64, v float64) int {
	for i, s := range steps {
		if s == v {
			return i
		}
	}
	return 0
}
