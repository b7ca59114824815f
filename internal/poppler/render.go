package poppler

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
)

// TempFilePrefix names the per-page raster files written by the renderer.
// The defensive sweep on shutdown removes anything matching it.
const TempFilePrefix = "pdfsnip-page"

// RenderPage rasterises one page (1-based) of the document to a PNG at the
// given DPI inside dir, decodes it and deletes the file. The temp file only
// exists for the duration of this call.
func (ts *Toolset) RenderPage(ctx context.Context, docPath string, page, dpi int, dir string) (image.Image, error) {
	prefix := filepath.Join(dir, fmt.Sprintf("%s-%d", TempFilePrefix, page))
	outFile := prefix + ".png"

	args := renderArgs(docPath, page, dpi, prefix)
	if _, _, err := ts.run(ctx, ts.rasterPath, args); err != nil {
		return nil, fmt.Errorf("rendering page %d: %w", page, err)
	}

	f, err := os.Open(outFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("rendering page %d: %s exited cleanly but produced no output file", page, RasterTool)
		}
		return nil, fmt.Errorf("rendering page %d: %w", page, err)
	}
	defer func() {
		_ = f.Close()
		if err := os.Remove(outFile); err != nil {
			ts.logger.WithError(err).WithField("file", outFile).Warn("Failed to remove temp raster")
		}
	}()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding raster for page %d: %w", page, err)
	}

	bounds := img.Bounds()
	ts.logger.WithFields(logrus.Fields{
		"page":   page,
		"dpi":    dpi,
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
	}).Debug("Rendered page raster")

	return img, nil
}

// RasterDims returns the pixel dimensions pdftoppm produces for a page of
// the given physical size at dpi, rounded to the nearest pixel. Used by
// the headless path to interpret pixel rectangles without rendering.
func RasterDims(size PageSize, dpi int) (w, h int) {
	w = int(math.Round(size.Width / 72 * float64(dpi)))
	h = int(math.Round(size.Height / 72 * float64(dpi)))
	return w, h
}

// renderArgs builds the pdftoppm invocation. -singlefile suppresses the
// page-number suffix pdftoppm otherwise appends to the output prefix.
func renderArgs(docPath string, page, dpi int, outPrefix string) []string {
	p := strconv.Itoa(page)
	return []string{
		"-f", p,
		"-l", p,
		"-png",
		"-r", strconv.Itoa(dpi),
		"-singlefile",
		docPath,
		outPrefix,
	}
}
