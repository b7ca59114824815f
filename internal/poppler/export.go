package poppler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdfsnip/pdfsnip/internal/geom"
	"github.com/sirupsen/logrus"
)

// ExportResult reports the outcome of a successful region export.
// Warnings carries any diagnostic text the tool printed despite exiting
// cleanly, surfaced to the user as "saved with warnings".
type ExportResult struct {
	Warnings string
}

// ExportRegion extracts a region of one page (1-based) as a standalone SVG
// via pdftocairo. The region is in integer page points; -nocenter and
// -noshrink pin the output to exactly the requested box.
func (ts *Toolset) ExportRegion(ctx context.Context, docPath string, page int, region geom.PointRect, outPath string) (ExportResult, error) {
	args := exportArgs(docPath, page, region, outPath)

	_, stderr, err := ts.run(ctx, ts.vectorPath, args)
	if err != nil {
		return ExportResult{}, fmt.Errorf("exporting region of page %d: %w", page, err)
	}

	result := ExportResult{Warnings: strings.TrimSpace(stderr)}
	ts.logger.WithFields(logrus.Fields{
		"page":     page,
		"region":   region.String(),
		"output":   outPath,
		"warnings": result.Warnings != "",
	}).Debug("Exported region")

	return result, nil
}

func exportArgs(docPath string, page int, region geom.PointRect, outPath string) []string {
	p := strconv.Itoa(page)
	return []string{
		"-svg",
		"-f", p,
		"-l", p,
		"-x", strconv.Itoa(region.X),
		"-y", strconv.Itoa(region.Y),
		"-W", strconv.Itoa(region.W),
		"-H", strconv.Itoa(region.H),
		"-nocenter",
		"-noshrink",
		docPath,
		outPath,
	}
}
