package poppler

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrUnparseableOutput indicates pdfinfo ran successfully but its report
// did not contain the expected line.
var ErrUnparseableOutput = errors.New("unexpected pdfinfo output")

// PageSize is the physical size of a single page in points (1/72 inch).
// Pages within one document may differ in size, so it is queried per page.
type PageSize struct {
	Width  float64
	Height float64
}

// Zero reports whether either dimension is missing. A zero size disables
// export later via the zero-dimension guard.
func (s PageSize) Zero() bool {
	return s.Width == 0 || s.Height == 0
}

var (
	pagesRe = regexp.MustCompile(`(?m)^Pages:\s+(\d+)\s*$`)
	// Tolerant of padding, decimal sizes and trailing annotations such as
	// "(letter)" that some poppler versions append.
	pageSizeRe = regexp.MustCompile(`(?m)^Page\s+(\d+)\s+size:\s+([0-9.]+)\s*x\s*([0-9.]+)\s*pts`)
)

// PageCount queries the document's total page count via pdfinfo.
func (ts *Toolset) PageCount(ctx context.Context, docPath string) (int, error) {
	stdout, _, err := ts.run(ctx, ts.infoPath, []string{docPath})
	if err != nil {
		return 0, fmt.Errorf("querying page count: %w", err)
	}

	count, err := parsePageCount(stdout)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// PageSize queries the physical size of one page (1-based) via pdfinfo.
// A report without a parseable size line yields ErrUnparseableOutput;
// callers fall back to a zero size, which blocks export instead of
// producing a mis-scaled region.
func (ts *Toolset) PageSize(ctx context.Context, docPath string, page int) (PageSize, error) {
	args := []string{"-f", strconv.Itoa(page), "-l", strconv.Itoa(page), docPath}
	stdout, _, err := ts.run(ctx, ts.infoPath, args)
	if err != nil {
		return PageSize{}, fmt.Errorf("querying size of page %d: %w", page, err)
	}

	size, err := parsePageSize(stdout)
	if err != nil {
		return PageSize{}, fmt.Errorf("page %d: %w", page, err)
	}
	return size, nil
}

func parsePageCount(report string) (int, error) {
	m := pagesRe.FindStringSubmatch(report)
	if m == nil {
		return 0, fmt.Errorf("%w: no Pages line", ErrUnparseableOutput)
	}
	count, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: bad page count %q", ErrUnparseableOutput, m[1])
	}
	return count, nil
}

func parsePageSize(report string) (PageSize, error) {
	m := pageSizeRe.FindStringSubmatch(report)
	if m == nil {
		return PageSize{}, fmt.Errorf("%w: no page size line", ErrUnparseableOutput)
	}
	w, errW := strconv.ParseFloat(m[2], 64)
	h, errH := strconv.ParseFloat(m[3], 64)
	if errW != nil || errH != nil {
		return PageSize{}, fmt.Errorf("%w: bad page size %q x %q", ErrUnparseableOutput, m[2], m[3])
	}
	return PageSize{Width: w, Height: h}, nil
}
