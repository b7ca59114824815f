// Package document tracks the state of one opened PDF: its page count,
// the page currently displayed and that page's physical size.
package document

import (
	"context"
	"fmt"
	"image"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfsnip/pdfsnip/internal/poppler"
	"github.com/sirupsen/logrus"
)

// Session is the handle for an opened document. Page indices are 0-based
// internally; the poppler tools take 1-based page numbers.
type Session struct {
	logger *logrus.Logger
	tools  *poppler.Toolset

	id         uuid.UUID
	path       string
	totalPages int
	page       int
	pageSize   poppler.PageSize
	dpi        int
}

// Open queries the document's page count and returns a session positioned
// on the first page. The count comes from pdfinfo; if its report cannot be
// parsed, pdfcpu provides a native fallback count. Both failing aborts the
// open.
func Open(ctx context.Context, logger *logrus.Logger, tools *poppler.Toolset, path string, dpi int) (*Session, error) {
	s := &Session{
		logger: logger,
		tools:  tools,
		id:     uuid.New(),
		path:   path,
		dpi:    dpi,
	}

	if err := s.refreshPageCount(ctx); err != nil {
		return nil, err
	}
	if s.totalPages < 1 {
		return nil, fmt.Errorf("%s has no pages", path)
	}

	// Sanity check the file structure. Poppler copes with many damaged
	// files, so a validation failure is only worth a warning.
	if err := api.ValidateFile(path, nil); err != nil {
		logger.WithError(err).WithField("path", path).Warn("Document failed structural validation")
	}

	logger.WithFields(logrus.Fields{
		"session": s.id.String(),
		"path":    path,
		"pages":   s.totalPages,
	}).Info("Opened document")

	return s, nil
}

func (s *Session) refreshPageCount(ctx context.Context) error {
	count, err := s.tools.PageCount(ctx, s.path)
	if err != nil {
		s.logger.WithError(err).Warn("pdfinfo page count failed, trying pdfcpu")
		count, err = api.PageCountFile(s.path)
		if err != nil {
			return fmt.Errorf("determining page count of %s: %w", s.path, err)
		}
	}
	s.totalPages = count
	return nil
}

// Path returns the document's file path.
func (s *Session) Path() string { return s.path }

// PageCount returns the total number of pages.
func (s *Session) PageCount() int { return s.totalPages }

// PageIndex returns the 0-based index of the displayed page.
func (s *Session) PageIndex() int { return s.page }

// PageNumber returns the 1-based number of the displayed page, as the
// poppler tools expect it.
func (s *Session) PageNumber() int { return s.page + 1 }

// PageSize returns the physical size of the displayed page as of the last
// render. It is (0,0) when the size query failed.
func (s *Session) PageSize() poppler.PageSize { return s.pageSize }

// HasPrev reports whether a previous page exists.
func (s *Session) HasPrev() bool { return s.page > 0 }

// HasNext reports whether a following page exists.
func (s *Session) HasNext() bool { return s.page < s.totalPages-1 }

// Prev moves to the previous page and reports whether the index changed.
// It is a no-op on the first page.
func (s *Session) Prev() bool {
	if !s.HasPrev() {
		return false
	}
	s.page--
	return true
}

// Next moves to the following page and reports whether the index changed.
// It is a no-op on the last page.
func (s *Session) Next() bool {
	if !s.HasNext() {
		return false
	}
	s.page++
	return true
}

// Goto jumps directly to a 0-based page index. Unlike Prev/Next it rejects
// out-of-range targets instead of clamping, since it serves explicit
// requests (the extract subcommand) rather than navigation buttons.
func (s *Session) Goto(index int) error {
	if index < 0 || index >= s.totalPages {
		return fmt.Errorf("page %d is out of range 1-%d", index+1, s.totalPages)
	}
	s.page = index
	return nil
}

// Render refreshes the displayed page's physical size and rasterises it
// into dir at the session's preview DPI. A failed size query leaves the
// size at (0,0); export is blocked by the zero-dimension guard until a
// later render succeeds.
func (s *Session) Render(ctx context.Context, dir string) (image.Image, error) {
	size, err := s.tools.PageSize(ctx, s.path, s.PageNumber())
	if err != nil {
		s.logger.WithError(err).WithField("page", s.PageNumber()).Warn("Could not determine page size")
		size = poppler.PageSize{}
	}
	s.pageSize = size

	return s.tools.RenderPage(ctx, s.path, s.PageNumber(), s.dpi, dir)
}

// Reload re-queries the page count after the file changed on disk and
// clamps the current index if the document shrank.
func (s *Session) Reload(ctx context.Context) error {
	if err := s.refreshPageCount(ctx); err != nil {
		return err
	}
	if s.totalPages < 1 {
		return fmt.Errorf("%s no longer has any pages", s.path)
	}
	if s.page > s.totalPages-1 {
		s.page = s.totalPages - 1
	}
	return nil
}

// Label renders the "Page: n / total" caption for the navigation bar.
func (s *Session) Label() string {
	return fmt.Sprintf("Page: %d / %d", s.PageNumber(), s.totalPages)
}
