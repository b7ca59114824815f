package poppler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const workdirPrefix = "pdfsnip-"

// Workdir is the temp directory that holds page rasters for one session.
// It is flock-guarded so the stale sweep of another instance never removes
// files a live renderer still owns.
type Workdir struct {
	dir    string
	lock   *flock.Flock
	logger *logrus.Logger
}

// NewWorkdir creates a locked per-session temp directory under the system
// temp dir, named by a fresh session ID.
func NewWorkdir(logger *logrus.Logger) (*Workdir, error) {
	id := uuid.New().String()[:8]
	dir := filepath.Join(os.TempDir(), workdirPrefix+id)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating temp work directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, ".lock"))
	locked, err := lock.TryLock()
	if err != nil || !locked {
		_ = os.RemoveAll(dir)
		if err == nil {
			err = fmt.Errorf("already locked")
		}
		return nil, fmt.Errorf("locking temp work directory: %w", err)
	}

	logger.WithField("dir", dir).Debug("Created temp work directory")
	return &Workdir{dir: dir, lock: lock, logger: logger}, nil
}

// Dir returns the directory path for the renderer to write into.
func (w *Workdir) Dir() string {
	return w.dir
}

// Cleanup unlocks and removes the session directory with everything left
// in it. Missing files are tolerated.
func (w *Workdir) Cleanup() {
	if err := w.lock.Unlock(); err != nil {
		w.logger.WithError(err).Debug("Failed to unlock temp work directory")
	}
	if err := os.RemoveAll(w.dir); err != nil && !os.IsNotExist(err) {
		w.logger.WithError(err).WithField("dir", w.dir).Warn("Failed to remove temp work directory")
	}
}

// SweepStale removes leftover pdfsnip temp directories from crashed runs.
// Directories whose lock is still held by a live instance are skipped.
func SweepStale(logger *logrus.Logger) {
	entries, err := os.ReadDir(os.TempDir())
	if err != nil {
		logger.WithError(err).Debug("Failed to read temp dir for sweep")
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), workdirPrefix) {
			continue
		}
		dir := filepath.Join(os.TempDir(), entry.Name())

		lock := flock.New(filepath.Join(dir, ".lock"))
		locked, err := lock.TryLock()
		if err != nil || !locked {
			continue // held by a live instance
		}
		_ = lock.Unlock()

		if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
			logger.WithError(err).WithField("dir", dir).Debug("Failed to sweep stale temp dir")
			continue
		}
		logger.WithField("dir", dir).Debug("Swept stale temp dir")
	}
}
