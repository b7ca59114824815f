// Package poppler wraps the poppler-utils command-line tools (pdfinfo,
// pdftoppm, pdftocairo). All PDF parsing, rasterisation and vector
// extraction is delegated to them; this package builds arguments, runs the
// processes and interprets their output.
package poppler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Required tool names, resolved on the PATH at startup.
const (
	InfoTool   = "pdfinfo"
	RasterTool = "pdftoppm"
	VectorTool = "pdftocairo"
)

// DefaultPreviewDPI is the resolution used for page preview rasters.
// Higher values are clearer but slower to render and larger in memory.
const DefaultPreviewDPI = 150

// ErrToolNotFound indicates a required poppler binary could not be
// resolved on the PATH.
var ErrToolNotFound = errors.New("poppler tool not found")

// Toolset holds the resolved paths of the poppler binaries.
type Toolset struct {
	infoPath   string
	rasterPath string
	vectorPath string
	logger     *logrus.Logger
}

// Discover resolves all required poppler binaries on the PATH. The
// returned error names every missing tool so the startup report can list
// them in one go.
func Discover(logger *logrus.Logger) (*Toolset, error) {
	ts := &Toolset{logger: logger}

	var missing []string
	for _, probe := range []struct {
		name string
		dest *string
	}{
		{InfoTool, &ts.infoPath},
		{RasterTool, &ts.rasterPath},
		{VectorTool, &ts.vectorPath},
	} {
		path, err := exec.LookPath(probe.name)
		if err != nil {
			missing = append(missing, probe.name)
			continue
		}
		*probe.dest = path
		logger.WithFields(logrus.Fields{
			"tool": probe.name,
			"path": path,
		}).Debug("Resolved poppler tool")
	}

	if len(missing) > 0 {
		// The partially resolved toolset is still returned so the `tools`
		// subcommand can report found and missing binaries side by side.
		return ts, fmt.Errorf("%w: %s (install poppler-utils and ensure it is on your PATH)",
			ErrToolNotFound, strings.Join(missing, ", "))
	}
	return ts, nil
}

// Paths returns the resolved binary paths keyed by tool name, for the
// `tools` subcommand report.
func (ts *Toolset) Paths() map[string]string {
	return map[string]string{
		InfoTool:   ts.infoPath,
		RasterTool: ts.rasterPath,
		VectorTool: ts.vectorPath,
	}
}

// Version returns the version banner a poppler tool prints for -v.
// Poppler writes it to stderr.
func (ts *Toolset) Version(ctx context.Context, tool string) (string, error) {
	path, ok := ts.Paths()[tool]
	if !ok || path == "" {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, tool)
	}
	_, stderr, err := ts.run(ctx, path, []string{"-v"})
	if err != nil {
		return "", err
	}
	banner, _, _ := strings.Cut(strings.TrimSpace(stderr), "\n")
	return banner, nil
}

// run executes one tool invocation synchronously and captures both output
// streams. A missing binary is reported as ErrToolNotFound so callers can
// distinguish it from a tool failure.
func (ts *Toolset) run(ctx context.Context, path string, args []string) (stdout, stderr string, err error) {
	ts.logger.WithFields(logrus.Fields{
		"tool": path,
		"args": strings.Join(args, " "),
	}).Debug("Running poppler tool")

	cmd := exec.CommandContext(ctx, path, args...)
	var outb, errb bytes.Buffer
	cmd.Stdout = &outb
	cmd.Stderr = &errb

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", fmt.Errorf("%w: %s", ErrToolNotFound, path)
		}
		diag := strings.TrimSpace(errb.String())
		if diag != "" {
			return outb.String(), errb.String(), fmt.Errorf("%s failed: %w: %s", path, err, diag)
		}
		return outb.String(), errb.String(), fmt.Errorf("%s failed: %w", path, err)
	}

	return outb.String(), errb.String(), nil
}
