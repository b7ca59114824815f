package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/pdfsnip/pdfsnip/internal/document"
	"github.com/pdfsnip/pdfsnip/internal/geom"
	"github.com/pdfsnip/pdfsnip/internal/poppler"
	"github.com/pdfsnip/pdfsnip/internal/ui"
)

// Version information (set during build)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// parseLogLevel parses the LOG_LEVEL environment variable and returns the
// appropriate logrus level. Defaults to WarnLevel if not set or invalid.
func parseLogLevel() logrus.Level {
	logLevelStr := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))

	switch logLevelStr {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}

// configureLogOutput sends logs to ~/.pdfsnip/logs/pdfsnip.log so they do
// not interleave with the terminal; stderr is the fallback when the log
// directory cannot be created.
func configureLogOutput(logger *logrus.Logger) func() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		logger.SetOutput(os.Stderr)
		return func() {}
	}

	logDir := filepath.Join(homeDir, ".pdfsnip", "logs")
	if err := os.MkdirAll(logDir, 0700); err != nil {
		logger.SetOutput(os.Stderr)
		return func() {}
	}

	logFile := filepath.Join(logDir, "pdfsnip.log")
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		logger.SetOutput(os.Stderr)
		return func() {}
	}

	logger.SetOutput(file)
	return func() { _ = file.Close() }
}

func main() {
	logger := logrus.New()
	logger.SetLevel(parseLogLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	closeLog := configureLogOutput(logger)
	defer closeLog()

	app := &cli.App{
		Name:    "pdfsnip",
		Usage:   "select a region of a rendered PDF page and export it as a standalone SVG",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "dpi",
				Value: poppler.DefaultPreviewDPI,
				Usage: "resolution for the page preview raster",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override LOG_LEVEL (debug, info, warn, error)",
			},
		},
		Before: func(c *cli.Context) error {
			if lvl := c.String("log-level"); lvl != "" {
				parsed, err := logrus.ParseLevel(lvl)
				if err != nil {
					return fmt.Errorf("invalid log level %q", lvl)
				}
				logger.SetLevel(parsed)
			}
			return nil
		},
		Commands: []*cli.Command{
			versionCommand(),
			toolsCommand(logger),
			extractCommand(logger),
		},
		Action: func(c *cli.Context) error {
			dpi, err := validateDPI(c.Int("dpi"))
			if err != nil {
				return err
			}

			// A missing tool is fatal before any window is shown; each one
			// is named in the error so the user can fix their install.
			tools, err := poppler.Discover(logger)
			if err != nil {
				return err
			}

			logger.WithFields(logrus.Fields{
				"version": Version,
				"dpi":     dpi,
			}).Info("Starting pdfsnip")

			return ui.Run(logger, tools, dpi)
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.WithError(err).Error("pdfsnip failed")
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func validateDPI(dpi int) (int, error) {
	if dpi < 36 || dpi > 600 {
		return 0, fmt.Errorf("dpi must be between 36 and 600, got %d", dpi)
	}
	return dpi, nil
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(c *cli.Context) error {
			fmt.Printf("pdfsnip version %s\n", Version)
			fmt.Printf("Commit: %s\n", Commit)
			fmt.Printf("Built: %s\n", BuildDate)
			return nil
		},
	}
}

// toolsCommand reports which poppler binaries were found and where.
func toolsCommand(logger *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:  "tools",
		Usage: "Report the poppler binaries pdfsnip depends on",
		Action: func(c *cli.Context) error {
			ts, discoverErr := poppler.Discover(logger)

			paths := ts.Paths()
			names := make([]string, 0, len(paths))
			for name := range paths {
				names = append(names, name)
			}
			sort.Strings(names)

			found := color.New(color.FgGreen)
			missing := color.New(color.FgRed)
			for _, name := range names {
				path := paths[name]
				if path == "" {
					missing.Printf("✗ %s: not found\n", name)
					continue
				}
				banner, err := ts.Version(c.Context, name)
				if err != nil || banner == "" {
					banner = path
				} else {
					banner = fmt.Sprintf("%s (%s)", banner, path)
				}
				found.Printf("✓ %s: %s\n", name, banner)
			}

			if discoverErr != nil {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// extractCommand runs the info → guard → export pipeline without the GUI.
func extractCommand(logger *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Extract a region of a page as an SVG without opening the GUI",
		ArgsUsage: "<input.pdf>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "page",
				Value: 1,
				Usage: "1-based page number",
			},
			&cli.StringFlag{
				Name:     "rect",
				Required: true,
				Usage:    "region as x,y,w,h (preview pixels, or points with --points)",
			},
			&cli.BoolFlag{
				Name:  "points",
				Usage: "treat --rect as PDF points instead of preview pixels",
			},
			&cli.StringFlag{
				Name:     "out",
				Required: true,
				Usage:    "output SVG path",
			},
			&cli.IntFlag{
				Name:  "dpi",
				Value: poppler.DefaultPreviewDPI,
				Usage: "preview resolution a pixel --rect refers to",
			},
		},
		Action: func(c *cli.Context) error {
			return runExtract(c, logger)
		},
	}
}

func runExtract(c *cli.Context, logger *logrus.Logger) error {
	docPath := c.Args().First()
	if docPath == "" {
		return fmt.Errorf("an input PDF path is required")
	}

	dpi, err := validateDPI(c.Int("dpi"))
	if err != nil {
		return err
	}

	rect, err := geom.ParseRect(c.String("rect"))
	if err != nil {
		return err
	}
	if rect.Degenerate() {
		return fmt.Errorf("the region %s is too small to export, select a larger region", rect)
	}

	tools, err := poppler.Discover(logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	sess, err := document.Open(ctx, logger, tools, docPath, dpi)
	if err != nil {
		return err
	}
	if err := sess.Goto(c.Int("page") - 1); err != nil {
		return err
	}

	region := geom.PointRect{X: rect.X, Y: rect.Y, W: rect.W, H: rect.H}
	if !c.Bool("points") {
		size, err := tools.PageSize(ctx, docPath, sess.PageNumber())
		if err != nil {
			return fmt.Errorf("cannot determine the size of page %d: %w", sess.PageNumber(), err)
		}
		if size.Zero() {
			return fmt.Errorf("page %d reports a zero size, a pixel rect cannot be converted", sess.PageNumber())
		}
		rasterW, rasterH := poppler.RasterDims(size, dpi)
		region, err = geom.ToPoints(rect, rasterW, rasterH, size.Width, size.Height)
		if err != nil {
			return err
		}
	}

	result, err := tools.ExportRegion(ctx, docPath, sess.PageNumber(), region, c.String("out"))
	if err != nil {
		return err
	}

	if result.Warnings != "" {
		logger.WithField("warnings", result.Warnings).Warn("Export finished with diagnostics")
		fmt.Fprintf(os.Stderr, "saved with warnings:\n%s\n", result.Warnings)
	}
	fmt.Printf("Saved %s (page %d, region %s pts) to %s\n", docPath, sess.PageNumber(), region, c.String("out"))
	return nil
}
