package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/ironsheep/content-box-mcp/internal/config"
	"github.com/ironsheep/content-box-mcp/internal/contentbox"
	"github.com/ironsheep/content-box-mcp/internal/geometry"
	"github.com/ironsheep/content-box-mcp/internal/imaging"
	"github.com/ironsheep/content-box-mcp/internal/logging"
	"github.com/ironsheep/content-box-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const name = "content-box-mcp"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "%s %s\n", name, Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return 0
		case "--help", "-h", "help":
			usage(stdout)
			return 0
		}
	}

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return 1
	}

	// stdout is reserved for the MCP protocol and for detect results.
	log := logging.NewLoggerTo(stderr, name, cfg.Level())

	if len(args) > 0 && args[0] == "detect" {
		return detect(ctx, cfg, log, args[1:], stdout, stderr)
	}
	if len(args) > 0 && args[0] != "serve" {
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}

	log.Debug("starting", "version", Version, "built", BuildTime, "commit", GitCommit)
	srv := server.New(cfg, log)
	if err := srv.Run(ctx); err != nil {
		log.Error("server error", "error", err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "%s - MCP server finding the content box of scanned pages\n", name)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s [serve]                 Run the MCP server over stdin/stdout\n", name)
	fmt.Fprintf(w, "  %s detect [flags] <image>  Print the content box of one page as JSON\n", name)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Detect flags:")
	fmt.Fprintln(w, "  --dpi N          Scan resolution (default CONTENT_BOX_DEFAULT_DPI)")
	fmt.Fprintln(w, "  --threshold N    Binarization level, 0 estimates it (default 0)")
	fmt.Fprintln(w, "  --rotate DEG     Clockwise rotation applied before the search")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables (also read from ./.env):")
	fmt.Fprintln(w, "  CONTENT_BOX_LOG_LEVEL=info       debug, info, warn or error")
	fmt.Fprintln(w, "  CONTENT_BOX_DEFAULT_DPI=300      Density of scans without one")
	fmt.Fprintln(w, "  CONTENT_BOX_TARGET_DPI=150       Density the search works at")
	fmt.Fprintln(w, "  CONTENT_BOX_DEBUG_DIR=           Write diagnostic images here")
	fmt.Fprintln(w, "  CONTENT_BOX_TIMEOUT_MS=60000     Deadline of one search")
}

// detectOutput is the JSON printed by the detect command.
type detectOutput struct {
	Path      string `json:"path"`
	Threshold uint8  `json:"threshold"`
	contentbox.Result
}

// debugPrefix names diagnostic files after the scanned page.
func debugPrefix(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_"
}

func detect(ctx context.Context, cfg *config.Config, log *logging.Logger, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dpi := fs.Float64("dpi", cfg.DefaultDPI, "scan resolution in dots per inch")
	threshold := fs.Int("threshold", 0, "binarization level (1-255); 0 estimates it with Otsu's method")
	rotate := fs.Float64("rotate", 0, "clockwise rotation in degrees")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 || *dpi <= 0 || *threshold < 0 || *threshold > 255 {
		fmt.Fprintf(stderr, "usage: %s detect [--dpi N] [--threshold N] [--rotate DEG] <image>\n", name)
		return 2
	}
	path := fs.Arg(0)

	img, err := imaging.NewImageCache().Load(path)
	if err != nil {
		log.Error("cannot read image", "path", path, "error", err)
		return 1
	}

	level := uint8(*threshold)
	if level == 0 {
		level = imaging.OtsuThreshold(img)
		log.Debug("estimated threshold", "level", level)
	}

	opts := contentbox.DefaultOptions()
	opts.TargetDPI = cfg.TargetDPI
	finderOpts := []contentbox.Option{
		contentbox.WithOptions(opts),
		contentbox.WithLogger(log.With("contentbox")),
	}
	if cfg.DebugDir != "" {
		sink, err := contentbox.NewDirSink(cfg.DebugDir, debugPrefix(path), log)
		if err != nil {
			log.Error("cannot use debug directory", "error", err)
			return 1
		}
		finderOpts = append(finderOpts, contentbox.WithDebugSink(sink))
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	res, err := contentbox.New(finderOpts...).Find(ctx, contentbox.Input{
		Image:     img,
		Transform: geometry.NewImageTransform(img.Bounds(), geometry.DPI{X: *dpi, Y: *dpi}).Rotated(*rotate),
		Threshold: level,
	})
	if errors.Is(err, contentbox.ErrCancelled) {
		log.Warn("search cancelled", "path", path, "error", err)
		return 130
	}
	if err != nil {
		log.Error("search failed", "path", path, "error", err)
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(detectOutput{Path: path, Threshold: level, Result: res}); err != nil {
		log.Error("failed to write result", "error", err)
		return 1
	}
	return 0
}
