// Command solemesh extracts a geometric fingerprint from outsole scans.
//
// For each input scan it strips the calibration border, isolates the dot
// pattern, and writes a JSON artifact holding the detected regions, their
// centroids, and a Delaunay mesh over the centroids. Scans in a batch are
// independent; a failed scan is reported and skipped, never aborting the
// rest.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/solemesh/solemesh/internal/config"
	"github.com/solemesh/solemesh/internal/imaging"
	"github.com/solemesh/solemesh/internal/mask"
	"github.com/solemesh/solemesh/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// artifact is the JSON document written per scan.
type artifact struct {
	Source string            `json:"source"`
	Info   *imaging.ScanInfo `json:"info,omitempty"`
	Halves []halfArtifact    `json:"halves"`
	Params map[string]any    `json:"params"`
}

type halfArtifact struct {
	pipeline.HalfResult
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func main() {
	configPath := flag.String("config", "", "YAML parameter file (defaults are used when empty)")
	outDir := flag.String("out", "", "Directory for JSON artifacts (default: next to each scan)")
	debugDir := flag.String("debug-dir", "", "Write per-stage PNG dumps under this directory")
	rotate := flag.Int("rotate", -1, "Orientation correction in CCW quarter turns (overrides config)")
	jobs := flag.Int("jobs", runtime.NumCPU(), "Maximum scans processed concurrently")
	split := flag.Bool("split", true, "Split each scan into left/right impressions (overrides config)")
	invert := flag.Bool("invert", false, "Invert intensity for dark-on-light scans (overrides config)")
	verbose := flag.Bool("v", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("solemesh %s (%s)\n", Version, GitCommit)
		return
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: solemesh [flags] scan.tif [scan2.tif ...]")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	applyFlagOverrides(cfg, rotate, split, invert, outDir, debugDir)

	params, err := cfg.Params()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid parameters")
	}

	cache := imaging.NewImageCache()
	var failures atomic.Int64

	var g errgroup.Group
	g.SetLimit(max(1, *jobs))
	for _, path := range flag.Args() {
		path := path
		g.Go(func() error {
			if err := processScan(log, cache, cfg, params, path); err != nil {
				failures.Add(1)
				log.Error().Err(err).Str("scan", path).Msg("scan failed")
			}
			cache.Evict(path)
			return nil // a failed scan never aborts the batch
		})
	}
	_ = g.Wait()
	cache.Clear()

	if n := failures.Load(); n > 0 {
		log.Warn().Int64("failed", n).Int("total", flag.NArg()).Msg("batch finished with failures")
		if int(n) == flag.NArg() {
			os.Exit(1)
		}
		return
	}
	log.Info().Int("total", flag.NArg()).Msg("batch finished")
}

// processScan runs the whole pipeline for one file and writes its artifact.
func processScan(log zerolog.Logger, cache *imaging.ImageCache, cfg *config.Config, params pipeline.Params, path string) error {
	raw, err := cache.Load(path)
	if err != nil {
		return err
	}
	info, err := imaging.LoadScanInfo(cache, path)
	if err != nil {
		return err
	}
	log.Debug().Str("scan", path).
		Int("width", info.Width).Int("height", info.Height).
		Str("format", info.Format).Msg("loaded")

	oriented := imaging.CorrectOrientation(raw, cfg.Input.QuarterTurns)

	var dump pipeline.DumpFunc
	if cfg.Output.DebugDir != "" {
		dump = debugDumper(log, cfg.Output.DebugDir, scanBase(path))
	}

	result, runErr := pipeline.RunWithDump(oriented, params, dump)
	if result == nil {
		return runErr
	}

	doc := artifact{
		Source: path,
		Info:   info,
		Params: map[string]any{
			"kernelRadius": params.KernelRadius,
			"trimMargin":   params.TrimMargin,
			"speckSize":    params.SpeckSize,
			"minFillRatio": params.Thresholds.MinFillRatio,
			"maxExtent":    params.Thresholds.MaxExtent,
			"connectivity": int(params.Connectivity),
		},
	}
	for _, h := range result.Halves {
		ha := halfArtifact{HalfResult: h, Status: "ok"}
		if h.Err != nil {
			ha.Status = "failed"
			ha.Reason = h.Err.Error()
			event := log.Warn()
			if errors.Is(h.Err, mask.ErrEmptyRegion) {
				// Routine for single-impression scans.
				event = log.Debug()
			}
			event.Str("scan", path).Str("side", h.Side).Err(h.Err).Msg("half failed")
		} else {
			log.Info().Str("scan", path).Str("side", h.Side).
				Int("regions", len(h.Table.Regions)).
				Int("features", len(h.Points)).
				Int("triangles", len(h.Mesh.Triangles)).
				Float64("meanEdge", h.EdgeStats.Mean).
				Msg("fingerprint extracted")
		}
		doc.Halves = append(doc.Halves, ha)
	}

	if err := writeArtifact(cfg.Output.Dir, path, &doc); err != nil {
		return err
	}
	return runErr
}

// writeArtifact stores the JSON document for one scan.
func writeArtifact(outDir, scanPath string, doc *artifact) error {
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(scanPath)
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	out := filepath.Join(dir, scanBase(scanPath)+".mesh.json")

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode artifact: %w", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}

// debugDumper writes per-stage PNGs under debugDir/<scan>/.
func debugDumper(log zerolog.Logger, debugDir, base string) pipeline.DumpFunc {
	dir := filepath.Join(debugDir, base)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn().Err(err).Msg("debug dir unavailable, dumps disabled")
		return nil
	}
	return func(stage, side string, img image.Image) {
		name := filepath.Join(dir, fmt.Sprintf("%s-%s.png", stage, side))
		if err := imgio.Save(name, img, imgio.PNGEncoder()); err != nil {
			log.Warn().Err(err).Str("dump", name).Msg("debug dump failed")
		}
	}
}

func applyFlagOverrides(cfg *config.Config, rotate *int, split, invert *bool, outDir, debugDir *string) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rotate":
			cfg.Input.QuarterTurns = *rotate
		case "split":
			cfg.Pipeline.SplitHalves = *split
		case "invert":
			cfg.Pipeline.InvertInput = *invert
		case "out":
			cfg.Output.Dir = *outDir
		case "debug-dir":
			cfg.Output.DebugDir = *debugDir
		}
	})
}

func scanBase(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
