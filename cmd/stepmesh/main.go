// Command stepmesh converts an ISO-10303-21 STEP exchange file's
// manifold solid breps into a triangulated binary STL mesh.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/formlabs-oss/stepmesh/internal/obs"
	"github.com/formlabs-oss/stepmesh/pipeline"
	"github.com/formlabs-oss/stepmesh/step"
)

func main() {
	var (
		workers = flag.Int("workers", 0, "worker pool size (0: GOMAXPROCS)")
		check   = flag.Bool("check", false, "validate CDT invariants between every insertion step")
		verbose = flag.Bool("v", false, "log at debug level")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] input.step output.stl\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		obs.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	inputPath, outputPath := flag.Arg(0), flag.Arg(1)

	if err := run(inputPath, outputPath, *workers, *check); err != nil {
		log.Fatalf("stepmesh: %v", err)
	}
}

func run(inputPath, outputPath string, workers int, check bool) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	file, err := step.Decode(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", inputPath, err)
	}

	opts := []pipeline.Option{pipeline.WithWorkers(workers)}
	if check {
		opts = append(opts, pipeline.WithCheck(true))
	}

	m, stats, err := pipeline.ConvertAll(context.Background(), file, opts...)
	if err != nil {
		return fmt.Errorf("converting %s: %w", inputPath, err)
	}
	obs.Logger().Info("converted",
		"shells", stats.NumShells, "faces", stats.NumFaces,
		"errors", stats.NumErrors, "panics", stats.NumPanics,
		"vertices", len(m.Verts), "triangles", len(m.Triangles))

	if err := m.SaveSTL(outputPath); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return nil
}
