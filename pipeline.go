package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// RunPipeline replays the full demonstration over three datasets expected
// in dataDir: boundary.geojson (a regional boundary), regions.geojson
// (adjacent administrative regions) and noise.geojson (a dense noise-level
// polygon layer). Missing datasets are logged and skipped. Plots and
// simplified outputs land in outDir.
func RunPipeline(dataDir, outDir string, epsg int, bufferDist float64) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	type stage struct {
		file string
		run  func(*Layer) error
	}
	stages := []stage{
		{"boundary.geojson", func(l *Layer) error { return boundaryStage(l, outDir, epsg) }},
		{"regions.geojson", func(l *Layer) error { return regionsStage(l, outDir, epsg) }},
		{"noise.geojson", func(l *Layer) error { return noiseStage(l, outDir, epsg, bufferDist) }},
	}

	ran := 0
	for _, s := range stages {
		path := filepath.Join(dataDir, s.file)
		layer, err := LoadLayer(path, 4326)
		if err != nil {
			log.Printf("⚠️  Skipping stage for %s: %v\n", s.file, err)
			continue
		}
		log.Println("========================================")
		log.Printf("📍 Dataset: %s (%d features, %d vertices)\n",
			s.file, layer.Stats().Features, layer.Stats().Vertices)
		if err := s.run(layer); err != nil {
			return fmt.Errorf("stage %s: %w", s.file, err)
		}
		ran++
	}

	if ran == 0 {
		return fmt.Errorf("no datasets found in %s", dataDir)
	}
	log.Println("========================================")
	log.Printf("✅ Pipeline complete: %d of %d stages ran\n", ran, len(stages))
	return nil
}

// boundaryStage compares Douglas-Peucker against Visvalingam-Whyatt on a
// single regional boundary, at the auto-estimated tolerance and a coarse
// one, and reports the memory footprint of each result.
func boundaryStage(boundary *Layer, outDir string, epsg int) error {
	projected, err := Reproject(boundary, epsg)
	if err != nil {
		return err
	}

	tolerance := EstimateTolerance(projected)
	dp, err := SimplifyDouglasPeucker(projected, tolerance)
	if err != nil {
		return err
	}
	dpCoarse, err := SimplifyDouglasPeucker(projected, tolerance*10)
	if err != nil {
		return err
	}
	vw, err := SimplifyKeepFraction(projected, 0.1)
	if err != nil {
		return err
	}

	reportFootprint("original", projected)
	reportFootprint("douglas-peucker", dp)
	reportFootprint("douglas-peucker x10", dpCoarse)
	reportFootprint("visvalingam keep 10%", vw)

	if err := SaveLayer(dp, filepath.Join(outDir, "boundary_simplified.geojson")); err != nil {
		return err
	}
	return RenderComparison(filepath.Join(outDir, "boundary_comparison.png"),
		projected, dp, dpCoarse, vw)
}

// regionsStage dissolves adjacent administrative regions into one outline
// and simplifies the result.
func regionsStage(regions *Layer, outDir string, epsg int) error {
	projected, err := Reproject(regions, epsg)
	if err != nil {
		return err
	}

	dissolved, err := Dissolve(projected)
	if err != nil {
		return err
	}
	simplified, err := SimplifyDouglasPeucker(dissolved, 0)
	if err != nil {
		return err
	}

	reportFootprint("original", projected)
	reportFootprint("dissolved", dissolved)
	reportFootprint("dissolved+simplified", simplified)

	if err := SaveLayer(simplified, filepath.Join(outDir, "regions_dissolved.geojson")); err != nil {
		return err
	}
	return RenderComparison(filepath.Join(outDir, "regions_comparison.png"),
		projected, dissolved, simplified)
}

// noiseStage shrinks a dense raster-like noise polygon layer with the
// buffer-out / dissolve / simplify / buffer-in sequence, which removes
// slivers between adjacent bands without opening gaps.
func noiseStage(noise *Layer, outDir string, epsg int, dist float64) error {
	projected, err := Reproject(noise, epsg)
	if err != nil {
		return err
	}

	grown, err := BufferLayer(projected, dist, DefaultBufferSegments)
	if err != nil {
		return err
	}
	dissolved, err := Dissolve(grown)
	if err != nil {
		return err
	}
	simplified, err := SimplifyDouglasPeucker(dissolved, dist/2)
	if err != nil {
		return err
	}
	shrunk, err := BufferLayer(simplified, -dist, DefaultBufferSegments)
	if err != nil {
		return err
	}

	reportFootprint("original", projected)
	reportFootprint("buffered+dissolved", dissolved)
	reportFootprint("final", shrunk)

	if err := SaveLayer(shrunk, filepath.Join(outDir, "noise_reduced.geojson")); err != nil {
		return err
	}
	return RenderComparison(filepath.Join(outDir, "noise_comparison.png"),
		projected, dissolved, shrunk)
}

func reportFootprint(label string, layer *Layer) {
	s := layer.Stats()
	log.Printf("   %-22s %6d features %8d vertices %10.1f KiB\n",
		label, s.Features, s.Vertices, float64(s.MemoryBytes)/1024)
}
