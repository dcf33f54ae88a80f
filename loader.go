package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb/geojson"
)

// LoadLayer reads a single GeoJSON file into a layer. The EPSG code is the
// caller's claim about the file's CRS; GeoJSON itself is WGS84 by spec, so
// pass 4326 unless the file is known to hold projected coordinates.
func LoadLayer(path string, epsg int) (*Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Layer{Name: name, EPSG: epsg, Features: fc.Features}, nil
}

// LoadLayerDir loads all *.geojson files in a directory into one layer.
// Files that fail to read or parse are logged and skipped; an error is
// returned only when nothing loads at all.
func LoadLayerDir(dir string, epsg int) (*Layer, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.geojson"))
	if err != nil {
		return nil, err
	}

	log.Printf("Loading features from %d GeoJSON files...\n", len(files))

	layer := &Layer{Name: filepath.Base(dir), EPSG: epsg}
	loaded := 0
	for _, file := range files {
		part, err := LoadLayer(file, epsg)
		if err != nil {
			log.Printf("⚠️  Skipping %s: %v\n", filepath.Base(file), err)
			continue
		}
		layer.Features = append(layer.Features, part.Features...)
		loaded++
		log.Printf("   ✅ Loaded %d features from %s\n", len(part.Features), filepath.Base(file))
	}

	if loaded == 0 && len(files) > 0 {
		return nil, fmt.Errorf("no loadable GeoJSON files in %s", dir)
	}

	log.Printf("Total features loaded: %d\n", len(layer.Features))
	return layer, nil
}

// SaveLayer writes the layer back out as a GeoJSON feature collection.
func SaveLayer(layer *Layer, path string) error {
	fc := geojson.NewFeatureCollection()
	fc.Features = layer.Features

	data, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", layer.Name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
