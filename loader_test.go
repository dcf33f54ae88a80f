package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLayer(t *testing.T) {
	layer, err := LoadLayer(filepath.Join("testdata", "regions.geojson"), 4326)
	require.NoError(t, err)

	assert.Equal(t, "regions", layer.Name)
	assert.Equal(t, 4326, layer.EPSG)
	require.Len(t, layer.Features, 3)
	assert.Equal(t, "west", layer.Features[0].Properties["name"])
	_, ok := layer.Features[0].Geometry.(orb.Polygon)
	assert.True(t, ok)
}

func TestLoadLayerErrors(t *testing.T) {
	_, err := LoadLayer(filepath.Join("testdata", "missing.geojson"), 4326)
	assert.Error(t, err)

	_, err = LoadLayer(filepath.Join("testdata", "broken.geojson"), 4326)
	assert.Error(t, err)
}

func TestLoadLayerDirSkipsBrokenFiles(t *testing.T) {
	layer, err := LoadLayerDir("testdata", 4326)
	require.NoError(t, err)
	assert.Len(t, layer.Features, 3) // broken.geojson is skipped
}

func TestLoadLayerDirAllBroken(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.geojson"), []byte("nope"), 0o644))

	_, err := LoadLayerDir(dir, 4326)
	assert.Error(t, err)
}

func TestSaveLayerRoundTrip(t *testing.T) {
	layer := layerOf(4326, square(0, 0, 1))
	layer.Features[0].Properties["name"] = "roundtrip"

	path := filepath.Join(t.TempDir(), "out.geojson")
	require.NoError(t, SaveLayer(layer, path))

	loaded, err := LoadLayer(path, 4326)
	require.NoError(t, err)
	require.Len(t, loaded.Features, 1)
	assert.Equal(t, "roundtrip", loaded.Features[0].Properties["name"])
	assert.Equal(t, layer.Features[0].Geometry, loaded.Features[0].Geometry)
}
