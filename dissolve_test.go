package main

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDissolveMergesOverlapping(t *testing.T) {
	layer := layerOf(3857, square(0, 0, 2), square(1, 1, 2))
	layer.Features[0].Properties["name"] = "a"
	layer.Features[1].Properties["name"] = "b"

	out, err := Dissolve(layer)
	require.NoError(t, err)
	require.Len(t, out.Features, 1)

	assert.InDelta(t, 7.0, multiArea(out.Features[0].Geometry), 1e-6)
	assert.Equal(t, 2, out.Features[0].Properties["count"])
	assert.NotContains(t, out.Features[0].Properties, "name")
}

func TestDissolveMergesAdjacent(t *testing.T) {
	layer := layerOf(3857, square(0, 0, 1), square(1, 0, 1))

	out, err := Dissolve(layer)
	require.NoError(t, err)
	require.Len(t, out.Features, 1)
	assert.InDelta(t, 2.0, multiArea(out.Features[0].Geometry), 1e-6)
}

func TestDissolveKeepsDisjointWithOverlappingBoxes(t *testing.T) {
	// two disjoint triangles straddling a diagonal: bounding boxes
	// overlap heavily but the geometries never touch
	lower := orb.Polygon{orb.Ring{{0, 0}, {4, 0}, {0, 4}, {0, 0}}}
	corner := orb.Polygon{orb.Ring{{4, 1}, {4, 4}, {1, 4}, {4, 1}}}
	layer := layerOf(3857, lower, corner)

	out, err := Dissolve(layer)
	require.NoError(t, err)
	require.Len(t, out.Features, 2)
	assert.Equal(t, 1, out.Features[0].Properties["count"])
	assert.Equal(t, 1, out.Features[1].Properties["count"])
}

func TestDissolveKeepsDisjointApart(t *testing.T) {
	layer := layerOf(3857, square(0, 0, 1), square(10, 10, 1))

	out, err := Dissolve(layer)
	require.NoError(t, err)
	assert.Len(t, out.Features, 2)
}

func TestDissolveSwallowsContained(t *testing.T) {
	layer := layerOf(3857, square(0, 0, 10), square(2, 2, 1))

	out, err := Dissolve(layer)
	require.NoError(t, err)
	require.Len(t, out.Features, 1)
	assert.InDelta(t, 100.0, multiArea(out.Features[0].Geometry), 1e-6)
	assert.Equal(t, 2, out.Features[0].Properties["count"])
}

func TestDissolveChain(t *testing.T) {
	// a overlaps b, b overlaps c, but a and c are disjoint: one component
	layer := layerOf(3857, square(0, 0, 2), square(1.5, 0, 2), square(3, 0, 2))

	out, err := Dissolve(layer)
	require.NoError(t, err)
	require.Len(t, out.Features, 1)
	assert.Equal(t, 3, out.Features[0].Properties["count"])
}

func TestDissolveSkipsNonPolygonal(t *testing.T) {
	layer := layerOf(3857, square(0, 0, 1), orb.Point{50, 50})

	out, err := Dissolve(layer)
	require.NoError(t, err)
	assert.Len(t, out.Features, 1)
}

func TestDissolveRequiresPolygons(t *testing.T) {
	layer := layerOf(3857, orb.Point{0, 0}, orb.LineString{{0, 0}, {1, 1}})

	_, err := Dissolve(layer)
	assert.Error(t, err)
}

func TestDissolveCRSCarriesOver(t *testing.T) {
	layer := layerOf(28992, square(0, 0, 1))

	out, err := Dissolve(layer)
	require.NoError(t, err)
	assert.Equal(t, 28992, out.EPSG)
}
