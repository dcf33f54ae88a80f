package main

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Layer is a named collection of vector features that share one coordinate
// reference system, identified by EPSG code. Every operation that changes
// coordinates returns a layer stamped with the resulting EPSG code.
type Layer struct {
	Name     string
	EPSG     int
	Features []*geojson.Feature
}

// LayerStats summarizes the size of a layer for before/after reporting.
type LayerStats struct {
	Features    int     `json:"features"`
	Vertices    int     `json:"vertices"`
	MemoryBytes int     `json:"memoryBytes"`
	AvgVertices float64 `json:"avgVertices"`
}

// Geographic reports whether the layer's CRS uses degree coordinates.
// Metric operations (buffer distances, simplify tolerances in meters)
// refuse geographic layers.
func (l *Layer) Geographic() bool {
	switch l.EPSG {
	case 4326, 4258, 4269, 4277:
		return true
	}
	return false
}

// Clone returns a deep copy of the layer. Simplifiers and projections
// mutate geometry in place, so operations clone before transforming.
func (l *Layer) Clone() *Layer {
	out := &Layer{
		Name:     l.Name,
		EPSG:     l.EPSG,
		Features: make([]*geojson.Feature, 0, len(l.Features)),
	}
	for _, f := range l.Features {
		var g orb.Geometry
		if f.Geometry != nil {
			g = orb.Clone(f.Geometry)
		}
		nf := geojson.NewFeature(g)
		nf.ID = f.ID
		nf.Properties = f.Properties.Clone()
		out.Features = append(out.Features, nf)
	}
	return out
}

// Bound returns the union bounding box of all features.
func (l *Layer) Bound() orb.Bound {
	var bound orb.Bound
	set := false
	for _, f := range l.Features {
		if f.Geometry == nil {
			continue
		}
		if !set {
			bound = f.Geometry.Bound()
			set = true
		} else {
			bound = bound.Union(f.Geometry.Bound())
		}
	}
	return bound
}

// Stats counts vertices and estimates the coordinate memory footprint.
// The byte figure is the coordinate payload (two float64 per vertex)
// plus a slice header per linear sequence, not Go heap truth.
func (l *Layer) Stats() LayerStats {
	s := LayerStats{Features: len(l.Features)}
	for _, f := range l.Features {
		v, seqs := countVertices(f.Geometry)
		s.Vertices += v
		s.MemoryBytes += v*16 + seqs*24
	}
	if s.Features > 0 {
		s.AvgVertices = float64(s.Vertices) / float64(s.Features)
	}
	return s
}

// countVertices returns the vertex count and the number of linear
// sequences (rings/linestrings) in a geometry.
func countVertices(g orb.Geometry) (vertices, sequences int) {
	switch g := g.(type) {
	case nil:
		return 0, 0
	case orb.Point:
		return 1, 0
	case orb.MultiPoint:
		return len(g), 1
	case orb.LineString:
		return len(g), 1
	case orb.MultiLineString:
		for _, ls := range g {
			vertices += len(ls)
		}
		return vertices, len(g)
	case orb.Ring:
		return len(g), 1
	case orb.Polygon:
		for _, r := range g {
			vertices += len(r)
		}
		return vertices, len(g)
	case orb.MultiPolygon:
		for _, p := range g {
			v, s := countVertices(p)
			vertices += v
			sequences += s
		}
		return vertices, sequences
	case orb.Collection:
		for _, sub := range g {
			v, s := countVertices(sub)
			vertices += v
			sequences += s
		}
		return vertices, sequences
	case orb.Bound:
		return 2, 1
	}
	return 0, 0
}

// Reduction reports the percentage drop in vertices between two layers.
func Reduction(before, after *Layer) float64 {
	b := before.Stats().Vertices
	if b == 0 {
		return 0
	}
	a := after.Stats().Vertices
	return 100 * float64(b-a) / float64(b)
}
