package main

import (
	"fmt"
	"log"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/schollz/progressbar/v3"
)

// Dissolve merges overlapping or adjacent polygonal features into single
// features. Candidate pairs come from an R-tree bounding-box prefilter,
// pairs whose geometries actually touch are joined with union-find, and
// each connected group is merged with a polygon clipper. Per-feature
// attributes are discarded; each output feature keeps only the count of
// inputs merged into it.
func Dissolve(layer *Layer) (*Layer, error) {
	polys := make([]orb.MultiPolygon, len(layer.Features))
	areal := 0
	for i, f := range layer.Features {
		polys[i] = polygonsOf(f.Geometry)
		if len(polys[i]) > 0 {
			areal++
		}
	}
	if areal == 0 {
		return nil, fmt.Errorf("dissolve requires polygonal features, layer %q has none", layer.Name)
	}
	if skipped := len(layer.Features) - areal; skipped > 0 {
		log.Printf("⚠️  Skipping %d non-polygonal features in %q\n", skipped, layer.Name)
	}

	// Bounding boxes only nominate candidate pairs; a pair joins a group
	// when its geometries actually overlap or share boundary, so disjoint
	// features with overlapping boxes stay separate.
	parent := make([]int, len(layer.Features))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	index := NewSpatialIndex(layer)
	bar := progressbar.Default(int64(areal), "dissolving")
	for i, f := range layer.Features {
		if len(polys[i]) == 0 {
			continue
		}
		for _, e := range index.Query(f.Geometry.Bound()) {
			if e.Index == i || len(polys[e.Index]) == 0 {
				continue
			}
			ri, rj := find(i), find(e.Index)
			if ri == rj {
				continue
			}
			if !touches(polys[i], polys[e.Index]) {
				continue
			}
			parent[rj] = ri
		}
		bar.Add(1)
	}

	groups := make(map[int][]int)
	var order []int
	for i := range layer.Features {
		if len(polys[i]) == 0 {
			continue
		}
		root := find(i)
		if _, seen := groups[root]; !seen {
			order = append(order, root)
		}
		groups[root] = append(groups[root], i)
	}

	out := &Layer{Name: layer.Name, EPSG: layer.EPSG}
	for _, root := range order {
		members := groups[root]
		merged := polys[members[0]]
		for _, m := range members[1:] {
			merged = clipOp(polyclip.UNION, merged, polys[m])
		}
		g := compactGeometry(merged)
		if g == nil {
			continue
		}
		f := geojson.NewFeature(g)
		f.Properties["count"] = len(members)
		out.Features = append(out.Features, f)
	}

	log.Printf("Dissolved %q: %d -> %d features (%d -> %d vertices)\n",
		layer.Name, len(layer.Features), len(out.Features),
		layer.Stats().Vertices, out.Stats().Vertices)
	return out, nil
}
