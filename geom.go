package main

import (
	polyclip "github.com/akavel/polyclip-go"
	"github.com/paulmach/orb"
)

// toClip converts an orb polygon into polyclip contours, closing any
// open rings on the way in.
func toClip(p orb.Polygon) polyclip.Polygon {
	var poly polyclip.Polygon
	for _, ring := range p {
		if len(ring) == 0 {
			continue
		}
		if !ring.Closed() {
			ring = append(ring, ring[0])
		}
		var ct polyclip.Contour
		for _, pt := range ring {
			ct = append(ct, polyclip.Point{X: pt[0], Y: pt[1]})
		}
		poly = append(poly, ct)
	}
	return poly
}

// fromClip reassembles polyclip output contours into a multipolygon.
// polyclip returns a flat contour soup; outer rings are the contours not
// contained in any other, and each hole is attached to the smallest
// contour that contains it.
func fromClip(poly polyclip.Polygon) orb.MultiPolygon {
	conts := realContours(poly)
	if len(conts) == 0 {
		return nil
	}
	parent := contourParents(conts)

	// depth parity: even depth = outer ring, odd depth = hole of its parent
	var mp orb.MultiPolygon
	outerIdx := make(map[int]int, len(conts))
	for i := range conts {
		if depthOf(parent, i)%2 == 0 {
			outerIdx[i] = len(mp)
			mp = append(mp, orb.Polygon{toRing(conts[i])})
		}
	}
	for i := range conts {
		if depthOf(parent, i)%2 == 1 {
			if pi, ok := outerIdx[parent[i]]; ok {
				mp[pi] = append(mp[pi], toRing(conts[i]))
			}
		}
	}
	return mp
}

// realContours filters out the degenerate contours a clipper can emit.
func realContours(poly polyclip.Polygon) []polyclip.Contour {
	conts := make([]polyclip.Contour, 0, len(poly))
	for _, ct := range poly {
		if len(ct) >= 3 {
			conts = append(conts, ct)
		}
	}
	return conts
}

// contourParents computes, for each contour, the index of the smallest
// contour containing it, or -1 for top-level outers.
func contourParents(conts []polyclip.Contour) []int {
	parent := make([]int, len(conts))
	for i := range conts {
		parent[i] = -1
		bbI := conts[i].BoundingBox()
		for j := range conts {
			if i == j {
				continue
			}
			bbJ := conts[j].BoundingBox()
			if bbJ.Min.X > bbI.Min.X || bbJ.Max.X < bbI.Max.X ||
				bbJ.Min.Y > bbI.Min.Y || bbJ.Max.Y < bbI.Max.Y {
				continue
			}
			if !conts[j].Contains(conts[i][0]) {
				continue
			}
			if parent[i] == -1 || contourArea(conts[j]) < contourArea(conts[parent[i]]) {
				parent[i] = j
			}
		}
	}
	return parent
}

// outerCount returns the number of top-level outer rings in a contour set.
func outerCount(poly polyclip.Polygon) int {
	conts := realContours(poly)
	parent := contourParents(conts)
	count := 0
	for i := range conts {
		if depthOf(parent, i)%2 == 0 {
			count++
		}
	}
	return count
}

// touches reports whether two multipolygons overlap, share boundary, or
// contain one another: merging connected pieces leaves their union with
// fewer outer rings than the two operands have separately.
func touches(a, b orb.MultiPolygon) bool {
	var ca, cb polyclip.Polygon
	for _, p := range a {
		ca = append(ca, toClip(p)...)
	}
	for _, p := range b {
		cb = append(cb, toClip(p)...)
	}
	if len(ca) == 0 || len(cb) == 0 {
		return false
	}
	union := ca.Construct(polyclip.UNION, cb)
	return outerCount(union) < outerCount(ca)+outerCount(cb)
}

func depthOf(parent []int, i int) int {
	depth := 0
	for parent[i] != -1 {
		depth++
		i = parent[i]
	}
	return depth
}

func toRing(ct polyclip.Contour) orb.Ring {
	ring := make(orb.Ring, 0, len(ct)+1)
	for _, pt := range ct {
		ring = append(ring, orb.Point{pt.X, pt.Y})
	}
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}

// contourArea returns the absolute shoelace area of a contour.
func contourArea(ct polyclip.Contour) float64 {
	area := 0.0
	n := len(ct)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += ct[i].X*ct[j].Y - ct[j].X*ct[i].Y
	}
	if area < 0 {
		area = -area
	}
	return area / 2
}

// clipOp applies a boolean operation between two multipolygons.
func clipOp(op polyclip.Op, a, b orb.MultiPolygon) orb.MultiPolygon {
	var ca, cb polyclip.Polygon
	for _, p := range a {
		ca = append(ca, toClip(p)...)
	}
	for _, p := range b {
		cb = append(cb, toClip(p)...)
	}
	if len(ca) == 0 {
		if op == polyclip.UNION {
			return fromClip(cb)
		}
		return nil
	}
	if len(cb) == 0 {
		return fromClip(ca)
	}
	return fromClip(ca.Construct(op, cb))
}

// polygonsOf extracts the polygonal parts of a geometry as a multipolygon.
// Non-areal geometries yield nil.
func polygonsOf(g orb.Geometry) orb.MultiPolygon {
	switch g := g.(type) {
	case orb.Polygon:
		return orb.MultiPolygon{g}
	case orb.MultiPolygon:
		return g
	case orb.Ring:
		return orb.MultiPolygon{orb.Polygon{g}}
	case orb.Collection:
		var mp orb.MultiPolygon
		for _, sub := range g {
			mp = append(mp, polygonsOf(sub)...)
		}
		return mp
	}
	return nil
}

// compactGeometry collapses a single-polygon multipolygon back down so
// saved GeoJSON keeps the simplest type that fits.
func compactGeometry(mp orb.MultiPolygon) orb.Geometry {
	switch len(mp) {
	case 0:
		return nil
	case 1:
		return mp[0]
	}
	return mp
}
