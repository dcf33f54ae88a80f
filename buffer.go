package main

import (
	"fmt"
	"log"
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/paulmach/orb"
	"github.com/schollz/progressbar/v3"
)

// DefaultBufferSegments is the number of arc points per quarter circle
// used to approximate round joins, following the GDAL quadSegs convention.
const DefaultBufferSegments = 8

// BufferLayer offsets every polygonal feature's boundary by distance (in
// map units, positive grows, negative shrinks). A dilated polygon is the
// union of the polygon with a disk swept along its boundary; an eroded one
// is the difference. Features eroded away entirely are removed.
func BufferLayer(layer *Layer, distance float64, segments int) (*Layer, error) {
	if layer.Geographic() {
		return nil, fmt.Errorf("layer %q is in a geographic CRS (EPSG:%d); reproject to a projected CRS before buffering",
			layer.Name, layer.EPSG)
	}
	if segments <= 0 {
		segments = DefaultBufferSegments
	}
	if distance == 0 {
		return layer.Clone(), nil
	}

	out := layer.Clone()
	bar := progressbar.Default(int64(len(out.Features)), "buffering")
	count := 0
	for _, f := range out.Features {
		if f.Geometry == nil {
			// nothing to offset, keep the feature as loaded
			out.Features[count] = f
			count++
			bar.Add(1)
			continue
		}
		mp := polygonsOf(f.Geometry)
		if len(mp) == 0 {
			return nil, fmt.Errorf("buffering supports polygonal features only, got %s in %q",
				f.Geometry.GeoJSONType(), layer.Name)
		}

		buffered := bufferMulti(mp, distance, segments)
		bar.Add(1)

		g := compactGeometry(buffered)
		if g == nil {
			continue // eroded to nothing
		}
		f.Geometry = g
		out.Features[count] = f
		count++
	}
	out.Features = out.Features[:count]

	log.Printf("Buffered %q by %g: %d -> %d features, %d -> %d vertices\n",
		layer.Name, distance, len(layer.Features), len(out.Features),
		layer.Stats().Vertices, out.Stats().Vertices)
	return out, nil
}

// bufferMulti dilates (d > 0) or erodes (d < 0) a multipolygon.
func bufferMulti(mp orb.MultiPolygon, d float64, segments int) orb.MultiPolygon {
	var base polyclip.Polygon
	for _, p := range mp {
		base = append(base, toClip(p)...)
	}

	radius := math.Abs(d)
	var strip polyclip.Polygon
	for _, p := range mp {
		for _, ring := range p {
			strip = unionClip(strip, ringStrip(ring, radius, segments))
		}
	}
	if len(strip) == 0 {
		return mp
	}

	if d > 0 {
		return fromClip(base.Construct(polyclip.UNION, strip))
	}
	return fromClip(base.Construct(polyclip.DIFFERENCE, strip))
}

// ringStrip sweeps a disk of the given radius along a ring: an offset quad
// per edge plus a circle fan per vertex, unioned into one strip.
func ringStrip(ring orb.Ring, radius float64, segments int) polyclip.Polygon {
	if len(ring) == 0 {
		return nil
	}
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}

	var strip polyclip.Polygon
	for i := 0; i < len(ring)-1; i++ {
		a, b := ring[i], ring[i+1]
		dx, dy := b[0]-a[0], b[1]-a[1]
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		// unit normal scaled to the radius
		nx, ny := -dy/length*radius, dx/length*radius

		quad := polyclip.Contour{
			{X: a[0] + nx, Y: a[1] + ny},
			{X: b[0] + nx, Y: b[1] + ny},
			{X: b[0] - nx, Y: b[1] - ny},
			{X: a[0] - nx, Y: a[1] - ny},
		}
		strip = unionClip(strip, polyclip.Polygon{quad})
		strip = unionClip(strip, polyclip.Polygon{circleContour(a, radius, segments)})
	}
	return strip
}

// circleContour approximates a circle with 4*segments points.
func circleContour(center orb.Point, radius float64, segments int) polyclip.Contour {
	n := 4 * segments
	ct := make(polyclip.Contour, 0, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		ct = append(ct, polyclip.Point{
			X: center[0] + radius*math.Cos(angle),
			Y: center[1] + radius*math.Sin(angle),
		})
	}
	return ct
}

func unionClip(a, b polyclip.Polygon) polyclip.Polygon {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	return a.Construct(polyclip.UNION, b)
}
