package main

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// test helpers shared across the suite

func square(x0, y0, size float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{x0, y0},
		{x0 + size, y0},
		{x0 + size, y0 + size},
		{x0, y0 + size},
		{x0, y0},
	}}
}

func layerOf(epsg int, geoms ...orb.Geometry) *Layer {
	layer := &Layer{Name: "test", EPSG: epsg}
	for _, g := range geoms {
		layer.Features = append(layer.Features, geojson.NewFeature(g))
	}
	return layer
}
