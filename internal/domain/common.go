package domain

import "fmt"

// DefaultBBoxOffset is the half-width, in degrees, of the search box built
// around a coordinate.
const DefaultBBoxOffset = 0.2

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

func (c Coordinate) String() string {
	return fmt.Sprintf("Lat: %v, Lon: %v", c.Lat, c.Lon)
}

type BoundingBox struct {
	MinLat float64 `json:"min_lat" db:"min_lat"`
	MinLon float64 `json:"min_lon" db:"min_lon"`
	MaxLat float64 `json:"max_lat" db:"max_lat"`
	MaxLon float64 `json:"max_lon" db:"max_lon"`
}

// NewBoundingBox returns the axis-aligned box centered on c, extending offset
// degrees in every direction. The offset is not corrected for latitude and
// the box is neither clamped at the poles nor split at the antimeridian.
func NewBoundingBox(c Coordinate, offset float64) BoundingBox {
	return BoundingBox{
		MinLon: c.Lon - offset,
		MinLat: c.Lat - offset,
		MaxLon: c.Lon + offset,
		MaxLat: c.Lat + offset,
	}
}

// AsArray returns the box in GeoJSON/STAC order: [minLon, minLat, maxLon, maxLat].
func (b BoundingBox) AsArray() [4]float64 {
	return [4]float64{b.MinLon, b.MinLat, b.MaxLon, b.MaxLat}
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Coordinate {
	return Coordinate{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lon: (b.MinLon + b.MaxLon) / 2,
	}
}
