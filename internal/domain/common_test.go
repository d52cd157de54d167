package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBoundingBox(t *testing.T) {
	tests := []struct {
		name   string
		coord  Coordinate
		offset float64
		want   [4]float64
	}{
		{"default offset", Coordinate{Lat: 45.3, Lon: -97.4}, DefaultBBoxOffset, [4]float64{-97.6, 45.1, -97.2, 45.5}},
		{"origin", Coordinate{}, 1, [4]float64{-1, -1, 1, 1}},
		{"southern hemisphere", Coordinate{Lat: -33.9, Lon: 18.4}, 0.5, [4]float64{17.9, -34.4, 18.9, -33.4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBoundingBox(tt.coord, tt.offset).AsArray()
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-9)
			}
		})
	}
}

func TestNewBoundingBox_SymmetricAboutCenter(t *testing.T) {
	coords := []Coordinate{{Lat: 10, Lon: 20}, {Lat: -45.5, Lon: 170.25}, {Lat: 89.9, Lon: -179.9}}
	offsets := []float64{0.01, 0.2, 3}

	for _, c := range coords {
		for _, o := range offsets {
			box := NewBoundingBox(c, o)
			center := box.Center()
			assert.InDelta(t, c.Lat, center.Lat, 1e-9)
			assert.InDelta(t, c.Lon, center.Lon, 1e-9)
			assert.InDelta(t, 2*o, box.MaxLat-box.MinLat, 1e-9)
			assert.InDelta(t, 2*o, box.MaxLon-box.MinLon, 1e-9)
		}
	}
}

func TestNewBoundingBox_AntimeridianNotWrapped(t *testing.T) {
	box := NewBoundingBox(Coordinate{Lat: 0, Lon: 179.9}, 0.2)
	assert.InDelta(t, 180.1, box.MaxLon, 1e-9)
}

func TestCoordinate_Valid(t *testing.T) {
	assert.True(t, Coordinate{Lat: 90, Lon: -180}.Valid())
	assert.False(t, Coordinate{Lat: 90.1, Lon: 0}.Valid())
	assert.False(t, Coordinate{Lat: 0, Lon: 180.5}.Valid())
}
