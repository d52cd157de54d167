package domain

import "time"

// LocationSource is how the session's coordinate was obtained.
type LocationSource string

const (
	SourceMapClick    LocationSource = "map_click"
	SourceCoordinates LocationSource = "coordinates"
	SourcePlaceName   LocationSource = "place_name"
	SourceIP          LocationSource = "ip"
)

// DefaultCoordinate seeds manual entry when nothing was picked yet.
var DefaultCoordinate = Coordinate{Lat: 45.3, Lon: -97.4}

// Session holds the state of one interactive user: the selected location and
// the last query result. It belongs to the shell, never to the pipeline.
type Session struct {
	ID         string         `json:"id"`
	Coordinate *Coordinate    `json:"coordinate,omitempty"`
	Source     LocationSource `json:"source,omitempty"`
	Label      string         `json:"label,omitempty"`
	Overpass   *Overpass      `json:"overpass,omitempty"`
	Assets     []AssetRecord  `json:"assets,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// SetLocation replaces the coordinate and drops any result computed for the
// previous one.
func (s *Session) SetLocation(c Coordinate, source LocationSource, label string, now time.Time) {
	s.Coordinate = &c
	s.Source = source
	s.Label = label
	s.Overpass = nil
	s.Assets = nil
	s.UpdatedAt = now
}

// SetResult stores the outcome of a pipeline run.
func (s *Session) SetResult(overpass Overpass, assets AssetSet, now time.Time) {
	s.Overpass = &overpass
	s.Assets = assets.Records
	s.UpdatedAt = now
}

// HasData is true once a non-empty asset list was fetched.
func (s *Session) HasData() bool {
	return s.Overpass != nil && s.Overpass.Available && len(s.Assets) > 0
}
