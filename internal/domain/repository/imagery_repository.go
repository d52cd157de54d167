package repository

import (
	"context"

	"github.com/landsat-viewer/internal/domain"
)

// OverpassRepository resolves the latest imaging date for a coordinate.
type OverpassRepository interface {
	// LatestOverpass returns domain.NoOverpass() when the service knows no
	// date for the point.
	LatestOverpass(ctx context.Context, coord domain.Coordinate) (domain.Overpass, error)
}

// AssetSearchRepository lists imagery assets captured on a given day.
type AssetSearchRepository interface {
	// SearchAssets returns an empty set when nothing matched.
	SearchAssets(ctx context.Context, coord domain.Coordinate, date string) (domain.AssetSet, error)

	// Collections names the catalog collections the search targets.
	Collections() []string
}
