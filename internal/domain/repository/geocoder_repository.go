package repository

import (
	"context"

	"github.com/landsat-viewer/internal/domain"
)

// GeocoderRepository turns place names and IP addresses into coordinates.
type GeocoderRepository interface {
	// Geocode returns errors.ErrLocationNotFound when nothing matches.
	Geocode(ctx context.Context, name string) (*domain.Coordinate, error)

	// LocateIP resolves an address; an empty ip locates the caller itself.
	LocateIP(ctx context.Context, ip string) (*domain.Coordinate, error)
}
