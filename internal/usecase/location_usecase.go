package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/landsat-viewer/internal/domain"
	"github.com/landsat-viewer/internal/domain/repository"
	"github.com/landsat-viewer/internal/pkg/errors"
	"github.com/landsat-viewer/internal/usecase/dto"
)

// ResolvedLocation is a coordinate together with how it was obtained.
type ResolvedLocation struct {
	Coordinate domain.Coordinate
	Source     domain.LocationSource
	Label      string
}

// LocationUseCase turns every supported kind of location input into a coordinate.
type LocationUseCase struct {
	geocoder repository.GeocoderRepository
	logger   *zap.Logger
}

func NewLocationUseCase(geocoder repository.GeocoderRepository, logger *zap.Logger) *LocationUseCase {
	return &LocationUseCase{
		geocoder: geocoder,
		logger:   logger,
	}
}

// Geocode looks up a place name.
func (uc *LocationUseCase) Geocode(ctx context.Context, name string) (*ResolvedLocation, error) {
	name = strings.TrimSpace(name)
	coord, err := uc.geocoder.Geocode(ctx, name)
	if err != nil {
		return nil, err
	}
	return &ResolvedLocation{Coordinate: *coord, Source: domain.SourcePlaceName, Label: name}, nil
}

// LocateIP looks up an IP address; empty ip means the caller's own address.
func (uc *LocationUseCase) LocateIP(ctx context.Context, ip string) (*ResolvedLocation, error) {
	coord, err := uc.geocoder.LocateIP(ctx, ip)
	if err != nil {
		return nil, err
	}
	return &ResolvedLocation{Coordinate: *coord, Source: domain.SourceIP, Label: ip}, nil
}

// Resolve dispatches on the request source.
func (uc *LocationUseCase) Resolve(ctx context.Context, req dto.LocationRequest) (*ResolvedLocation, error) {
	source := domain.LocationSource(req.Source)

	switch source {
	case domain.SourceMapClick, domain.SourceCoordinates:
		if req.Lat == nil || req.Lon == nil {
			return nil, errors.ErrInvalidCoordinates.WithMessage("lat and lon are required")
		}
		coord := domain.Coordinate{Lat: *req.Lat, Lon: *req.Lon}
		if !coord.Valid() {
			return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
				"lat": coord.Lat,
				"lon": coord.Lon,
			})
		}
		return &ResolvedLocation{Coordinate: coord, Source: source}, nil

	case domain.SourcePlaceName:
		if strings.TrimSpace(req.Query) == "" {
			return nil, errors.ErrInvalidRequest.WithMessage("query is required for place_name")
		}
		return uc.Geocode(ctx, req.Query)

	case domain.SourceIP:
		return uc.LocateIP(ctx, req.IP)

	default:
		return nil, errors.ErrInvalidRequest.WithMessage("unknown location source: " + req.Source)
	}
}
