package geocoder

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/landsat-viewer/internal/domain"
	"github.com/landsat-viewer/internal/pkg/errors"
	"go.uber.org/zap"
)

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode returns the best Nominatim match for name.
func (c *client) Geocode(ctx context.Context, name string) (*domain.Coordinate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ErrLocationNotFound
	}

	params := url.Values{}
	params.Set("q", name)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")
	reqURL := strings.TrimRight(c.nominatimURL, "/") + "/search?" + params.Encode()

	c.logger.Debug("Calling Nominatim search", zap.String("query", name))

	var places []nominatimPlace
	if err := c.getJSON(ctx, nominatimService, reqURL, &places); err != nil {
		return nil, err
	}
	if len(places) == 0 {
		c.logger.Info("Location not found", zap.String("query", name))
		return nil, errors.ErrLocationNotFound.WithDetails(map[string]interface{}{"query": name})
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", places[0].Lon, err)
	}

	c.logger.Debug("Nominatim match",
		zap.String("query", name),
		zap.String("display_name", places[0].DisplayName))

	return &domain.Coordinate{Lat: lat, Lon: lon}, nil
}
