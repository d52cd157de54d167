package utils

import (
	"strconv"
	"strings"

	"github.com/landsat-viewer/internal/domain"
	"github.com/landsat-viewer/internal/pkg/errors"
)

// ParseCoordinate reads decimal degrees from text such as query parameters
// or CLI flags and checks the range.
func ParseCoordinate(lat, lon string) (domain.Coordinate, error) {
	latV, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return domain.Coordinate{}, errors.ErrInvalidCoordinates.WithMessage("lat must be a number")
	}
	lonV, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return domain.Coordinate{}, errors.ErrInvalidCoordinates.WithMessage("lon must be a number")
	}

	c := domain.Coordinate{Lat: latV, Lon: lonV}
	if !c.Valid() {
		return domain.Coordinate{}, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"lat": latV,
			"lon": lonV,
		})
	}
	return c, nil
}
