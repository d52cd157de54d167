package geocoder

import (
	"context"
	"net/url"
	"strings"

	"github.com/landsat-viewer/internal/domain"
	"github.com/landsat-viewer/internal/pkg/errors"
	"go.uber.org/zap"
)

type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Query   string  `json:"query"`
}

// LocateIP resolves ip through ip-api. An empty ip makes ip-api locate the
// address the request came from.
func (c *client) LocateIP(ctx context.Context, ip string) (*domain.Coordinate, error) {
	reqURL := strings.TrimRight(c.ipAPIURL, "/") + "/json/" + url.PathEscape(strings.TrimSpace(ip)) +
		"?fields=status,message,lat,lon,query"

	var result ipAPIResponse
	if err := c.getJSON(ctx, ipAPIService, reqURL, &result); err != nil {
		return nil, err
	}

	if result.Status != "success" {
		c.logger.Warn("IP location failed",
			zap.String("ip", ip),
			zap.String("message", result.Message))
		return nil, errors.ErrIPLocationFailed.WithDetails(map[string]interface{}{
			"ip":     ip,
			"reason": result.Message,
		})
	}

	c.logger.Debug("IP located", zap.String("query", result.Query))
	return &domain.Coordinate{Lat: result.Lat, Lon: result.Lon}, nil
}
