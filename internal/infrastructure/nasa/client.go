package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/landsat-viewer/internal/config"
	"github.com/landsat-viewer/internal/domain"
	"github.com/landsat-viewer/internal/domain/repository"
	"github.com/landsat-viewer/internal/pkg/errors"
	"github.com/landsat-viewer/internal/pkg/metrics"
	"go.uber.org/zap"
)

const serviceName = "nasa_earth_assets"

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	dim        float64
	layouts    []string
	logger     *zap.Logger
}

// assetsResponse only decodes the field we need. Date is a pointer so that
// a missing key can be told apart from an empty string.
type assetsResponse struct {
	Date *string `json:"date"`
}

// NewOverpassClient creates a client for the NASA Earth imagery assets endpoint.
func NewOverpassClient(cfg *config.NASAConfig, httpCfg *config.HTTPClientConfig, logger *zap.Logger) repository.OverpassRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
		},
		baseURL: cfg.AssetsURL,
		apiKey:  cfg.APIKey,
		dim:     cfg.Dim,
		layouts: cfg.TimeLayouts,
		logger:  logger,
	}
}

// LatestOverpass asks for the most recent scene covering coord.
func (c *client) LatestOverpass(ctx context.Context, coord domain.Coordinate) (domain.Overpass, error) {
	started := time.Now()

	params := url.Values{}
	params.Set("lon", strconv.FormatFloat(coord.Lon, 'f', -1, 64))
	params.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	params.Set("dim", strconv.FormatFloat(c.dim, 'f', -1, 64))
	params.Set("api_key", c.apiKey)
	reqURL := c.baseURL + "?" + params.Encode()

	c.logger.Debug("Calling NASA assets API",
		zap.Float64("lat", coord.Lat),
		zap.Float64("lon", coord.Lon),
		zap.Float64("dim", c.dim))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return domain.Overpass{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(serviceName, metrics.OutcomeError, started)
		c.logger.Error("Failed to execute request", zap.Error(err))
		return domain.Overpass{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveUpstream(serviceName, metrics.OutcomeError, started)
		return domain.Overpass{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.ObserveUpstream(serviceName, metrics.OutcomeStatus, started)
		c.logger.Error("NASA assets API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return domain.Overpass{}, errors.Upstream(serviceName, resp.StatusCode, string(body))
	}

	var assets assetsResponse
	if err := json.Unmarshal(body, &assets); err != nil {
		metrics.ObserveUpstream(serviceName, metrics.OutcomeError, started)
		c.logger.Error("Failed to decode response", zap.Error(err))
		return domain.Overpass{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if assets.Date == nil {
		metrics.ObserveUpstream(serviceName, metrics.OutcomeEmpty, started)
		c.logger.Debug("NASA assets API returned no date", zap.Stringer("coordinate", coord))
		return domain.NoOverpass(), nil
	}

	acquired, err := ParseTimestamp(*assets.Date, c.layouts)
	if err != nil {
		metrics.ObserveUpstream(serviceName, metrics.OutcomeError, started)
		c.logger.Error("Unrecognized overpass timestamp", zap.String("date", *assets.Date))
		return domain.Overpass{}, err
	}

	metrics.ObserveUpstream(serviceName, metrics.OutcomeOK, started)
	overpass := domain.OverpassOn(acquired)
	c.logger.Debug("NASA assets API call successful", zap.String("date", overpass.Date))

	return overpass, nil
}

// ParseTimestamp tries each layout in order and returns the first successful
// parse. When none match it returns an errors.ErrTimestampParse.
func ParseTimestamp(value string, layouts []string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.ErrTimestampParse.WithDetails(map[string]interface{}{
		"value":   value,
		"layouts": layouts,
	})
}
