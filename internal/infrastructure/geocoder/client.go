package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/landsat-viewer/internal/config"
	"github.com/landsat-viewer/internal/domain/repository"
	"github.com/landsat-viewer/internal/pkg/errors"
	"github.com/landsat-viewer/internal/pkg/metrics"
	"go.uber.org/zap"
)

const (
	nominatimService = "nominatim"
	ipAPIService     = "ip_api"
)

type client struct {
	httpClient   *http.Client
	nominatimURL string
	userAgent    string
	ipAPIURL     string
	logger       *zap.Logger
}

// NewGeocoderClient creates a geocoder backed by Nominatim for place names
// and ip-api for IP addresses.
func NewGeocoderClient(cfg *config.GeocoderConfig, httpCfg *config.HTTPClientConfig, logger *zap.Logger) repository.GeocoderRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
		},
		nominatimURL: cfg.NominatimURL,
		userAgent:    cfg.UserAgent,
		ipAPIURL:     cfg.IPAPIURL,
		logger:       logger,
	}
}

// getJSON performs a GET and decodes a 2xx JSON body into out.
func (c *client) getJSON(ctx context.Context, service, reqURL string, out interface{}) error {
	started := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.String("service", service), zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(service, metrics.OutcomeError, started)
		c.logger.Error("Failed to execute request", zap.String("service", service), zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveUpstream(service, metrics.OutcomeError, started)
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.ObserveUpstream(service, metrics.OutcomeStatus, started)
		c.logger.Error("Geocoding API returned error",
			zap.String("service", service),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return errors.Upstream(service, resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		metrics.ObserveUpstream(service, metrics.OutcomeError, started)
		c.logger.Error("Failed to decode response", zap.String("service", service), zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}

	metrics.ObserveUpstream(service, metrics.OutcomeOK, started)
	return nil
}
