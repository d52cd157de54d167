package stac

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/landsat-viewer/internal/config"
	"github.com/landsat-viewer/internal/domain"
	"github.com/landsat-viewer/internal/domain/repository"
	"github.com/landsat-viewer/internal/pkg/errors"
	"github.com/landsat-viewer/internal/pkg/metrics"
	"go.uber.org/zap"
)

const serviceName = "stac_search"

type client struct {
	httpClient  *http.Client
	searchURL   string
	limit       int
	collections []string
	platforms   []string
	cloudMin    float64
	cloudMax    float64
	bboxOffset  float64
	logger      *zap.Logger
}

// NewSearchClient creates a client for a STAC API /search endpoint.
func NewSearchClient(cfg *config.SearchConfig, httpCfg *config.HTTPClientConfig, logger *zap.Logger) repository.AssetSearchRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
		},
		searchURL:   cfg.URL,
		limit:       cfg.Limit,
		collections: cfg.Collections,
		platforms:   cfg.Platforms,
		cloudMin:    cfg.CloudCoverMin,
		cloudMax:    cfg.CloudCoverMax,
		bboxOffset:  cfg.BBoxOffset,
		logger:      logger,
	}
}

func (c *client) Collections() []string {
	return c.collections
}

// buildRequest assembles the search body for one coordinate and day.
func (c *client) buildRequest(coord domain.Coordinate, date string) searchRequest {
	return searchRequest{
		Limit:       c.limit,
		BBox:        domain.NewBoundingBox(coord, c.bboxOffset).AsArray(),
		Datetime:    domain.SearchWindow(date),
		Collections: c.collections,
		Query: searchQuery{
			CloudCover: rangeFilter{GTE: c.cloudMin, LT: c.cloudMax},
			Platform:   inFilter{In: c.platforms},
		},
	}
}

// SearchAssets posts one search and flattens the assets of every returned
// feature into a single list. Only the first page is read, so at most
// `limit` features contribute.
func (c *client) SearchAssets(ctx context.Context, coord domain.Coordinate, date string) (domain.AssetSet, error) {
	started := time.Now()

	requestBody, err := json.Marshal(c.buildRequest(coord, date))
	if err != nil {
		return domain.AssetSet{}, fmt.Errorf("failed to marshal search request: %w", err)
	}

	c.logger.Debug("Calling STAC search API",
		zap.String("url", c.searchURL),
		zap.String("date", date),
		zap.ByteString("body", requestBody))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.searchURL, bytes.NewReader(requestBody))
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return domain.AssetSet{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(serviceName, metrics.OutcomeError, started)
		c.logger.Error("Failed to execute request", zap.Error(err))
		return domain.AssetSet{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveUpstream(serviceName, metrics.OutcomeError, started)
		return domain.AssetSet{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.ObserveUpstream(serviceName, metrics.OutcomeStatus, started)
		c.logger.Error("STAC search API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return domain.AssetSet{}, errors.Upstream(serviceName, resp.StatusCode, string(body))
	}

	records, err := flattenAssets(body)
	if err != nil {
		metrics.ObserveUpstream(serviceName, metrics.OutcomeError, started)
		c.logger.Error("Failed to decode response", zap.Error(err))
		return domain.AssetSet{}, fmt.Errorf("failed to decode response: %w", err)
	}

	set := domain.AssetSet{Records: records}
	if set.Empty() {
		metrics.ObserveUpstream(serviceName, metrics.OutcomeEmpty, started)
	} else {
		metrics.ObserveUpstream(serviceName, metrics.OutcomeOK, started)
	}

	c.logger.Debug("STAC search API call successful", zap.Int("assets", len(records)))
	return set, nil
}

// flattenAssets walks features in order and, inside each feature, the asset
// object in document order.
func flattenAssets(body []byte) ([]domain.AssetRecord, error) {
	var collection featureCollection
	if err := json.Unmarshal(body, &collection); err != nil {
		return nil, err
	}

	records := make([]domain.AssetRecord, 0)
	for i, f := range collection.Features {
		assets, err := decodeOrderedAssets(f.Assets)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		for _, a := range assets {
			records = append(records, domain.AssetRecord{Title: a.Title, URL: a.Href})
		}
	}
	return records, nil
}

// decodeOrderedAssets reads a JSON object of assets without going through a
// map, which would lose key order.
func decodeOrderedAssets(raw json.RawMessage) ([]asset, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("assets: expected object, got %v", tok)
	}

	var assets []asset
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		var a asset
		if err := dec.Decode(&a); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, nil
}
