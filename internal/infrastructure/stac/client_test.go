package stac

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/landsat-viewer/internal/config"
	"github.com/landsat-viewer/internal/domain"
	"github.com/landsat-viewer/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const twoFeaturesResponse = `{
  "type": "FeatureCollection",
  "features": [
    {"id": "LC09_L2SP_030029_20230601", "assets": {
      "thumbnail": {"title": "Thumbnail image", "href": "https://landsatlook.usgs.gov/data/a/thumb.jpeg"},
      "blue": {"title": "Blue Band (B2)", "href": "https://landsatlook.usgs.gov/data/a/SR_B2.TIF"}
    }},
    {"id": "LC09_L2SP_030028_20230601", "assets": {
      "red": {"title": "Red Band (B4)", "href": "https://landsatlook.usgs.gov/data/b/SR_B4.TIF"},
      "ANG.txt": {"title": "Angle Coefficients File", "href": "https://landsatlook.usgs.gov/data/b/ANG.txt"}
    }}
  ]
}`

func newTestClient(serverURL string) *client {
	cfg := &config.SearchConfig{
		URL:           serverURL,
		Limit:         100,
		Collections:   []string{"landsat-c2l2-sr", "landsat-c2l2-st"},
		Platforms:     []string{"LANDSAT_8", "LANDSAT_9"},
		CloudCoverMin: 0,
		CloudCoverMax: 60,
		BBoxOffset:    domain.DefaultBBoxOffset,
	}
	return NewSearchClient(cfg, &config.HTTPClientConfig{}, zap.NewNop()).(*client)
}

func TestClient_SearchAssets(t *testing.T) {
	coord := domain.Coordinate{Lat: 45.3, Lon: -97.4}

	t.Run("flattens assets across features in order", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/geo+json")
			w.Write([]byte(twoFeaturesResponse))
		}))
		defer server.Close()

		result, err := newTestClient(server.URL).SearchAssets(context.Background(), coord, "2023-06-01")
		require.NoError(t, err)
		require.Len(t, result.Records, 4)
		assert.Equal(t, []domain.AssetRecord{
			{Title: "Thumbnail image", URL: "https://landsatlook.usgs.gov/data/a/thumb.jpeg"},
			{Title: "Blue Band (B2)", URL: "https://landsatlook.usgs.gov/data/a/SR_B2.TIF"},
			{Title: "Red Band (B4)", URL: "https://landsatlook.usgs.gov/data/b/SR_B4.TIF"},
			{Title: "Angle Coefficients File", URL: "https://landsatlook.usgs.gov/data/b/ANG.txt"},
		}, result.Records)
	})

	t.Run("zero features is no data", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
		}))
		defer server.Close()

		result, err := newTestClient(server.URL).SearchAssets(context.Background(), coord, "2023-06-01")
		require.NoError(t, err)
		assert.True(t, result.Empty())
	})

	t.Run("features without assets is no data", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"features":[{"id":"x","assets":{}},{"id":"y"}]}`))
		}))
		defer server.Close()

		result, err := newTestClient(server.URL).SearchAssets(context.Background(), coord, "2023-06-01")
		require.NoError(t, err)
		assert.True(t, result.Empty())
	})

	t.Run("sends the search body", func(t *testing.T) {
		var got map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &got))
			w.Write([]byte(`{"features":[]}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).SearchAssets(context.Background(), coord, "2023-06-01")
		require.NoError(t, err)

		assert.Equal(t, 100.0, got["limit"])
		assert.Equal(t, "2023-06-01T00:00:00Z/2023-06-01T23:59:59Z", got["datetime"])
		assert.Equal(t, []interface{}{"landsat-c2l2-sr", "landsat-c2l2-st"}, got["collections"])

		bbox := got["bbox"].([]interface{})
		require.Len(t, bbox, 4)
		assert.InDelta(t, -97.6, bbox[0], 1e-9)
		assert.InDelta(t, 45.1, bbox[1], 1e-9)
		assert.InDelta(t, -97.2, bbox[2], 1e-9)
		assert.InDelta(t, 45.5, bbox[3], 1e-9)

		query := got["query"].(map[string]interface{})
		assert.Equal(t, map[string]interface{}{"gte": 0.0, "lt": 60.0}, query["eo:cloud_cover"])
		assert.Equal(t, map[string]interface{}{"in": []interface{}{"LANDSAT_8", "LANDSAT_9"}}, query["platform"])
	})

	t.Run("non-2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"code":"BadRequest","description":"invalid bbox"}`))
		}))
		defer server.Close()

		result, err := newTestClient(server.URL).SearchAssets(context.Background(), coord, "2023-06-01")
		require.Error(t, err)
		assert.True(t, result.Empty())

		appErr, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, "UPSTREAM_ERROR", appErr.Code)
		assert.Equal(t, http.StatusBadRequest, appErr.Details["status_code"])
		assert.Contains(t, appErr.Details["body"], "invalid bbox")
	})

	t.Run("malformed assets", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"features":[{"assets":["not","an","object"]}]}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).SearchAssets(context.Background(), coord, "2023-06-01")
		assert.ErrorContains(t, err, "expected object")
	})
}

func TestClient_LimitIsSentAsConfigured(t *testing.T) {
	c := newTestClient("http://unused")
	c.limit = 3

	req := c.buildRequest(domain.Coordinate{Lat: 1, Lon: 2}, "2024-01-31")
	assert.Equal(t, 3, req.Limit)
	want := [4]float64{1.8, 0.8, 2.2, 1.2}
	for i := range want {
		assert.InDelta(t, want[i], req.BBox[i], 1e-9)
	}
}
