package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/landsat-viewer/internal/config"
	httpDelivery "github.com/landsat-viewer/internal/delivery/http"
	"github.com/landsat-viewer/internal/delivery/http/handler"
	"github.com/landsat-viewer/internal/domain"
	"github.com/landsat-viewer/internal/pkg/errors"
	"github.com/landsat-viewer/internal/usecase"
)

type stubOverpass struct {
	overpass domain.Overpass
	err      error
}

func (s *stubOverpass) LatestOverpass(context.Context, domain.Coordinate) (domain.Overpass, error) {
	return s.overpass, s.err
}

type stubSearch struct {
	assets domain.AssetSet
	calls  int
}

func (s *stubSearch) SearchAssets(context.Context, domain.Coordinate, string) (domain.AssetSet, error) {
	s.calls++
	return s.assets, nil
}

func (s *stubSearch) Collections() []string { return []string{"landsat-c2l2-sr"} }

type stubGeocoder struct{}

func (stubGeocoder) Geocode(_ context.Context, name string) (*domain.Coordinate, error) {
	if name == "Sioux Falls" {
		return &domain.Coordinate{Lat: 43.54, Lon: -96.73}, nil
	}
	return nil, errors.ErrLocationNotFound
}

func (stubGeocoder) LocateIP(context.Context, string) (*domain.Coordinate, error) {
	return nil, errors.ErrIPLocationFailed
}

type stubMailer struct {
	err  error
	sent []domain.MailMessage
}

func (m *stubMailer) Send(_ context.Context, msg domain.MailMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type memorySessions struct {
	data map[string]domain.Session
}

func (m *memorySessions) Get(_ context.Context, id string) (*domain.Session, error) {
	s, ok := m.data[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memorySessions) Save(_ context.Context, s *domain.Session, _ time.Duration) error {
	m.data[s.ID] = *s
	return nil
}

func (m *memorySessions) Delete(_ context.Context, id string) error {
	delete(m.data, id)
	return nil
}

type testEnv struct {
	server   *httpDelivery.Server
	overpass *stubOverpass
	search   *stubSearch
	mailer   *stubMailer
}

func newTestEnv() *testEnv {
	logger := zap.NewNop()
	env := &testEnv{
		overpass: &stubOverpass{overpass: domain.Overpass{Date: "2023-06-01", Available: true}},
		search: &stubSearch{assets: domain.AssetSet{Records: []domain.AssetRecord{
			{Title: "Band 2", URL: "https://x/B2.TIF"},
			{Title: "Band 3", URL: "https://x/B3.TIF"},
			{Title: "Band 4", URL: "https://x/B4.TIF"},
		}}},
		mailer: &stubMailer{},
	}

	landsatUC := usecase.NewLandsatUseCase(env.overpass, env.search, logger)
	locationUC := usecase.NewLocationUseCase(stubGeocoder{}, logger)
	reportUC := usecase.NewReportUseCase(env.mailer, nil, landsatUC.Collections(), logger)
	sessionUC := usecase.NewSessionUseCase(&memorySessions{data: map[string]domain.Session{}},
		locationUC, landsatUC, reportUC, time.Hour, logger)

	env.server = httpDelivery.NewServer(
		&config.Config{},
		logger,
		handler.NewHealthHandler(map[string]handler.HealthChecker{}, logger),
		handler.NewLocationHandler(locationUC, logger),
		handler.NewImageryHandler(landsatUC, logger),
		handler.NewSessionHandler(sessionUC, logger),
	)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.server.App().Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded map[string]interface{}
	_ = json.Unmarshal(raw, &decoded)
	return resp, decoded
}

func errorCode(body map[string]interface{}) string {
	e, _ := body["error"].(map[string]interface{})
	code, _ := e["code"].(string)
	return code
}

func TestServer_Health(t *testing.T) {
	env := newTestEnv()

	resp, body := env.do(t, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
}

func TestServer_Overpass(t *testing.T) {
	env := newTestEnv()

	resp, body := env.do(t, http.MethodGet, "/api/v1/overpass?lat=45.3&lon=-97.4", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "2023-06-01", data["date"])
	assert.Equal(t, true, data["available"])

	resp, body = env.do(t, http.MethodGet, "/api/v1/overpass?lat=100&lon=0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_COORDINATES", errorCode(body))

	env.overpass.err = errors.Upstream("nasa_earth_assets", 503, "unavailable")
	resp, body = env.do(t, http.MethodGet, "/api/v1/overpass?lat=45.3&lon=-97.4", nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "UPSTREAM_ERROR", errorCode(body))
}

func TestServer_AssetSearch(t *testing.T) {
	env := newTestEnv()

	resp, body := env.do(t, http.MethodPost, "/api/v1/assets/search",
		map[string]interface{}{"lat": 45.3, "lon": -97.4, "date": "2023-06-01"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["total"])
	assert.Equal(t, []interface{}{"Title", "URL"}, data["columns"])

	resp, body = env.do(t, http.MethodPost, "/api/v1/assets/search",
		map[string]interface{}{"lat": 45.3, "lon": -97.4, "date": "June 1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", errorCode(body))
}

func TestServer_Geocode(t *testing.T) {
	env := newTestEnv()

	resp, body := env.do(t, http.MethodGet, "/api/v1/geocode?q=Sioux%20Falls", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 43.54, body["data"].(map[string]interface{})["lat"])

	resp, body = env.do(t, http.MethodGet, "/api/v1/geocode?q=Atlantis", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "LOCATION_NOT_FOUND", errorCode(body))

	resp, body = env.do(t, http.MethodGet, "/api/v1/geocode/ip", nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "IP_LOCATION_FAILED", errorCode(body))
}

func TestServer_SessionFlow(t *testing.T) {
	env := newTestEnv()

	resp, body := env.do(t, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := body["data"].(map[string]interface{})["id"].(string)
	base := "/api/v1/sessions/" + id

	resp, body = env.do(t, http.MethodPost, base+"/report", map[string]string{"email": "user@example.com"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NO_DATA", errorCode(body))

	resp, body = env.do(t, http.MethodPost, base+"/query", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "LOCATION_NOT_SET", errorCode(body))

	resp, _ = env.do(t, http.MethodPut, base+"/location",
		map[string]interface{}{"source": "place_name", "query": "Sioux Falls"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = env.do(t, http.MethodPost, base+"/query", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assets := body["data"].(map[string]interface{})["assets"].(map[string]interface{})
	assert.Equal(t, float64(3), assets["total"])

	resp, _ = env.do(t, http.MethodPost, base+"/report", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = env.do(t, http.MethodPost, base+"/report", map[string]string{"email": "user@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["data"].(map[string]interface{})["sent"])
	require.Len(t, env.mailer.sent, 1)
	assert.Contains(t, env.mailer.sent[0].Body, "2023-06-01")

	env.mailer.err = stderrors.New("535 authentication failed")
	resp, body = env.do(t, http.MethodPost, base+"/report", map[string]string{"email": "user@example.com"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "DELIVERY_FAILURE", errorCode(body))
}

func TestServer_ExportCSV(t *testing.T) {
	env := newTestEnv()

	_, body := env.do(t, http.MethodPost, "/api/v1/sessions", nil)
	id := body["data"].(map[string]interface{})["id"].(string)
	base := "/api/v1/sessions/" + id

	env.do(t, http.MethodPut, base+"/location",
		map[string]interface{}{"source": "coordinates", "lat": 45.3, "lon": -97.4})
	env.do(t, http.MethodPost, base+"/query", nil)

	req := httptest.NewRequest(http.MethodGet, base+"/assets.csv", nil)
	resp, err := env.server.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "landsat_data.csv")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	records, err := domain.ParseAssetCSV(raw)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestServer_NoOverpassSkipsSearch(t *testing.T) {
	env := newTestEnv()
	env.overpass.overpass = domain.NoOverpass()

	_, body := env.do(t, http.MethodPost, "/api/v1/sessions", nil)
	id := body["data"].(map[string]interface{})["id"].(string)
	base := "/api/v1/sessions/" + id

	env.do(t, http.MethodPut, base+"/location",
		map[string]interface{}{"source": "map_click", "lat": 45.3, "lon": -97.4})

	resp, body := env.do(t, http.MethodPost, base+"/query", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	overpass := body["data"].(map[string]interface{})["overpass"].(map[string]interface{})
	assert.Equal(t, domain.NoRecentDataMessage, overpass["message"])
	assert.Equal(t, 0, env.search.calls)
}

func TestServer_UnknownSession(t *testing.T) {
	env := newTestEnv()

	resp, body := env.do(t, http.MethodGet, "/api/v1/sessions/00000000-0000-0000-0000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "SESSION_NOT_FOUND", errorCode(body))
}
