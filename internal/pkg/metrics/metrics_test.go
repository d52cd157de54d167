package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/metrics", Handler())
	app.Get("/sessions/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/sessions/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	body := scrape(t, app)
	assert.Contains(t, body, `landsat_viewer_http_requests_total{method="GET",path="/sessions/:id",status="204"}`)
	assert.NotContains(t, body, `path="/sessions/abc"`)
}

func TestObserveUpstreamAndDelivery(t *testing.T) {
	ObserveUpstream("nasa", OutcomeOK, time.Now())
	ObserveDelivery(true)
	ObserveDelivery(false)

	app := fiber.New()
	app.Get("/metrics", Handler())
	body := scrape(t, app)

	assert.Contains(t, body, `landsat_viewer_upstream_requests_total{outcome="ok",service="nasa"}`)
	assert.Contains(t, body, `landsat_viewer_report_deliveries_total{result="sent"}`)
	assert.Contains(t, body, `landsat_viewer_report_deliveries_total{result="failed"}`)
}
