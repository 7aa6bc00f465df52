package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/coupon-service/internal/metrics"
)

func setupTestApp() *fiber.App {
	app := fiber.New()
	for _, h := range CORS() {
		app.Use(h)
	}
	app.Use(Metrics())
	app.Get("/coupons", func(c *fiber.Ctx) error {
		return c.JSON([]string{})
	})
	app.Delete("/delete-coupon/:id", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coupon not found"})
	})
	return app
}

func TestCORS_PreflightIsBare200(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest(http.MethodOptions, "/edit-coupon/abc", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", "PUT")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "PUT")
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "DELETE")
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Content-Type")
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Authorization")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "OK", string(body), "SendStatus writes only the status text")
}

func TestCORS_PreflightWithoutOrigin(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest(http.MethodOptions, "/anything", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCORS_SimpleRequestAllowsAnyOrigin(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest(http.MethodGet, "/coupons", nil)
	req.Header.Set("Origin", "https://anywhere.example.org")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	app := setupTestApp()
	observer := metrics.HTTPRequestDuration.WithLabelValues("DELETE", "/delete-coupon/:id", "404")
	before := testutil.CollectAndCount(metrics.HTTPRequestDuration)

	for _, id := range []string{"a", "b"} {
		req := httptest.NewRequest(http.MethodDelete, "/delete-coupon/"+id, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	}

	require.NotNil(t, observer)
	after := testutil.CollectAndCount(metrics.HTTPRequestDuration)
	assert.Equal(t, before, after, "ids must not create new series")
}
