package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/coupon-service/internal/handler"
	"github.com/fairyhunter13/coupon-service/internal/model"
	"github.com/fairyhunter13/coupon-service/internal/validator"
)

type stubCouponService struct {
	coupons []model.Coupon
}

func (s *stubCouponService) List(ctx context.Context) ([]model.Coupon, error) {
	return s.coupons, nil
}

func (s *stubCouponService) Create(ctx context.Context, req *model.CouponRequest) (string, error) {
	s.coupons = append(s.coupons, model.Coupon{ID: "generated", Description: req.Description})
	return "generated", nil
}

func (s *stubCouponService) Update(ctx context.Context, id string, req *model.CouponRequest) error {
	return nil
}

func (s *stubCouponService) Delete(ctx context.Context, id string) error {
	return nil
}

type stubPinger struct{}

func (stubPinger) Ping(ctx context.Context) error { return nil }

func newTestApp() func(*http.Request) (*http.Response, error) {
	svc := &stubCouponService{coupons: []model.Coupon{}}
	app := newApp(handler.NewCouponHandler(svc, validator.New()), handler.NewHealthHandler(stubPinger{}))
	return func(req *http.Request) (*http.Response, error) { return app.Test(req) }
}

func TestNewApp_Routes(t *testing.T) {
	do := newTestApp()

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/coupons", "", http.StatusOK},
		{http.MethodPost, "/create-coupon", `{"description":"A","value":10,"expiration_date":"2099-01-01","active":true}`, http.StatusOK},
		{http.MethodPost, "/create-coupon", `{"description":"A"}`, http.StatusBadRequest},
		{http.MethodPut, "/edit-coupon/abc", `{"description":"A","value":10,"expiration_date":"2099-01-01","active":false}`, http.StatusOK},
		{http.MethodDelete, "/delete-coupon/abc", "", http.StatusOK},
		{http.MethodOptions, "/create-coupon", "", http.StatusOK},
		{http.MethodGet, "/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var req *http.Request
			if tt.body == "" {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			} else {
				req = httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
				req.Header.Set("Content-Type", "application/json")
			}

			resp, err := do(req)
			require.NoError(t, err)
			defer func() {
				_ = resp.Body.Close()
			}()

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
		})
	}
}

func TestNewApp_CreateThenList(t *testing.T) {
	do := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/create-coupon",
		bytes.NewBufferString(`{"description":"A","value":10,"expiration_date":"2099-01-01","active":true}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	resp, err = do(httptest.NewRequest(http.MethodGet, "/coupons", nil))
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	var coupons []model.Coupon
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&coupons))
	require.Len(t, coupons, 1)
	assert.Equal(t, "generated", coupons[0].ID)
}

func TestNewApp_MetricsEndpoint(t *testing.T) {
	do := newTestApp()

	resp, err := do(httptest.NewRequest(http.MethodGet, "/coupons", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()

	resp, err = do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "coupon_http_request_duration_seconds")
	assert.Contains(t, string(body), `route="/coupons"`)
}
