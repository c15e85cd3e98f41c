package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefx/internal/adapters/notify"
	"storefx/internal/domain"
	"storefx/internal/metrics"
	"storefx/internal/rate"
	"storefx/internal/rate/handler"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type stubAdminService struct{ refreshed int }

func (s *stubAdminService) Activate(context.Context, rate.ActivateRateInput) (domain.ExchangeRate, error) {
	return domain.ExchangeRate{}, nil
}

func (s *stubAdminService) Deactivate(context.Context) error { return nil }

func (s *stubAdminService) Refresh(context.Context) error {
	s.refreshed++
	return nil
}

func newRateHandler(t *testing.T) *handler.Handler {
	t.Helper()
	projector, err := rate.NewProjector(rate.DefaultProjectorConfig())
	require.NoError(t, err)
	hub := notify.NewHub()
	t.Cleanup(hub.Close)
	return handler.NewRateHandler(rate.NewCache(), projector, rate.NewValidator(), hub)
}

func serve(router http.Handler, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicRoutes(t *testing.T) {
	router := NewRouter(newRateHandler(t), Options{})

	require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/healthz", "").Code)
	require.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/api/v1/exchange-rate", "").Code)

	rec := serve(router, http.MethodGet, "/api/v1/prices?amount=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"usd":"$10.00"`)
}

func TestRouter_AdminRoutesNotMountedWithoutToken(t *testing.T) {
	svc := &stubAdminService{}
	router := NewRouter(newRateHandler(t), Options{
		Admin: handler.NewAdminHandler(svc, rate.NewCache()),
	})

	rec := serve(router, http.MethodPost, "/api/v1/admin/exchange-rates/refresh", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Zero(t, svc.refreshed)
}

func TestRouter_AdminRoutesRequireToken(t *testing.T) {
	svc := &stubAdminService{}
	router := NewRouter(newRateHandler(t), Options{
		Admin:      handler.NewAdminHandler(svc, rate.NewCache()),
		AdminToken: "s3cret",
	})

	require.Equal(t, http.StatusUnauthorized, serve(router, http.MethodPost, "/api/v1/admin/exchange-rates/refresh", "").Code)
	require.Equal(t, http.StatusUnauthorized, serve(router, http.MethodPost, "/api/v1/admin/exchange-rates/refresh", "wrong").Code)
	require.Zero(t, svc.refreshed)

	require.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/api/v1/admin/exchange-rates/refresh", "s3cret").Code)
	require.Equal(t, 1, svc.refreshed)

	require.Equal(t, http.StatusNoContent, serve(router, http.MethodDelete, "/api/v1/admin/exchange-rates/active", "s3cret").Code)
}

func TestRouter_RequestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	router := NewRouter(newRateHandler(t), Options{Metrics: m, Gatherer: reg})

	serve(router, http.MethodGet, "/api/v1/exchange-rate", "")
	serve(router, http.MethodGet, "/api/v1/exchange-rate", "")

	require.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/api/v1/exchange-rate", http.MethodGet, "4xx")))

	rec := serve(router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "http_requests_total")
}
