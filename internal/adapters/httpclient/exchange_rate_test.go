package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefx/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestExchangeRateClient_Success(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
            "id": "6f1c2f8e-3b7a-4f58-9b8e-2f1d5c0b9a11",
            "bcv_rate": "36.50",
            "black_market_rate": "55.1",
            "is_active": true,
            "updated_at": "2025-03-14T09:30:00Z"
        }`))
	}))
	t.Cleanup(srv.Close)

	c := NewExchangeRateClient(srv.Client(), srv.URL+"/edge/")

	rate, err := c.GetActive(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/edge/api/v1/exchange-rate", gotPath)
	require.Equal(t, "6f1c2f8e-3b7a-4f58-9b8e-2f1d5c0b9a11", rate.ID.String())
	require.Equal(t, "36.5|55.1", rate.Signature())
	require.True(t, rate.IsActive)
	require.True(t, rate.UpdatedAt.Equal(time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)))
}

func TestExchangeRateClient_NotFound_NoActiveRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no active exchange rate", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	c := NewExchangeRateClient(srv.Client(), srv.URL)

	_, err := c.GetActive(context.Background())
	require.ErrorIs(t, err, domain.ErrNoActiveRate)
}

func TestExchangeRateClient_StatusCodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := NewExchangeRateClient(srv.Client(), srv.URL)

	_, err := c.GetActive(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status code 503")
	require.NotErrorIs(t, err, domain.ErrNoActiveRate)
}

func TestExchangeRateClient_JSONDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{")) // invalid JSON
	}))
	t.Cleanup(srv.Close)

	c := NewExchangeRateClient(srv.Client(), srv.URL)

	_, err := c.GetActive(context.Background())
	require.ErrorIs(t, err, domain.ErrMalformedRate)
	require.Contains(t, err.Error(), "failed to decode response")
}

func TestExchangeRateClient_MissingFieldsFailValidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"bcv_rate": "36.5"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewExchangeRateClient(srv.Client(), srv.URL)

	rate, err := c.GetActive(context.Background())
	require.NoError(t, err)
	require.ErrorIs(t, rate.Validate(), domain.ErrMalformedRate)
}

func TestExchangeRateClient_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := NewExchangeRateClient(srv.Client(), srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetActive(ctx)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to execute request")
}

func TestExchangeRateClient_BaseURLParseError(t *testing.T) {
	c := NewExchangeRateClient(&http.Client{}, "http://::1]")
	_, err := c.GetActive(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse base URL")
}
