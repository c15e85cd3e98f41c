package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"storefx/internal/domain"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const activeRatePath = "/api/v1/exchange-rate"

// ExchangeRateClient reads the active rate from another storefx instance.
type ExchangeRateClient struct {
	http    *http.Client
	baseURL string
}

type apiResponse struct {
	ID              uuid.UUID       `json:"id"`
	BCVRate         decimal.Decimal `json:"bcv_rate"`
	BlackMarketRate decimal.Decimal `json:"black_market_rate"`
	IsActive        bool            `json:"is_active"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (c *ExchangeRateClient) GetActive(ctx context.Context) (domain.ExchangeRate, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("failed to parse base URL: %w", err)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + activeRatePath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ExchangeRate{}, domain.ErrNoActiveRate
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.ExchangeRate{}, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, resp.Status)
	}

	var body apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("%w: failed to decode response: %s", domain.ErrMalformedRate, err.Error())
	}

	return domain.ExchangeRate{
		ID:              body.ID,
		BCVRate:         body.BCVRate,
		BlackMarketRate: body.BlackMarketRate,
		IsActive:        body.IsActive,
		UpdatedAt:       body.UpdatedAt,
	}, nil
}

func NewExchangeRateClient(httpClient *http.Client, baseURL string) *ExchangeRateClient {
	return &ExchangeRateClient{http: httpClient, baseURL: baseURL}
}
