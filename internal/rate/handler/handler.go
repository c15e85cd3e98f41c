package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"storefx/internal/domain"
	"storefx/internal/rate"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RateReader interface {
	Current() *domain.ExchangeRate
}

type PriceProjector interface {
	ProjectAll(amountsUSD []decimal.Decimal, rate *domain.ExchangeRate) []domain.DisplayPrice
}

type AmountParser interface {
	ParseAmounts(raw []string) ([]decimal.Decimal, error)
}

type ChangeFeed interface {
	Subscribe() (<-chan domain.RateChange, func())
}

type AdminService interface {
	Activate(ctx context.Context, in rate.ActivateRateInput) (domain.ExchangeRate, error)
	Deactivate(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// Handler serves storefront reads. Every response is built from the cache, never from the source.
type Handler struct {
	rates     RateReader
	projector PriceProjector
	amounts   AmountParser
	feed      ChangeFeed
}

func NewRateHandler(rates RateReader, projector PriceProjector, amounts AmountParser, feed ChangeFeed) *Handler {
	return &Handler{rates: rates, projector: projector, amounts: amounts, feed: feed}
}

type ExchangeRateResponse struct {
	ID              uuid.UUID       `json:"id"`
	BCVRate         decimal.Decimal `json:"bcv_rate" swaggertype:"string" example:"36.5"`
	BlackMarketRate decimal.Decimal `json:"black_market_rate" swaggertype:"string" example:"55.1"`
	IsActive        bool            `json:"is_active"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Signature       string          `json:"signature" example:"36.5|55.1"`
}

func toRateResponse(r domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ID:              r.ID,
		BCVRate:         r.BCVRate,
		BlackMarketRate: r.BlackMarketRate,
		IsActive:        r.IsActive,
		UpdatedAt:       r.UpdatedAt,
		Signature:       r.Signature(),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}
