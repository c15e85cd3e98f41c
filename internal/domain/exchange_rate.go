package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRate is the record an administrator marks as authoritative for local prices.
// BCVRate is the official rate, BlackMarketRate the parallel market one; both are
// expressed as local currency units per USD.
type ExchangeRate struct {
	ID              uuid.UUID       `json:"id"`
	BCVRate         decimal.Decimal `json:"bcv_rate"`
	BlackMarketRate decimal.Decimal `json:"black_market_rate"`
	IsActive        bool            `json:"is_active"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Signature is the change detection key. It deliberately ignores ID and UpdatedAt:
// a record rewritten with the same figures is not a change.
func (r ExchangeRate) Signature() string {
	return r.BCVRate.String() + "|" + r.BlackMarketRate.String()
}

// Validate reports records that cannot be used to price anything.
func (r ExchangeRate) Validate() error {
	switch {
	case !r.IsActive:
		return fmt.Errorf("%w: record is not active", ErrMalformedRate)
	case !r.BCVRate.IsPositive():
		return fmt.Errorf("%w: bcv rate must be positive, got %s", ErrMalformedRate, r.BCVRate)
	case !r.BlackMarketRate.IsPositive():
		return fmt.Errorf("%w: black market rate must be positive, got %s", ErrMalformedRate, r.BlackMarketRate)
	case r.UpdatedAt.IsZero():
		return fmt.Errorf("%w: updated_at is missing", ErrMalformedRate)
	}
	return nil
}
