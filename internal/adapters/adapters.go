package adapters

import (
	"context"
	"storefx/internal/domain"

	"github.com/shopspring/decimal"
)

// RateSource returns the single active exchange rate or domain.ErrNoActiveRate.
type RateSource interface {
	GetActive(ctx context.Context) (domain.ExchangeRate, error)
}

type RateWriter interface {
	Activate(ctx context.Context, bcvRate, blackMarketRate decimal.Decimal) (domain.ExchangeRate, error)
	DeactivateActive(ctx context.Context) error
}

// ChangeNotifier receives every detected rate change. Implementations must not block.
type ChangeNotifier interface {
	NotifyRateChanged(change domain.RateChange)
}

// ProjectionCache memoizes display prices keyed by amount and rate signature.
type ProjectionCache interface {
	Get(key string) (domain.DisplayPrice, bool)
	Set(key string, price domain.DisplayPrice)
}
