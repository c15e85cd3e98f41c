package rate

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const MaxAmountsPerRequest = 100

// MaxAmountUSD is the largest price accepted for projection.
var MaxAmountUSD = decimal.New(1, 12)

var (
	ErrAmountRequired     = errors.New("at least one amount is required")
	ErrAmountInvalid      = errors.New("amount must be a decimal number")
	ErrAmountNegative     = errors.New("amount must not be negative")
	ErrAmountTooLarge     = fmt.Errorf("amount must not exceed %s", MaxAmountUSD.String())
	ErrTooManyAmounts     = fmt.Errorf("at most %d amounts per request", MaxAmountsPerRequest)
	ErrInvalidRateInput   = errors.New("invalid exchange rate input")
	ErrRateMustBePositive = errors.New("exchange rates must be positive")
)

type ActivateRateInput struct {
	BCVRate         string `json:"bcv_rate" validate:"required,numeric"`
	BlackMarketRate string `json:"black_market_rate" validate:"required,numeric"`
}

type RateValidator struct {
	validate *validator.Validate
}

// ValidateActivation checks an admin payload and returns both rates as decimals.
func (v *RateValidator) ValidateActivation(in ActivateRateInput) (bcv, blackMarket decimal.Decimal, err error) {
	if err = v.validate.Struct(in); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidRateInput, err.Error())
	}
	if bcv, err = decimal.NewFromString(in.BCVRate); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: bcv_rate: %s", ErrInvalidRateInput, err.Error())
	}
	if blackMarket, err = decimal.NewFromString(in.BlackMarketRate); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: black_market_rate: %s", ErrInvalidRateInput, err.Error())
	}
	if !bcv.IsPositive() || !blackMarket.IsPositive() {
		return decimal.Zero, decimal.Zero, ErrRateMustBePositive
	}
	return bcv, blackMarket, nil
}

// ParseAmounts parses USD amounts taken from a query string. Zero is a valid price.
func (v *RateValidator) ParseAmounts(raw []string) ([]decimal.Decimal, error) {
	if len(raw) == 0 {
		return nil, ErrAmountRequired
	}
	if len(raw) > MaxAmountsPerRequest {
		return nil, ErrTooManyAmounts
	}

	amounts := make([]decimal.Decimal, 0, len(raw))
	for _, s := range raw {
		if s == "" {
			return nil, ErrAmountRequired
		}
		amount, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrAmountInvalid, s)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: %q", ErrAmountNegative, s)
		}
		if amount.GreaterThan(MaxAmountUSD) {
			return nil, fmt.Errorf("%w: %q", ErrAmountTooLarge, s)
		}
		amounts = append(amounts, amount)
	}
	return amounts, nil
}

func NewValidator() *RateValidator {
	return &RateValidator{validate: validator.New()}
}
