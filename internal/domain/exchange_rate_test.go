package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func validRate() ExchangeRate {
	return ExchangeRate{
		ID:              uuid.New(),
		BCVRate:         decimal.RequireFromString("36.50"),
		BlackMarketRate: decimal.RequireFromString("55.10"),
		IsActive:        true,
		UpdatedAt:       time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestExchangeRate_Signature_IgnoresTimestampAndID(t *testing.T) {
	a := validRate()
	b := validRate()
	b.UpdatedAt = a.UpdatedAt.Add(time.Hour)

	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, a.Signature(), b.Signature())
}

func TestExchangeRate_Signature_NormalizesTrailingZeros(t *testing.T) {
	a := validRate()
	b := validRate()
	b.BCVRate = decimal.RequireFromString("36.5")
	b.BlackMarketRate = decimal.RequireFromString("55.1000")

	require.Equal(t, "36.5|55.1", a.Signature())
	require.Equal(t, a.Signature(), b.Signature())
}

func TestExchangeRate_Signature_DiffersOnEitherFigure(t *testing.T) {
	base := validRate()

	bcv := validRate()
	bcv.BCVRate = decimal.RequireFromString("36.51")
	black := validRate()
	black.BlackMarketRate = decimal.RequireFromString("55.2")

	require.NotEqual(t, base.Signature(), bcv.Signature())
	require.NotEqual(t, base.Signature(), black.Signature())
}

func TestExchangeRate_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *ExchangeRate)
		ok     bool
	}{
		{name: "valid", mutate: func(r *ExchangeRate) {}, ok: true},
		{name: "inactive", mutate: func(r *ExchangeRate) { r.IsActive = false }},
		{name: "zero bcv", mutate: func(r *ExchangeRate) { r.BCVRate = decimal.Zero }},
		{name: "negative black", mutate: func(r *ExchangeRate) { r.BlackMarketRate = decimal.NewFromInt(-1) }},
		{name: "missing updated_at", mutate: func(r *ExchangeRate) { r.UpdatedAt = time.Time{} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validRate()
			tc.mutate(&r)
			err := r.Validate()
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.True(t, errors.Is(err, ErrMalformedRate))
		})
	}
}
