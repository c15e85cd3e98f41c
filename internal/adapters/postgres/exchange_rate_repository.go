package postgres

import (
	"context"
	"errors"
	"fmt"
	"storefx/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ExchangeRateRepository is the database RateSource and the admin RateWriter.
// Numerics cross the wire as text so no precision is lost on the way to decimal.Decimal.
type ExchangeRateRepository struct {
	pool *pgxpool.Pool
}

func (r *ExchangeRateRepository) GetActive(ctx context.Context) (domain.ExchangeRate, error) {
	const q = `
		select id, bcv_rate::text, black_market_rate::text, is_active, updated_at
		from exchange_rates
		where is_active
		order by updated_at desc
		limit 1;
	`

	rate, err := scanRate(r.pool.QueryRow(ctx, q))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ExchangeRate{}, domain.ErrNoActiveRate
		}
		return domain.ExchangeRate{}, fmt.Errorf("failed to select active exchange rate: %w", err)
	}
	return rate, nil
}

// Activate stores a new active rate and deactivates the previous one in a single transaction.
func (r *ExchangeRateRepository) Activate(ctx context.Context, bcvRate, blackMarketRate decimal.Decimal) (domain.ExchangeRate, error) {
	const deactivateQ = `update exchange_rates set is_active = false, updated_at = now() where is_active;`
	const insertQ = `
		insert into exchange_rates (id, bcv_rate, black_market_rate, is_active, updated_at)
		values ($1, $2::text::numeric, $3::text::numeric, true, now())
		returning id, bcv_rate::text, black_market_rate::text, is_active, updated_at;
	`

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, deactivateQ); err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("failed to deactivate current exchange rate: %w", err)
	}

	rate, err := scanRate(tx.QueryRow(ctx, insertQ, uuid.New(), bcvRate.String(), blackMarketRate.String()))
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("failed to insert exchange rate: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return rate, nil
}

// DeactivateActive leaves the store without an active rate. It is a no-op when none is active.
func (r *ExchangeRateRepository) DeactivateActive(ctx context.Context) error {
	const q = `update exchange_rates set is_active = false, updated_at = now() where is_active;`

	if _, err := r.pool.Exec(ctx, q); err != nil {
		return fmt.Errorf("failed to deactivate exchange rate: %w", err)
	}
	return nil
}

func scanRate(row pgx.Row) (domain.ExchangeRate, error) {
	var (
		rate                domain.ExchangeRate
		bcvRaw, blackMktRaw string
	)
	if err := row.Scan(&rate.ID, &bcvRaw, &blackMktRaw, &rate.IsActive, &rate.UpdatedAt); err != nil {
		return domain.ExchangeRate{}, err
	}

	var err error
	if rate.BCVRate, err = decimal.NewFromString(bcvRaw); err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("%w: bcv_rate %q", domain.ErrMalformedRate, bcvRaw)
	}
	if rate.BlackMarketRate, err = decimal.NewFromString(blackMktRaw); err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("%w: black_market_rate %q", domain.ErrMalformedRate, blackMktRaw)
	}
	return rate, nil
}

func NewExchangeRateRepository(pool *pgxpool.Pool) *ExchangeRateRepository {
	return &ExchangeRateRepository{pool: pool}
}
