package repo

import (
	"context"

	dom "storefront/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type RateRepo interface {
	List(ctx context.Context) ([]dom.ExchangeRate, error)
	Get(ctx context.Context, currency string) (dom.ExchangeRate, error)
	Upsert(ctx context.Context, rate dom.ExchangeRate) (dom.ExchangeRate, error)
}

type PGRateRepo struct {
	db *pgxpool.Pool
}

func NewPGRateRepo(db *pgxpool.Pool) *PGRateRepo {
	return &PGRateRepo{db: db}
}

// Rates travel as text so NUMERIC precision survives the round trip.
func scanRate(row rowScanner) (dom.ExchangeRate, error) {
	var (
		rt  dom.ExchangeRate
		raw string
	)
	if err := row.Scan(&rt.Currency, &raw, &rt.UpdatedAt); err != nil {
		return dom.ExchangeRate{}, err
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return dom.ExchangeRate{}, err
	}
	rt.Rate = d
	return rt, nil
}

func (r *PGRateRepo) List(ctx context.Context) ([]dom.ExchangeRate, error) {
	rows, err := r.db.Query(ctx, `SELECT currency, rate::text, updated_at FROM exchange_rates ORDER BY currency`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanRate)
}

func (r *PGRateRepo) Get(ctx context.Context, currency string) (dom.ExchangeRate, error) {
	return scanRate(r.db.QueryRow(ctx,
		`SELECT currency, rate::text, updated_at FROM exchange_rates WHERE currency = $1`, currency))
}

func (r *PGRateRepo) Upsert(ctx context.Context, rate dom.ExchangeRate) (dom.ExchangeRate, error) {
	query := `
		INSERT INTO exchange_rates (currency, rate, updated_at)
		VALUES ($1, $2::numeric, NOW())
		ON CONFLICT (currency) DO UPDATE SET rate = EXCLUDED.rate, updated_at = NOW()
		RETURNING currency, rate::text, updated_at`
	return scanRate(r.db.QueryRow(ctx, query, rate.Currency, rate.Rate.String()))
}
