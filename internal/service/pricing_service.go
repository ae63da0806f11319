package service

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/cache"
	dom "storefront/internal/domain"
	"storefront/internal/repo"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// PricingService converts base-currency amounts using stored exchange rates.
type PricingService struct {
	repo  repo.RateRepo
	cache *cache.RateCache
	base  string
	now   Clock
	sf    singleflight.Group
}

func NewPricingService(r repo.RateRepo, c *cache.RateCache, baseCurrency string) *PricingService {
	return &PricingService{repo: r, cache: c, base: baseCurrency, now: systemClock}
}

// Base is the currency every stored price uses.
func (s *PricingService) Base() string { return s.base }

func (s *PricingService) Rates(ctx context.Context) ([]dom.ExchangeRate, error) {
	if s.cache == nil {
		return s.repo.List(ctx)
	}
	v, err, _ := s.sf.Do("rates", func() (interface{}, error) {
		if list, err := s.cache.Get(ctx); err == nil && list != nil {
			return list, nil
		}
		list, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		_ = s.cache.Set(ctx, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.ExchangeRate), nil
}

// SetRate stores the number of code units per one base unit.
func (s *PricingService) SetRate(ctx context.Context, code string, rate decimal.Decimal) (dom.ExchangeRate, error) {
	code, err := dom.NormalizeCurrency(code)
	if err != nil {
		return dom.ExchangeRate{}, err
	}
	if code == s.base {
		return dom.ExchangeRate{}, fmt.Errorf("%w: %s is the base currency", ErrInvalidInput, code)
	}
	if !rate.IsPositive() {
		return dom.ExchangeRate{}, fmt.Errorf("%w: rate must be positive", ErrInvalidInput)
	}
	out, err := s.repo.Upsert(ctx, dom.ExchangeRate{Currency: code, Rate: rate, UpdatedAt: s.now()})
	if err != nil {
		return dom.ExchangeRate{}, err
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
	return out, nil
}

// Rate returns the rate for code; the base currency converts 1:1.
func (s *PricingService) Rate(ctx context.Context, code string) (dom.ExchangeRate, error) {
	code, err := dom.NormalizeCurrency(code)
	if err != nil {
		return dom.ExchangeRate{}, err
	}
	if code == s.base {
		return dom.ExchangeRate{Currency: code, Rate: decimal.NewFromInt(1)}, nil
	}
	if s.cache == nil {
		r, err := s.repo.Get(ctx, code)
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.ExchangeRate{}, dom.ErrUnknownCurrency
		}
		return r, err
	}
	rates, err := s.Rates(ctx)
	if err != nil {
		return dom.ExchangeRate{}, err
	}
	for _, r := range rates {
		if r.Currency == code {
			return r, nil
		}
	}
	return dom.ExchangeRate{}, dom.ErrUnknownCurrency
}

// Convert turns an amount in base minor units into minor units of code.
func (s *PricingService) Convert(ctx context.Context, amount int64, code string) (dom.Money, error) {
	rate, err := s.Rate(ctx, code)
	if err != nil {
		return dom.Money{}, err
	}
	return dom.Convert(amount, s.base, rate)
}

// Converter returns a function converting many amounts with one rate lookup.
func (s *PricingService) Converter(ctx context.Context, code string) (func(int64) (dom.Money, error), error) {
	rate, err := s.Rate(ctx, code)
	if err != nil {
		return nil, err
	}
	return func(amount int64) (dom.Money, error) {
		return dom.Convert(amount, s.base, rate)
	}, nil
}
