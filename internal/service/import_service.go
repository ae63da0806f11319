package service

import (
	"context"
	"fmt"

	dom "storefront/internal/domain"
	"storefront/internal/repo"

	"github.com/shopspring/decimal"
)

// ImportRequest describes goods either by catalog product or by explicit price and weight.
// Nil rate fields fall back to the configured defaults.
type ImportRequest struct {
	ProductID *int64
	UnitPrice *decimal.Decimal
	WeightKg  *decimal.Decimal
	Quantity  int64
	Currency  string

	FreightPerKg  *decimal.Decimal
	InsuranceRate *decimal.Decimal
	DutyRate      *decimal.Decimal
	VATRate       *decimal.Decimal
	HandlingFee   *decimal.Decimal
}

// ImportResult is a simulation plus its total in the requested display currency.
type ImportResult struct {
	Simulation dom.ImportSimulation
	Base       string
	Converted  *dom.Money
}

type ImportService struct {
	products repo.ProductRepo
	sims     repo.ImportSimRepo
	pricing  *PricingService
	defaults dom.ImportRates
}

func NewImportService(products repo.ProductRepo, sims repo.ImportSimRepo, pricing *PricingService, defaults dom.ImportRates) *ImportService {
	return &ImportService{products: products, sims: sims, pricing: pricing, defaults: defaults}
}

// Simulate computes the landed cost. Runs by signed-in users (userID != 0) are stored.
func (s *ImportService) Simulate(ctx context.Context, userID int64, req ImportRequest) (ImportResult, error) {
	base := s.pricing.Base()
	in := dom.ImportInput{Quantity: req.Quantity, Rates: s.rates(req)}

	switch {
	case req.ProductID != nil:
		p, err := s.products.GetByID(ctx, *req.ProductID, false)
		if err != nil {
			return ImportResult{}, mapRepoErr(err)
		}
		price, err := dom.ToMajor(p.Price, base)
		if err != nil {
			return ImportResult{}, err
		}
		in.UnitPrice = price
		in.WeightKg = decimal.New(int64(p.WeightGrams), -3)
	case req.UnitPrice != nil && req.WeightKg != nil:
		in.UnitPrice = *req.UnitPrice
		in.WeightKg = *req.WeightKg
	default:
		return ImportResult{}, fmt.Errorf("%w: product_id or unit_price and weight_kg required", ErrInvalidInput)
	}
	if req.UnitPrice != nil && req.ProductID != nil {
		in.UnitPrice = *req.UnitPrice
	}

	breakdown, err := dom.SimulateImport(in)
	if err != nil {
		return ImportResult{}, err
	}
	res := ImportResult{
		Base: base,
		Simulation: dom.ImportSimulation{
			UserID:    userID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			Rates:     in.Rates,
			Breakdown: breakdown,
		},
	}

	if req.Currency != "" {
		total, err := dom.ToMinor(breakdown.Total, base)
		if err != nil {
			return ImportResult{}, err
		}
		m, err := s.pricing.Convert(ctx, total, req.Currency)
		if err != nil {
			return ImportResult{}, err
		}
		res.Converted = &m
	}

	if userID != 0 {
		saved, err := s.sims.Create(ctx, res.Simulation)
		if err != nil {
			return ImportResult{}, mapRepoErr(err)
		}
		res.Simulation = saved
	}
	return res, nil
}

func (s *ImportService) History(ctx context.Context, userID int64, limit int) ([]dom.ImportSimulation, error) {
	return s.sims.ListByUser(ctx, userID, limit)
}

// Defaults are the configured rates used when a request does not override them.
func (s *ImportService) Defaults() dom.ImportRates { return s.defaults }

func (s *ImportService) rates(req ImportRequest) dom.ImportRates {
	r := s.defaults
	pick := func(dst *decimal.Decimal, v *decimal.Decimal) {
		if v != nil {
			*dst = *v
		}
	}
	pick(&r.FreightPerKg, req.FreightPerKg)
	pick(&r.InsuranceRate, req.InsuranceRate)
	pick(&r.DutyRate, req.DutyRate)
	pick(&r.VATRate, req.VATRate)
	pick(&r.HandlingFee, req.HandlingFee)
	return r
}
