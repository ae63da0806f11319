package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"storefront/internal/cache"
	dom "storefront/internal/domain"
	"storefront/internal/logger"
	"storefront/internal/repo"

	"golang.org/x/sync/singleflight"
)

// ProductInput carries fields for create; nil pointers in a patch leave the field unchanged.
type ProductInput struct {
	Kind        *dom.ProductKind
	SKU         *string
	Name        *string
	Description *string
	Price       *int64
	Stock       *int
	WeightGrams *int
	Active      *bool
}

type CatalogService struct {
	repo  repo.ProductRepo
	cache *cache.CatalogCache
	log   logger.Logger
	sf    singleflight.Group
}

// NewCatalogService creates a CatalogService. If c is nil, caching is disabled.
func NewCatalogService(r repo.ProductRepo, c *cache.CatalogCache, log logger.Logger) *CatalogService {
	return &CatalogService{repo: r, cache: c, log: log}
}

// List returns catalog entries. Only public listings go through the cache.
func (s *CatalogService) List(ctx context.Context, f dom.ProductFilter) ([]dom.Product, error) {
	f = f.Normalize()
	f.Query = strings.TrimSpace(f.Query)
	if f.Kind != "" && !f.Kind.Valid() {
		return nil, fmt.Errorf("%w: kind", ErrInvalidInput)
	}
	if s.cache == nil || f.IncludeInactive {
		return s.repo.List(ctx, f)
	}
	v, err, _ := s.sf.Do(cache.ListKey(f), func() (interface{}, error) {
		if list, err := s.cache.GetList(ctx, f); err == nil && list != nil {
			return list, nil
		}
		list, err := s.repo.List(ctx, f)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetList(ctx, f, list); err != nil {
			s.log.Warn("catalog cache set failed", "error", err)
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Product), nil
}

func (s *CatalogService) Get(ctx context.Context, id int64, includeInactive bool) (dom.Product, error) {
	if s.cache == nil || includeInactive {
		p, err := s.repo.GetByID(ctx, id, includeInactive)
		return p, mapRepoErr(err)
	}
	v, err, _ := s.sf.Do("product:"+strconv.FormatInt(id, 10), func() (interface{}, error) {
		if p, err := s.cache.GetProduct(ctx, id); err == nil && p != nil {
			return *p, nil
		}
		p, err := s.repo.GetByID(ctx, id, false)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetProduct(ctx, p)
		return p, nil
	})
	if err != nil {
		return dom.Product{}, mapRepoErr(err)
	}
	return v.(dom.Product), nil
}

func (s *CatalogService) Create(ctx context.Context, in ProductInput) (dom.Product, error) {
	p := dom.Product{Kind: dom.KindProduct, Active: true}
	applyProductInput(&p, in)
	if err := validateProduct(p); err != nil {
		return dom.Product{}, err
	}
	out, err := s.repo.Create(ctx, p)
	if err != nil {
		return dom.Product{}, mapRepoErr(err)
	}
	s.invalidateCache(ctx)
	return out, nil
}

// Update applies a partial change to an existing entry, active or not.
func (s *CatalogService) Update(ctx context.Context, id int64, in ProductInput) (dom.Product, error) {
	existing, err := s.repo.GetByID(ctx, id, true)
	if err != nil {
		return dom.Product{}, mapRepoErr(err)
	}
	applyProductInput(&existing, in)
	if err := validateProduct(existing); err != nil {
		return dom.Product{}, err
	}
	out, err := s.repo.Update(ctx, existing)
	if err != nil {
		return dom.Product{}, mapRepoErr(err)
	}
	s.invalidateCache(ctx)
	return out, nil
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return mapRepoErr(err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *CatalogService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.log.Warn("catalog cache invalidation failed", "error", err)
	}
}

func applyProductInput(p *dom.Product, in ProductInput) {
	if in.Kind != nil {
		p.Kind = *in.Kind
	}
	if in.SKU != nil {
		p.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.WeightGrams != nil {
		p.WeightGrams = *in.WeightGrams
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	if !p.Stocked() {
		p.Stock = 0
	}
}

func validateProduct(p dom.Product) error {
	switch {
	case !p.Kind.Valid():
		return fmt.Errorf("%w: kind must be product or service", ErrInvalidInput)
	case p.SKU == "":
		return fmt.Errorf("%w: sku is required", ErrInvalidInput)
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case p.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	case p.Stock < 0 || p.WeightGrams < 0:
		return fmt.Errorf("%w: stock and weight must not be negative", ErrInvalidInput)
	}
	return nil
}
