package service

import (
	"context"
	"fmt"
	"strings"

	dom "storefront/internal/domain"
	"storefront/internal/repo"
)

type CartService struct {
	repo     repo.CartRepo
	products repo.ProductRepo
	currency string
}

func NewCartService(r repo.CartRepo, products repo.ProductRepo, baseCurrency string) *CartService {
	return &CartService{repo: r, products: products, currency: baseCurrency}
}

func (s *CartService) Get(ctx context.Context, userID int64) (dom.Cart, error) {
	lines, err := s.repo.Lines(ctx, userID)
	if err != nil {
		return dom.Cart{}, err
	}
	return dom.Cart{UserID: userID, Lines: lines}, nil
}

// Add accumulates qty onto the product's line.
func (s *CartService) Add(ctx context.Context, userID, productID int64, qty int) (dom.Cart, error) {
	if qty <= 0 || qty > dom.MaxQuantity {
		return dom.Cart{}, fmt.Errorf("%w: %d", dom.ErrInvalidQuantity, qty)
	}
	p, err := s.products.GetByID(ctx, productID, false)
	if err != nil {
		return dom.Cart{}, mapRepoErr(err)
	}
	if !p.Active || p.DeletedAt != nil {
		return dom.Cart{}, dom.ErrProductUnavailable
	}
	lines, err := s.repo.Lines(ctx, userID)
	if err != nil {
		return dom.Cart{}, err
	}
	if err := dom.CanAddToCart(lines, productID, qty); err != nil {
		return dom.Cart{}, err
	}
	if err := s.repo.AddItem(ctx, userID, productID, qty); err != nil {
		return dom.Cart{}, mapRepoErr(err)
	}
	return s.Get(ctx, userID)
}

// SetQuantity replaces the line quantity; zero removes the line.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID int64, qty int) (dom.Cart, error) {
	var err error
	switch {
	case qty < 0 || qty > dom.MaxQuantity:
		return dom.Cart{}, fmt.Errorf("%w: %d", dom.ErrInvalidQuantity, qty)
	case qty == 0:
		err = s.repo.RemoveItem(ctx, userID, productID)
	default:
		err = s.repo.SetQuantity(ctx, userID, productID, qty)
	}
	if err != nil {
		return dom.Cart{}, mapRepoErr(err)
	}
	return s.Get(ctx, userID)
}

func (s *CartService) Remove(ctx context.Context, userID, productID int64) (dom.Cart, error) {
	if err := s.repo.RemoveItem(ctx, userID, productID); err != nil {
		return dom.Cart{}, mapRepoErr(err)
	}
	return s.Get(ctx, userID)
}

func (s *CartService) Clear(ctx context.Context, userID int64) error {
	return s.repo.Clear(ctx, userID)
}

// Checkout turns the cart into a pending order. Stock checks and decrements happen in the repo transaction.
func (s *CartService) Checkout(ctx context.Context, userID int64, notes string) (dom.Order, error) {
	o, err := s.repo.Checkout(ctx, userID, s.currency, strings.TrimSpace(notes))
	if err != nil {
		return dom.Order{}, mapRepoErr(err)
	}
	return o, nil
}
