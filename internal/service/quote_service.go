package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	dom "storefront/internal/domain"
	"storefront/internal/repo"
)

type QuoteService struct {
	repo     repo.QuoteRepo
	products repo.ProductRepo
	currency string
	now      Clock
}

func NewQuoteService(r repo.QuoteRepo, products repo.ProductRepo, baseCurrency string) *QuoteService {
	return &QuoteService{repo: r, products: products, currency: baseCurrency, now: systemClock}
}

// Request opens a quote with the customer's first message.
func (s *QuoteService) Request(ctx context.Context, customerID, productID int64, qty int, message string) (dom.Quote, error) {
	message = strings.TrimSpace(message)
	if qty <= 0 || qty > dom.MaxQuantity {
		return dom.Quote{}, fmt.Errorf("%w: %d", dom.ErrInvalidQuantity, qty)
	}
	if message == "" {
		return dom.Quote{}, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if _, err := s.products.GetByID(ctx, productID, false); err != nil {
		return dom.Quote{}, mapRepoErr(err)
	}
	q, err := s.repo.Create(ctx,
		dom.Quote{CustomerID: customerID, ProductID: productID, Quantity: qty, Status: dom.QuoteRequested},
		dom.QuoteMessage{AuthorID: customerID, Body: message})
	return q, mapRepoErr(err)
}

// List returns quotes; customerID 0 lists everyone's (admin).
func (s *QuoteService) List(ctx context.Context, customerID int64, status dom.QuoteStatus) ([]dom.Quote, error) {
	return s.repo.List(ctx, customerID, status)
}

// Get returns a quote with its thread. Non-admins only see their own.
func (s *QuoteService) Get(ctx context.Context, userID int64, admin bool, id int64) (dom.Quote, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.Quote{}, mapRepoErr(err)
	}
	if !admin && q.CustomerID != userID {
		return dom.Quote{}, ErrNotFound
	}
	return q, nil
}

func (s *QuoteService) PostMessage(ctx context.Context, userID int64, admin bool, id int64, body string) (dom.QuoteMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return dom.QuoteMessage{}, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if _, err := s.Get(ctx, userID, admin, id); err != nil {
		return dom.QuoteMessage{}, err
	}
	m, err := s.repo.AddMessage(ctx, dom.QuoteMessage{QuoteID: id, AuthorID: userID, FromAdmin: admin, Body: body})
	return m, mapRepoErr(err)
}

// Offer prices the quote. A nil expiry defaults to seven days from now.
func (s *QuoteService) Offer(ctx context.Context, id, unitPrice int64, expiresAt *time.Time) (dom.Quote, error) {
	if err := dom.CheckAmount(unitPrice); err != nil {
		return dom.Quote{}, err
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.Quote{}, mapRepoErr(err)
	}
	if _, err := dom.LineTotal(unitPrice, current.Quantity); err != nil {
		return dom.Quote{}, err
	}
	now := s.now()
	exp := now.Add(dom.DefaultOfferValidity)
	if expiresAt != nil {
		if !expiresAt.After(now) {
			return dom.Quote{}, fmt.Errorf("%w: offer expiry must be in the future", ErrInvalidInput)
		}
		exp = *expiresAt
	}
	q, err := s.repo.Offer(ctx, id, unitPrice, exp)
	return q, mapRepoErr(err)
}

// Accept turns the current offer into an order.
func (s *QuoteService) Accept(ctx context.Context, customerID, id int64) (dom.Quote, dom.Order, error) {
	q, o, err := s.repo.Accept(ctx, id, customerID, s.currency, s.now())
	if err != nil {
		return dom.Quote{}, dom.Order{}, mapRepoErr(err)
	}
	return q, o, nil
}

func (s *QuoteService) Reject(ctx context.Context, customerID, id int64) (dom.Quote, error) {
	q, err := s.repo.Reject(ctx, id, customerID)
	return q, mapRepoErr(err)
}
