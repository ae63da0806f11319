package service

import (
	"context"
	"fmt"
	"strings"

	dom "storefront/internal/domain"
	"storefront/internal/repo"
)

type ReturnService struct {
	repo   repo.ReturnRepo
	orders repo.OrderRepo
}

func NewReturnService(r repo.ReturnRepo, orders repo.OrderRepo) *ReturnService {
	return &ReturnService{repo: r, orders: orders}
}

// Request opens a return for the customer's delivered order. One open request per order.
func (s *ReturnService) Request(ctx context.Context, customerID, orderID int64, reason string) (dom.ReturnRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return dom.ReturnRequest{}, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return dom.ReturnRequest{}, mapRepoErr(err)
	}
	if o.CustomerID != customerID {
		return dom.ReturnRequest{}, ErrNotFound
	}
	if err := dom.CanRequestReturn(o, customerID); err != nil {
		return dom.ReturnRequest{}, err
	}
	rr, err := s.repo.Create(ctx, dom.ReturnRequest{OrderID: orderID, CustomerID: customerID, Reason: reason})
	return rr, mapRepoErr(err)
}

// List returns requests; customerID 0 lists all (admin).
func (s *ReturnService) List(ctx context.Context, customerID int64, status dom.ReturnStatus) ([]dom.ReturnRequest, error) {
	return s.repo.List(ctx, customerID, status)
}

// Resolve approves (refunding the order) or rejects an open request.
func (s *ReturnService) Resolve(ctx context.Context, actorID, id int64, approve bool, note string) (dom.ReturnRequest, error) {
	rr, err := s.repo.Resolve(ctx, id, approve, strings.TrimSpace(note), &actorID)
	return rr, mapRepoErr(err)
}
