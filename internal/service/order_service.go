package service

import (
	"context"
	"fmt"
	"strings"

	dom "storefront/internal/domain"
	"storefront/internal/repo"
)

// OrderDetail is an order with its payments and status history.
type OrderDetail struct {
	Order    dom.Order
	Payments []dom.Payment
	History  []dom.StatusChange
	Paid     int64
}

// Balance is the amount still owed on the order.
func (d OrderDetail) Balance() int64 {
	if b := d.Order.Total - d.Paid; b > 0 {
		return b
	}
	return 0
}

// ItemInput is one line of a manually created order.
type ItemInput struct {
	ProductID int64
	Quantity  int
}

type OrderService struct {
	repo     repo.OrderRepo
	products repo.ProductRepo
	users    repo.UserRepo
	currency string
}

func NewOrderService(r repo.OrderRepo, products repo.ProductRepo, users repo.UserRepo, baseCurrency string) *OrderService {
	return &OrderService{repo: r, products: products, users: users, currency: baseCurrency}
}

// Create records an order on behalf of a customer, priced at current catalog prices.
// Stock is not reserved; manual orders are for services and phone sales.
func (s *OrderService) Create(ctx context.Context, customerID int64, lines []ItemInput, notes string) (dom.Order, error) {
	if len(lines) == 0 {
		return dom.Order{}, fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}
	if _, err := s.users.GetByID(ctx, customerID); err != nil {
		return dom.Order{}, mapRepoErr(err)
	}
	items := make([]dom.OrderItem, 0, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return dom.Order{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}
		p, err := s.products.GetByID(ctx, l.ProductID, false)
		if err != nil {
			return dom.Order{}, mapRepoErr(err)
		}
		items = append(items, dom.OrderItem{ProductID: p.ID, Name: p.Name, UnitPrice: p.Price, Quantity: l.Quantity})
	}
	if err := dom.CheckItems(items); err != nil {
		return dom.Order{}, err
	}
	o, err := s.repo.Create(ctx, dom.NewOrder(customerID, s.currency, items, strings.TrimSpace(notes)))
	return o, mapRepoErr(err)
}

func (s *OrderService) List(ctx context.Context, f dom.OrderFilter) ([]dom.Order, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: status", ErrInvalidInput)
	}
	return s.repo.List(ctx, f)
}

// Get loads the full order view for the back office.
func (s *OrderService) Get(ctx context.Context, id int64) (OrderDetail, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return OrderDetail{}, mapRepoErr(err)
	}
	payments, err := s.repo.Payments(ctx, id)
	if err != nil {
		return OrderDetail{}, err
	}
	history, err := s.repo.History(ctx, id)
	if err != nil {
		return OrderDetail{}, err
	}
	d := OrderDetail{Order: o, Payments: payments, History: history}
	for _, p := range payments {
		if p.Status == dom.PaymentCompleted {
			d.Paid += p.Amount
		}
	}
	return d, nil
}

// GetForCustomer hides other customers' orders behind ErrNotFound.
func (s *OrderService) GetForCustomer(ctx context.Context, customerID, id int64) (OrderDetail, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return OrderDetail{}, err
	}
	if d.Order.CustomerID != customerID {
		return OrderDetail{}, ErrNotFound
	}
	return d, nil
}

func (s *OrderService) ListForCustomer(ctx context.Context, customerID int64, limit, offset int) ([]dom.Order, error) {
	return s.repo.List(ctx, dom.OrderFilter{CustomerID: customerID, Limit: limit, Offset: offset})
}

func (s *OrderService) ChangeStatus(ctx context.Context, actorID, id int64, to dom.OrderStatus, note string) (dom.Order, error) {
	if !to.Valid() {
		return dom.Order{}, fmt.Errorf("%w: status", ErrInvalidInput)
	}
	o, err := s.repo.ChangeStatus(ctx, id, to, &actorID, strings.TrimSpace(note))
	return o, mapRepoErr(err)
}

// RecordPayment stores a payment; completed payments advance the order status.
func (s *OrderService) RecordPayment(ctx context.Context, actorID int64, p dom.Payment) (dom.Order, dom.Payment, error) {
	if p.Status == "" {
		p.Status = dom.PaymentCompleted
	}
	if !p.Method.Valid() || !p.Status.Valid() || p.Status == dom.PaymentFailed {
		return dom.Order{}, dom.Payment{}, fmt.Errorf("%w: method or status", ErrInvalidInput)
	}
	p.Reference = strings.TrimSpace(p.Reference)
	p.RecordedBy = &actorID
	o, saved, err := s.repo.RecordPayment(ctx, p)
	if err != nil {
		return dom.Order{}, dom.Payment{}, mapRepoErr(err)
	}
	return o, saved, nil
}

// ConfirmPayment settles a pending payment as completed or failed.
func (s *OrderService) ConfirmPayment(ctx context.Context, actorID, orderID, paymentID int64, to dom.PaymentStatus) (dom.Order, dom.Payment, error) {
	if to != dom.PaymentCompleted && to != dom.PaymentFailed {
		return dom.Order{}, dom.Payment{}, fmt.Errorf("%w: status must be completed or failed", ErrInvalidInput)
	}
	o, saved, err := s.repo.ConfirmPayment(ctx, orderID, paymentID, to, &actorID)
	if err != nil {
		return dom.Order{}, dom.Payment{}, mapRepoErr(err)
	}
	return o, saved, nil
}
