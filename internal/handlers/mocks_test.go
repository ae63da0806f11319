package handlers

import (
	"context"
	"time"

	"storefront/internal/auth"
	dom "storefront/internal/domain"
	"storefront/internal/service"
	"storefront/internal/tasks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockSessions struct{ mock.Mock }

func (m *mockSessions) Create(ctx context.Context, sess auth.Session) (string, error) {
	args := m.Called(ctx, sess)
	return args.String(0), args.Error(1)
}

func (m *mockSessions) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSessions) TTL() time.Duration { return time.Hour }

type mockUsers struct{ mock.Mock }

func (m *mockUsers) ValidateCredentials(ctx context.Context, email, password string) (dom.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(dom.User), args.Error(1)
}

func (m *mockUsers) Register(ctx context.Context, email, name, password string) (dom.User, error) {
	args := m.Called(ctx, email, name, password)
	return args.Get(0).(dom.User), args.Error(1)
}

func (m *mockUsers) Get(ctx context.Context, id int64) (dom.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dom.User), args.Error(1)
}

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) List(ctx context.Context, f dom.ProductFilter) ([]dom.Product, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]dom.Product), args.Error(1)
}

func (m *mockCatalog) Get(ctx context.Context, id int64, includeInactive bool) (dom.Product, error) {
	args := m.Called(ctx, id, includeInactive)
	return args.Get(0).(dom.Product), args.Error(1)
}

func (m *mockCatalog) Create(ctx context.Context, in service.ProductInput) (dom.Product, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(dom.Product), args.Error(1)
}

func (m *mockCatalog) Update(ctx context.Context, id int64, in service.ProductInput) (dom.Product, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(dom.Product), args.Error(1)
}

func (m *mockCatalog) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockPricing struct{ mock.Mock }

func (m *mockPricing) Base() string { return "USD" }

func (m *mockPricing) Rates(ctx context.Context) ([]dom.ExchangeRate, error) {
	args := m.Called(ctx)
	return args.Get(0).([]dom.ExchangeRate), args.Error(1)
}

func (m *mockPricing) SetRate(ctx context.Context, code string, rate decimal.Decimal) (dom.ExchangeRate, error) {
	args := m.Called(ctx, code, rate)
	return args.Get(0).(dom.ExchangeRate), args.Error(1)
}

func (m *mockPricing) Convert(ctx context.Context, amount int64, code string) (dom.Money, error) {
	args := m.Called(ctx, amount, code)
	return args.Get(0).(dom.Money), args.Error(1)
}

func (m *mockPricing) Converter(ctx context.Context, code string) (func(int64) (dom.Money, error), error) {
	args := m.Called(ctx, code)
	fn, _ := args.Get(0).(func(int64) (dom.Money, error))
	return fn, args.Error(1)
}

type mockCart struct{ mock.Mock }

func (m *mockCart) Get(ctx context.Context, userID int64) (dom.Cart, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(dom.Cart), args.Error(1)
}

func (m *mockCart) Add(ctx context.Context, userID, productID int64, qty int) (dom.Cart, error) {
	args := m.Called(ctx, userID, productID, qty)
	return args.Get(0).(dom.Cart), args.Error(1)
}

func (m *mockCart) SetQuantity(ctx context.Context, userID, productID int64, qty int) (dom.Cart, error) {
	args := m.Called(ctx, userID, productID, qty)
	return args.Get(0).(dom.Cart), args.Error(1)
}

func (m *mockCart) Remove(ctx context.Context, userID, productID int64) (dom.Cart, error) {
	args := m.Called(ctx, userID, productID)
	return args.Get(0).(dom.Cart), args.Error(1)
}

func (m *mockCart) Clear(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockCart) Checkout(ctx context.Context, userID int64, notes string) (dom.Order, error) {
	args := m.Called(ctx, userID, notes)
	return args.Get(0).(dom.Order), args.Error(1)
}

type mockOrders struct{ mock.Mock }

func (m *mockOrders) Create(ctx context.Context, customerID int64, lines []service.ItemInput, notes string) (dom.Order, error) {
	args := m.Called(ctx, customerID, lines, notes)
	return args.Get(0).(dom.Order), args.Error(1)
}

func (m *mockOrders) List(ctx context.Context, f dom.OrderFilter) ([]dom.Order, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]dom.Order), args.Error(1)
}

func (m *mockOrders) Get(ctx context.Context, id int64) (service.OrderDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(service.OrderDetail), args.Error(1)
}

func (m *mockOrders) GetForCustomer(ctx context.Context, customerID, id int64) (service.OrderDetail, error) {
	args := m.Called(ctx, customerID, id)
	return args.Get(0).(service.OrderDetail), args.Error(1)
}

func (m *mockOrders) ListForCustomer(ctx context.Context, customerID int64, limit, offset int) ([]dom.Order, error) {
	args := m.Called(ctx, customerID, limit, offset)
	return args.Get(0).([]dom.Order), args.Error(1)
}

func (m *mockOrders) ChangeStatus(ctx context.Context, actorID, id int64, to dom.OrderStatus, note string) (dom.Order, error) {
	args := m.Called(ctx, actorID, id, to, note)
	return args.Get(0).(dom.Order), args.Error(1)
}

func (m *mockOrders) RecordPayment(ctx context.Context, actorID int64, p dom.Payment) (dom.Order, dom.Payment, error) {
	args := m.Called(ctx, actorID, p)
	return args.Get(0).(dom.Order), args.Get(1).(dom.Payment), args.Error(2)
}

func (m *mockOrders) ConfirmPayment(ctx context.Context, actorID, orderID, paymentID int64, to dom.PaymentStatus) (dom.Order, dom.Payment, error) {
	args := m.Called(ctx, actorID, orderID, paymentID, to)
	return args.Get(0).(dom.Order), args.Get(1).(dom.Payment), args.Error(2)
}

type mockTasks struct{ mock.Mock }

func (m *mockTasks) List(ctx context.Context, f dom.TaskFilter) ([]dom.Task, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]dom.Task), args.Error(1)
}

func (m *mockTasks) Complete(ctx context.Context, id int64) (dom.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dom.Task), args.Error(1)
}

func (m *mockTasks) Run(ctx context.Context) (tasks.Report, error) {
	args := m.Called(ctx)
	return args.Get(0).(tasks.Report), args.Error(1)
}
