package service

import (
	"context"
	"time"

	dom "storefront/internal/domain"

	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(dom.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dom.User), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(dom.User), args.Error(1)
}

type mockRateRepo struct{ mock.Mock }

func (m *mockRateRepo) List(ctx context.Context) ([]dom.ExchangeRate, error) {
	args := m.Called(ctx)
	return args.Get(0).([]dom.ExchangeRate), args.Error(1)
}

func (m *mockRateRepo) Get(ctx context.Context, currency string) (dom.ExchangeRate, error) {
	args := m.Called(ctx, currency)
	return args.Get(0).(dom.ExchangeRate), args.Error(1)
}

func (m *mockRateRepo) Upsert(ctx context.Context, rate dom.ExchangeRate) (dom.ExchangeRate, error) {
	args := m.Called(ctx, rate)
	return args.Get(0).(dom.ExchangeRate), args.Error(1)
}

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) Create(ctx context.Context, p dom.Product) (dom.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(dom.Product), args.Error(1)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int64, includeInactive bool) (dom.Product, error) {
	args := m.Called(ctx, id, includeInactive)
	return args.Get(0).(dom.Product), args.Error(1)
}

func (m *mockProductRepo) List(ctx context.Context, f dom.ProductFilter) ([]dom.Product, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]dom.Product), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, p dom.Product) (dom.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(dom.Product), args.Error(1)
}

func (m *mockProductRepo) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) Create(ctx context.Context, o dom.Order) (dom.Order, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(dom.Order), args.Error(1)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id int64) (dom.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dom.Order), args.Error(1)
}

func (m *mockOrderRepo) List(ctx context.Context, f dom.OrderFilter) ([]dom.Order, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]dom.Order), args.Error(1)
}

func (m *mockOrderRepo) Payments(ctx context.Context, orderID int64) ([]dom.Payment, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]dom.Payment), args.Error(1)
}

func (m *mockOrderRepo) History(ctx context.Context, orderID int64) ([]dom.StatusChange, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]dom.StatusChange), args.Error(1)
}

func (m *mockOrderRepo) RecordPayment(ctx context.Context, p dom.Payment) (dom.Order, dom.Payment, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(dom.Order), args.Get(1).(dom.Payment), args.Error(2)
}

func (m *mockOrderRepo) ConfirmPayment(ctx context.Context, orderID, paymentID int64, to dom.PaymentStatus, actorID *int64) (dom.Order, dom.Payment, error) {
	args := m.Called(ctx, orderID, paymentID, to, actorID)
	return args.Get(0).(dom.Order), args.Get(1).(dom.Payment), args.Error(2)
}

func (m *mockOrderRepo) ChangeStatus(ctx context.Context, orderID int64, to dom.OrderStatus, actorID *int64, note string) (dom.Order, error) {
	args := m.Called(ctx, orderID, to, actorID, note)
	return args.Get(0).(dom.Order), args.Error(1)
}

func (m *mockOrderRepo) UnpaidBefore(ctx context.Context, before time.Time) ([]dom.Order, error) {
	args := m.Called(ctx, before)
	return args.Get(0).([]dom.Order), args.Error(1)
}

type mockQuoteRepo struct{ mock.Mock }

func (m *mockQuoteRepo) Create(ctx context.Context, q dom.Quote, first dom.QuoteMessage) (dom.Quote, error) {
	args := m.Called(ctx, q, first)
	return args.Get(0).(dom.Quote), args.Error(1)
}

func (m *mockQuoteRepo) GetByID(ctx context.Context, id int64) (dom.Quote, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dom.Quote), args.Error(1)
}

func (m *mockQuoteRepo) List(ctx context.Context, customerID int64, status dom.QuoteStatus) ([]dom.Quote, error) {
	args := m.Called(ctx, customerID, status)
	return args.Get(0).([]dom.Quote), args.Error(1)
}

func (m *mockQuoteRepo) AddMessage(ctx context.Context, msg dom.QuoteMessage) (dom.QuoteMessage, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(dom.QuoteMessage), args.Error(1)
}

func (m *mockQuoteRepo) Offer(ctx context.Context, id, unitPrice int64, expiresAt time.Time) (dom.Quote, error) {
	args := m.Called(ctx, id, unitPrice, expiresAt)
	return args.Get(0).(dom.Quote), args.Error(1)
}

func (m *mockQuoteRepo) Reject(ctx context.Context, id, customerID int64) (dom.Quote, error) {
	args := m.Called(ctx, id, customerID)
	return args.Get(0).(dom.Quote), args.Error(1)
}

func (m *mockQuoteRepo) Accept(ctx context.Context, id, customerID int64, currency string, now time.Time) (dom.Quote, dom.Order, error) {
	args := m.Called(ctx, id, customerID, currency, now)
	return args.Get(0).(dom.Quote), args.Get(1).(dom.Order), args.Error(2)
}

func (m *mockQuoteRepo) StaleRequested(ctx context.Context, before time.Time) ([]dom.Quote, error) {
	args := m.Called(ctx, before)
	return args.Get(0).([]dom.Quote), args.Error(1)
}

type mockImportSimRepo struct{ mock.Mock }

func (m *mockImportSimRepo) Create(ctx context.Context, s dom.ImportSimulation) (dom.ImportSimulation, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(dom.ImportSimulation), args.Error(1)
}

func (m *mockImportSimRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]dom.ImportSimulation, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]dom.ImportSimulation), args.Error(1)
}

type mockMessageRepo struct{ mock.Mock }

func (m *mockMessageRepo) List(ctx context.Context, userID int64) ([]dom.Message, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]dom.Message), args.Error(1)
}

func (m *mockMessageRepo) Create(ctx context.Context, msg dom.Message) (dom.Message, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(dom.Message), args.Error(1)
}

func (m *mockMessageRepo) MarkRead(ctx context.Context, userID int64, fromAdmin bool, now time.Time) (int64, error) {
	args := m.Called(ctx, userID, fromAdmin, now)
	return args.Get(0).(int64), args.Error(1)
}

type mockAuctionRepo struct{ mock.Mock }

func (m *mockAuctionRepo) Create(ctx context.Context, a dom.Auction) (dom.Auction, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(dom.Auction), args.Error(1)
}

func (m *mockAuctionRepo) GetByID(ctx context.Context, id int64) (dom.Auction, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dom.Auction), args.Error(1)
}

func (m *mockAuctionRepo) List(ctx context.Context, status dom.AuctionStatus) ([]dom.Auction, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]dom.Auction), args.Error(1)
}

func (m *mockAuctionRepo) Bids(ctx context.Context, auctionID int64) ([]dom.Bid, error) {
	args := m.Called(ctx, auctionID)
	return args.Get(0).([]dom.Bid), args.Error(1)
}

func (m *mockAuctionRepo) PlaceBid(ctx context.Context, auctionID, bidderID, amount int64, now time.Time) (dom.Bid, error) {
	args := m.Called(ctx, auctionID, bidderID, amount, now)
	return args.Get(0).(dom.Bid), args.Error(1)
}

func (m *mockAuctionRepo) Close(ctx context.Context, auctionID int64, currency string) (dom.Auction, error) {
	args := m.Called(ctx, auctionID, currency)
	return args.Get(0).(dom.Auction), args.Error(1)
}

func (m *mockAuctionRepo) EndedOpen(ctx context.Context, now time.Time) ([]dom.Auction, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]dom.Auction), args.Error(1)
}

type mockSubscriptionRepo struct{ mock.Mock }

func (m *mockSubscriptionRepo) Create(ctx context.Context, s dom.Subscription) (dom.Subscription, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(dom.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepo) GetByID(ctx context.Context, id int64) (dom.Subscription, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dom.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepo) List(ctx context.Context, status dom.SubscriptionStatus) ([]dom.Subscription, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]dom.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepo) Renew(ctx context.Context, id int64, expiresAt time.Time) (dom.Subscription, error) {
	args := m.Called(ctx, id, expiresAt)
	return args.Get(0).(dom.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepo) Cancel(ctx context.Context, id int64) (dom.Subscription, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dom.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepo) AssignProfile(ctx context.Context, p dom.AccountProfile, now time.Time) (dom.AccountProfile, error) {
	args := m.Called(ctx, p, now)
	return args.Get(0).(dom.AccountProfile), args.Error(1)
}

func (m *mockSubscriptionRepo) RemoveProfile(ctx context.Context, subscriptionID, profileID int64) error {
	return m.Called(ctx, subscriptionID, profileID).Error(0)
}

func (m *mockSubscriptionRepo) ProfilesByCustomer(ctx context.Context, customerID int64) ([]dom.AccountProfile, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]dom.AccountProfile), args.Error(1)
}

func (m *mockSubscriptionRepo) ExpiringBefore(ctx context.Context, before time.Time) ([]dom.Subscription, error) {
	args := m.Called(ctx, before)
	return args.Get(0).([]dom.Subscription), args.Error(1)
}

type mockReturnRepo struct{ mock.Mock }

func (m *mockReturnRepo) Create(ctx context.Context, rr dom.ReturnRequest) (dom.ReturnRequest, error) {
	args := m.Called(ctx, rr)
	return args.Get(0).(dom.ReturnRequest), args.Error(1)
}

func (m *mockReturnRepo) GetByID(ctx context.Context, id int64) (dom.ReturnRequest, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dom.ReturnRequest), args.Error(1)
}

func (m *mockReturnRepo) List(ctx context.Context, customerID int64, status dom.ReturnStatus) ([]dom.ReturnRequest, error) {
	args := m.Called(ctx, customerID, status)
	return args.Get(0).([]dom.ReturnRequest), args.Error(1)
}

func (m *mockReturnRepo) Resolve(ctx context.Context, id int64, approve bool, note string, actorID *int64) (dom.ReturnRequest, error) {
	args := m.Called(ctx, id, approve, note, actorID)
	return args.Get(0).(dom.ReturnRequest), args.Error(1)
}

type mockCartRepo struct{ mock.Mock }

func (m *mockCartRepo) Lines(ctx context.Context, userID int64) ([]dom.CartLine, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]dom.CartLine), args.Error(1)
}

func (m *mockCartRepo) AddItem(ctx context.Context, userID, productID int64, qty int) error {
	return m.Called(ctx, userID, productID, qty).Error(0)
}

func (m *mockCartRepo) SetQuantity(ctx context.Context, userID, productID int64, qty int) error {
	return m.Called(ctx, userID, productID, qty).Error(0)
}

func (m *mockCartRepo) RemoveItem(ctx context.Context, userID, productID int64) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *mockCartRepo) Clear(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockCartRepo) Checkout(ctx context.Context, userID int64, currency, notes string) (dom.Order, error) {
	args := m.Called(ctx, userID, currency, notes)
	return args.Get(0).(dom.Order), args.Error(1)
}
