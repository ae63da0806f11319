package handlers

import (
	"context"
	"time"

	"storefront/internal/auth"
	dom "storefront/internal/domain"
	"storefront/internal/service"
	"storefront/internal/tasks"

	"github.com/shopspring/decimal"
)

// Interfaces below are implemented by the service package and mocked in tests.

type SessionStore interface {
	Create(ctx context.Context, sess auth.Session) (string, error)
	Delete(ctx context.Context, id string) error
	TTL() time.Duration
}

type UserService interface {
	ValidateCredentials(ctx context.Context, email, password string) (dom.User, error)
	Register(ctx context.Context, email, name, password string) (dom.User, error)
	Get(ctx context.Context, id int64) (dom.User, error)
}

type CatalogService interface {
	List(ctx context.Context, f dom.ProductFilter) ([]dom.Product, error)
	Get(ctx context.Context, id int64, includeInactive bool) (dom.Product, error)
	Create(ctx context.Context, in service.ProductInput) (dom.Product, error)
	Update(ctx context.Context, id int64, in service.ProductInput) (dom.Product, error)
	Delete(ctx context.Context, id int64) error
}

type PricingService interface {
	Base() string
	Rates(ctx context.Context) ([]dom.ExchangeRate, error)
	SetRate(ctx context.Context, code string, rate decimal.Decimal) (dom.ExchangeRate, error)
	Convert(ctx context.Context, amount int64, code string) (dom.Money, error)
	Converter(ctx context.Context, code string) (func(int64) (dom.Money, error), error)
}

type ImportService interface {
	Simulate(ctx context.Context, userID int64, req service.ImportRequest) (service.ImportResult, error)
	History(ctx context.Context, userID int64, limit int) ([]dom.ImportSimulation, error)
	Defaults() dom.ImportRates
}

type CartService interface {
	Get(ctx context.Context, userID int64) (dom.Cart, error)
	Add(ctx context.Context, userID, productID int64, qty int) (dom.Cart, error)
	SetQuantity(ctx context.Context, userID, productID int64, qty int) (dom.Cart, error)
	Remove(ctx context.Context, userID, productID int64) (dom.Cart, error)
	Clear(ctx context.Context, userID int64) error
	Checkout(ctx context.Context, userID int64, notes string) (dom.Order, error)
}

type OrderService interface {
	Create(ctx context.Context, customerID int64, lines []service.ItemInput, notes string) (dom.Order, error)
	List(ctx context.Context, f dom.OrderFilter) ([]dom.Order, error)
	Get(ctx context.Context, id int64) (service.OrderDetail, error)
	GetForCustomer(ctx context.Context, customerID, id int64) (service.OrderDetail, error)
	ListForCustomer(ctx context.Context, customerID int64, limit, offset int) ([]dom.Order, error)
	ChangeStatus(ctx context.Context, actorID, id int64, to dom.OrderStatus, note string) (dom.Order, error)
	RecordPayment(ctx context.Context, actorID int64, p dom.Payment) (dom.Order, dom.Payment, error)
	ConfirmPayment(ctx context.Context, actorID, orderID, paymentID int64, to dom.PaymentStatus) (dom.Order, dom.Payment, error)
}

type QuoteService interface {
	Request(ctx context.Context, customerID, productID int64, qty int, message string) (dom.Quote, error)
	List(ctx context.Context, customerID int64, status dom.QuoteStatus) ([]dom.Quote, error)
	Get(ctx context.Context, userID int64, admin bool, id int64) (dom.Quote, error)
	PostMessage(ctx context.Context, userID int64, admin bool, id int64, body string) (dom.QuoteMessage, error)
	Offer(ctx context.Context, id, unitPrice int64, expiresAt *time.Time) (dom.Quote, error)
	Accept(ctx context.Context, customerID, id int64) (dom.Quote, dom.Order, error)
	Reject(ctx context.Context, customerID, id int64) (dom.Quote, error)
}

type AuctionService interface {
	Create(ctx context.Context, a dom.Auction) (dom.Auction, error)
	List(ctx context.Context, status dom.AuctionStatus) ([]dom.Auction, error)
	Get(ctx context.Context, id int64) (service.AuctionDetail, error)
	Bid(ctx context.Context, bidderID, auctionID, amount int64) (dom.Bid, error)
	Close(ctx context.Context, id int64) (dom.Auction, error)
}

type SubscriptionService interface {
	Create(ctx context.Context, sub dom.Subscription) (dom.Subscription, error)
	List(ctx context.Context, status dom.SubscriptionStatus) ([]dom.Subscription, error)
	Get(ctx context.Context, id int64) (dom.Subscription, error)
	Renew(ctx context.Context, id int64, expiresAt time.Time) (dom.Subscription, error)
	Cancel(ctx context.Context, id int64) (dom.Subscription, error)
	AssignProfile(ctx context.Context, subscriptionID, customerID int64, name, pin string) (dom.AccountProfile, error)
	RemoveProfile(ctx context.Context, subscriptionID, profileID int64) error
	CustomerProfiles(ctx context.Context, customerID int64) ([]dom.AccountProfile, error)
}

type ReturnService interface {
	Request(ctx context.Context, customerID, orderID int64, reason string) (dom.ReturnRequest, error)
	List(ctx context.Context, customerID int64, status dom.ReturnStatus) ([]dom.ReturnRequest, error)
	Resolve(ctx context.Context, actorID, id int64, approve bool, note string) (dom.ReturnRequest, error)
}

type MessageService interface {
	Thread(ctx context.Context, userID int64, readerIsAdmin bool) ([]dom.Message, error)
	Post(ctx context.Context, userID int64, fromAdmin bool, body string) (dom.Message, error)
}

type TaskService interface {
	List(ctx context.Context, f dom.TaskFilter) ([]dom.Task, error)
	Complete(ctx context.Context, id int64) (dom.Task, error)
}

type TaskGenerator interface {
	Run(ctx context.Context) (tasks.Report, error)
}
