package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"storefront/internal/cache"
	dom "storefront/internal/domain"
	"storefront/internal/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestMapRepoErr(t *testing.T) {
	assert.NoError(t, mapRepoErr(nil))
	assert.ErrorIs(t, mapRepoErr(pgx.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, mapRepoErr(&pgconn.PgError{Code: "23505"}), ErrConflict)
	assert.ErrorIs(t, mapRepoErr(&pgconn.PgError{Code: "23503"}), ErrInvalidInput)
	assert.ErrorIs(t, mapRepoErr(dom.ErrOverpayment), dom.ErrOverpayment)
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("validation", func(t *testing.T) {
		svc := NewUserService(new(mockUserRepo))
		_, err := svc.Register(ctx, "not-an-email", "Ana", "secret1")
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = svc.Register(ctx, "ana@example.com", "  ", "secret1")
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = svc.Register(ctx, "ana@example.com", "Ana", "123")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("hashes password and normalizes email", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u dom.User) bool {
			return u.Email == "ana@example.com" && u.Role == dom.RoleCustomer &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) == nil
		})).Return(dom.User{ID: 1, Email: "ana@example.com"}, nil)

		u, err := NewUserService(users).Register(ctx, "  Ana@Example.com ", "Ana", "secret1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
		users.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("Create", mock.Anything, mock.Anything).Return(dom.User{}, &pgconn.PgError{Code: "23505"})
		_, err := NewUserService(users).Register(ctx, "ana@example.com", "Ana", "secret1")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestUserService_ValidateCredentials(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "ana@example.com").Return(dom.User{ID: 1, PasswordHash: string(hash)}, nil)
	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(dom.User{}, pgx.ErrNoRows)
	svc := NewUserService(users)

	u, err := svc.ValidateCredentials(ctx, "ANA@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	_, err = svc.ValidateCredentials(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.ValidateCredentials(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.ValidateCredentials(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPricingService_CachedRates(t *testing.T) {
	ctx := context.Background()
	rates := new(mockRateRepo)
	eur := dom.ExchangeRate{Currency: "EUR", Rate: decimal.RequireFromString("0.92")}
	rates.On("List", mock.Anything).Return([]dom.ExchangeRate{eur}, nil).Once()

	svc := NewPricingService(rates, cache.NewRateCache(newRedis(t), time.Minute), "USD")

	m, err := svc.Convert(ctx, 1250, "eur")
	require.NoError(t, err)
	assert.Equal(t, dom.Money{Amount: 1150, Currency: "EUR"}, m)

	m, err = svc.Convert(ctx, 1250, "USD")
	require.NoError(t, err)
	assert.Equal(t, dom.Money{Amount: 1250, Currency: "USD"}, m)

	_, err = svc.Convert(ctx, 1250, "JPY")
	assert.ErrorIs(t, err, dom.ErrUnknownCurrency)

	rates.AssertNumberOfCalls(t, "List", 1)
}

func TestPricingService_SetRate(t *testing.T) {
	ctx := context.Background()
	rates := new(mockRateRepo)
	svc := NewPricingService(rates, cache.NewRateCache(newRedis(t), time.Minute), "USD")
	svc.now = fixedClock

	_, err := svc.SetRate(ctx, "USD", decimal.NewFromInt(2))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.SetRate(ctx, "EUR", decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidInput)

	rates.On("List", mock.Anything).Return([]dom.ExchangeRate{}, nil).Once()
	_, err = svc.Rates(ctx)
	require.NoError(t, err)

	rate := decimal.RequireFromString("0.90")
	rates.On("Upsert", mock.Anything, dom.ExchangeRate{Currency: "EUR", Rate: rate, UpdatedAt: fixedNow}).
		Return(dom.ExchangeRate{Currency: "EUR", Rate: rate, UpdatedAt: fixedNow}, nil)
	_, err = svc.SetRate(ctx, "eur", rate)
	require.NoError(t, err)

	rates.On("List", mock.Anything).Return([]dom.ExchangeRate{{Currency: "EUR", Rate: rate}}, nil).Once()
	r, err := svc.Rate(ctx, "EUR")
	require.NoError(t, err)
	assert.True(t, r.Rate.Equal(rate))
	rates.AssertNumberOfCalls(t, "List", 2)
}

func TestCatalogService_ListUsesCache(t *testing.T) {
	ctx := context.Background()
	products := new(mockProductRepo)
	svc := NewCatalogService(products, cache.NewCatalogCache(newRedis(t), time.Minute), logger.Nop())

	list := []dom.Product{{ID: 1, Kind: dom.KindProduct, SKU: "LAMP-1", Name: "Lamp", Price: 1250, Active: true}}
	products.On("List", mock.Anything, mock.Anything).Return(list, nil)

	for i := 0; i < 2; i++ {
		got, err := svc.List(ctx, dom.ProductFilter{Query: "lamp"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Lamp", got[0].Name)
	}
	products.AssertNumberOfCalls(t, "List", 1)

	_, err := svc.List(ctx, dom.ProductFilter{Kind: "furniture"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	products.On("SoftDelete", mock.Anything, int64(1)).Return(nil)
	require.NoError(t, svc.Delete(ctx, 1))

	_, err = svc.List(ctx, dom.ProductFilter{Query: "lamp"})
	require.NoError(t, err)
	products.AssertNumberOfCalls(t, "List", 2)
}

func TestCatalogService_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	products := new(mockProductRepo)
	svc := NewCatalogService(products, nil, logger.Nop())

	name, sku := "Setup", "SVC-1"
	kind := dom.KindService
	stock := 5
	products.On("Create", mock.Anything, mock.MatchedBy(func(p dom.Product) bool {
		return p.Kind == dom.KindService && p.Stock == 0 && p.Active
	})).Return(dom.Product{ID: 3, Kind: dom.KindService, Name: name}, nil)

	p, err := svc.Create(ctx, ProductInput{Kind: &kind, SKU: &sku, Name: &name, Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)

	_, err = svc.Create(ctx, ProductInput{SKU: &sku})
	assert.ErrorIs(t, err, ErrInvalidInput)

	products.On("GetByID", mock.Anything, int64(9), true).Return(dom.Product{}, pgx.ErrNoRows)
	_, err = svc.Update(ctx, 9, ProductInput{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderService_RecordPayment(t *testing.T) {
	ctx := context.Background()
	orders := new(mockOrderRepo)
	svc := NewOrderService(orders, new(mockProductRepo), new(mockUserRepo), "USD")

	orders.On("RecordPayment", mock.Anything, mock.MatchedBy(func(p dom.Payment) bool {
		return p.Status == dom.PaymentCompleted && p.RecordedBy != nil && *p.RecordedBy == 1 && p.Reference == "TX-9"
	})).Return(dom.Order{ID: 9, Status: dom.OrderPaid}, dom.Payment{ID: 4}, nil).Once()

	o, p, err := svc.RecordPayment(ctx, 1, dom.Payment{OrderID: 9, Amount: 1000, Method: dom.PaymentMethod("cash"), Reference: " TX-9 "})
	require.NoError(t, err)
	assert.Equal(t, dom.OrderPaid, o.Status)
	assert.Equal(t, int64(4), p.ID)

	_, _, err = svc.RecordPayment(ctx, 1, dom.Payment{OrderID: 9, Amount: 1000, Method: "cash", Status: dom.PaymentFailed})
	assert.ErrorIs(t, err, ErrInvalidInput)

	orders.On("RecordPayment", mock.Anything, mock.Anything).Return(dom.Order{}, dom.Payment{}, pgx.ErrNoRows)
	_, _, err = svc.RecordPayment(ctx, 1, dom.Payment{OrderID: 404, Amount: 10, Method: "cash"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderService_GetForCustomer(t *testing.T) {
	ctx := context.Background()
	orders := new(mockOrderRepo)
	svc := NewOrderService(orders, new(mockProductRepo), new(mockUserRepo), "USD")

	orders.On("GetByID", mock.Anything, int64(5)).Return(dom.Order{ID: 5, CustomerID: 7, Total: 1000}, nil)
	orders.On("Payments", mock.Anything, int64(5)).Return([]dom.Payment{
		{Amount: 300, Status: dom.PaymentCompleted},
		{Amount: 500, Status: dom.PaymentPending},
		{Amount: 100, Status: dom.PaymentFailed},
	}, nil)
	orders.On("History", mock.Anything, int64(5)).Return([]dom.StatusChange{}, nil)

	d, err := svc.GetForCustomer(ctx, 7, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(300), d.Paid)
	assert.Equal(t, int64(700), d.Balance())

	_, err = svc.GetForCustomer(ctx, 8, 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderService_CreatePricesFromCatalog(t *testing.T) {
	ctx := context.Background()
	orders := new(mockOrderRepo)
	products := new(mockProductRepo)
	users := new(mockUserRepo)
	svc := NewOrderService(orders, products, users, "USD")

	users.On("GetByID", mock.Anything, int64(7)).Return(dom.User{ID: 7}, nil)
	products.On("GetByID", mock.Anything, int64(1), false).Return(dom.Product{ID: 1, Name: "Install", Price: 4000}, nil)
	orders.On("Create", mock.Anything, mock.MatchedBy(func(o dom.Order) bool {
		return o.CustomerID == 7 && o.Total == 8000 && o.Status == dom.OrderPending && len(o.Items) == 1
	})).Return(dom.Order{ID: 11, Total: 8000}, nil)

	o, err := svc.Create(ctx, 7, []ItemInput{{ProductID: 1, Quantity: 2}}, "phone sale")
	require.NoError(t, err)
	assert.Equal(t, int64(11), o.ID)

	_, err = svc.Create(ctx, 7, nil, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	products.On("GetByID", mock.Anything, int64(2), false).Return(dom.Product{ID: 2, Name: "Server rack", Price: dom.MaxAmount}, nil)
	_, err = svc.Create(ctx, 7, []ItemInput{{ProductID: 2, Quantity: 2}}, "")
	assert.ErrorIs(t, err, dom.ErrAmountTooLarge)
	orders.AssertNumberOfCalls(t, "Create", 1)
}

func TestImportService_Simulate(t *testing.T) {
	ctx := context.Background()
	rates := new(mockRateRepo)
	sims := new(mockImportSimRepo)
	pricing := NewPricingService(rates, nil, "USD")
	defaults := dom.ImportRates{
		FreightPerKg:  decimal.RequireFromString("12.5"),
		InsuranceRate: decimal.RequireFromString("0.02"),
		DutyRate:      decimal.RequireFromString("0.10"),
		VATRate:       decimal.RequireFromString("0.13"),
		HandlingFee:   decimal.RequireFromString("5"),
	}
	svc := NewImportService(new(mockProductRepo), sims, pricing, defaults)

	price := decimal.NewFromInt(100)
	weight := decimal.NewFromInt(2)
	req := ImportRequest{UnitPrice: &price, WeightKg: &weight, Quantity: 3, Currency: "EUR"}
	rates.On("Get", mock.Anything, "EUR").Return(dom.ExchangeRate{Currency: "EUR", Rate: decimal.RequireFromString("0.92")}, nil)

	res, err := svc.Simulate(ctx, 0, req)
	require.NoError(t, err)
	b := res.Simulation.Breakdown
	assert.Equal(t, "381.00", b.CIF.StringFixed(2))
	assert.Equal(t, "54.48", b.VAT.StringFixed(2))
	assert.Equal(t, "478.58", b.Total.StringFixed(2))
	require.NotNil(t, res.Converted)
	assert.Equal(t, dom.Money{Amount: 44029, Currency: "EUR"}, *res.Converted)
	sims.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	sims.On("Create", mock.Anything, mock.MatchedBy(func(s dom.ImportSimulation) bool { return s.UserID == 7 })).
		Return(dom.ImportSimulation{ID: 1, UserID: 7}, nil)
	res, err = svc.Simulate(ctx, 7, ImportRequest{UnitPrice: &price, WeightKg: &weight, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Simulation.ID)

	_, err = svc.Simulate(ctx, 0, ImportRequest{Quantity: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestQuoteService_Offer(t *testing.T) {
	ctx := context.Background()
	quotes := new(mockQuoteRepo)
	svc := NewQuoteService(quotes, new(mockProductRepo), "USD")
	svc.now = fixedClock

	quotes.On("GetByID", mock.Anything, int64(2)).Return(dom.Quote{ID: 2, Quantity: 3, Status: dom.QuoteRequested}, nil)
	quotes.On("Offer", mock.Anything, int64(2), int64(900), fixedNow.Add(dom.DefaultOfferValidity)).
		Return(dom.Quote{ID: 2, Status: dom.QuoteOffered}, nil)

	q, err := svc.Offer(ctx, 2, 900, nil)
	require.NoError(t, err)
	assert.Equal(t, dom.QuoteOffered, q.Status)

	past := fixedNow.Add(-time.Hour)
	_, err = svc.Offer(ctx, 2, 900, &past)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Offer(ctx, 2, 0, nil)
	assert.ErrorIs(t, err, dom.ErrInvalidAmount)

	_, err = svc.Offer(ctx, 2, dom.MaxAmount, nil)
	assert.ErrorIs(t, err, dom.ErrAmountTooLarge)
	quotes.AssertNumberOfCalls(t, "Offer", 1)
}

func TestQuoteService_GetHidesOtherCustomers(t *testing.T) {
	ctx := context.Background()
	quotes := new(mockQuoteRepo)
	svc := NewQuoteService(quotes, new(mockProductRepo), "USD")
	quotes.On("GetByID", mock.Anything, int64(2)).Return(dom.Quote{ID: 2, CustomerID: 7}, nil)

	_, err := svc.Get(ctx, 8, false, 2)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(ctx, 8, true, 2)
	assert.NoError(t, err)

	_, err = svc.PostMessage(ctx, 8, false, 2, "hello?")
	assert.ErrorIs(t, err, ErrNotFound)
	quotes.AssertNotCalled(t, "AddMessage", mock.Anything, mock.Anything)
}

func TestMessageService(t *testing.T) {
	ctx := context.Background()
	msgs := new(mockMessageRepo)
	users := new(mockUserRepo)
	svc := NewMessageService(msgs, users)
	svc.now = fixedClock

	_, err := svc.Post(ctx, 7, false, strings.Repeat("x", maxMessageLen+1))
	assert.ErrorIs(t, err, ErrInvalidInput)

	users.On("GetByID", mock.Anything, int64(99)).Return(dom.User{}, pgx.ErrNoRows)
	_, err = svc.Post(ctx, 99, true, "hello")
	assert.ErrorIs(t, err, ErrNotFound)

	msgs.On("List", mock.Anything, int64(7)).Return([]dom.Message{{ID: 1, FromAdmin: true}}, nil)
	msgs.On("MarkRead", mock.Anything, int64(7), true, fixedNow).Return(int64(1), nil)
	list, err := svc.Thread(ctx, 7, false)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	msgs.AssertExpectations(t)

	msgs.On("List", mock.Anything, int64(8)).Return([]dom.Message{}, errors.New("db down"))
	_, err = svc.Thread(ctx, 8, false)
	assert.Error(t, err)
}

func TestAuctionService_Bid(t *testing.T) {
	ctx := context.Background()
	auctions := new(mockAuctionRepo)
	svc := NewAuctionService(auctions, new(mockProductRepo), "USD")
	svc.now = fixedClock

	auctions.On("PlaceBid", mock.Anything, int64(3), int64(7), int64(6250), fixedNow).
		Return(dom.Bid{ID: 1, AuctionID: 3, BidderID: 7, Amount: 6250}, nil).Once()
	b, err := svc.Bid(ctx, 7, 3, 6250)
	require.NoError(t, err)
	assert.Equal(t, int64(6250), b.Amount)

	_, err = svc.Bid(ctx, 7, 3, 0)
	assert.ErrorIs(t, err, dom.ErrInvalidAmount)
	_, err = svc.Bid(ctx, 7, 3, dom.MaxAmount+1)
	assert.ErrorIs(t, err, dom.ErrAmountTooLarge)

	auctions.On("PlaceBid", mock.Anything, int64(3), int64(8), int64(6300), fixedNow).
		Return(dom.Bid{}, dom.ErrBidTooLow).Once()
	_, err = svc.Bid(ctx, 8, 3, 6300)
	assert.ErrorIs(t, err, dom.ErrBidTooLow)
	auctions.AssertExpectations(t)
}

func TestAuctionService_Close(t *testing.T) {
	ctx := context.Background()
	auctions := new(mockAuctionRepo)
	svc := NewAuctionService(auctions, new(mockProductRepo), "USD")

	orderID, winner := int64(40), int64(2)
	auctions.On("Close", mock.Anything, int64(3), "USD").
		Return(dom.Auction{ID: 3, Status: dom.AuctionClosed, WinningBidID: &winner, OrderID: &orderID}, nil)
	auctions.On("Close", mock.Anything, int64(4), "USD").
		Return(dom.Auction{ID: 4, Status: dom.AuctionClosed}, nil)
	auctions.On("Close", mock.Anything, int64(5), "USD").Return(dom.Auction{}, pgx.ErrNoRows)

	a, err := svc.Close(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, a.OrderID)
	assert.Equal(t, orderID, *a.OrderID)

	a, err = svc.Close(ctx, 4)
	require.NoError(t, err)
	assert.Nil(t, a.OrderID)
	assert.Nil(t, a.WinningBidID)

	_, err = svc.Close(ctx, 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuctionService_CreateValidates(t *testing.T) {
	ctx := context.Background()
	auctions := new(mockAuctionRepo)
	products := new(mockProductRepo)
	svc := NewAuctionService(auctions, products, "USD")

	a := dom.Auction{ProductID: 1, StartingPrice: 5000, MinIncrement: 0, StartsAt: fixedNow, EndsAt: fixedNow.Add(time.Hour)}
	_, err := svc.Create(ctx, a)
	assert.ErrorIs(t, err, dom.ErrInvalidAmount)

	a.MinIncrement = 250
	products.On("GetByID", mock.Anything, int64(1), true).Return(dom.Product{ID: 1}, nil)
	auctions.On("Create", mock.Anything, mock.MatchedBy(func(a dom.Auction) bool { return a.Status == dom.AuctionOpen })).
		Return(dom.Auction{ID: 9, Status: dom.AuctionOpen}, nil)
	out, err := svc.Create(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(9), out.ID)
}

func TestSubscriptionService_AssignProfile(t *testing.T) {
	ctx := context.Background()
	subs := new(mockSubscriptionRepo)
	users := new(mockUserRepo)
	svc := NewSubscriptionService(subs, users)
	svc.now = fixedClock

	users.On("GetByID", mock.Anything, int64(7)).Return(dom.User{ID: 7}, nil)
	subs.On("AssignProfile", mock.Anything, mock.MatchedBy(func(p dom.AccountProfile) bool {
		return p.SubscriptionID == 1 && p.Name == "Kids" && p.PIN == "1234"
	}), fixedNow).Return(dom.AccountProfile{ID: 3, SubscriptionID: 1, CustomerID: 7, Name: "Kids"}, nil).Once()

	p, err := svc.AssignProfile(ctx, 1, 7, " Kids ", " 1234 ")
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)

	subs.On("AssignProfile", mock.Anything, mock.MatchedBy(func(p dom.AccountProfile) bool { return p.SubscriptionID == 2 }), fixedNow).
		Return(dom.AccountProfile{}, dom.ErrSubscriptionFull).Once()
	_, err = svc.AssignProfile(ctx, 2, 7, "Extra", "")
	assert.ErrorIs(t, err, dom.ErrSubscriptionFull)

	_, err = svc.AssignProfile(ctx, 1, 7, "  ", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	users.On("GetByID", mock.Anything, int64(99)).Return(dom.User{}, pgx.ErrNoRows)
	_, err = svc.AssignProfile(ctx, 1, 99, "Guest", "")
	assert.ErrorIs(t, err, ErrNotFound)
	subs.AssertExpectations(t)
}

func TestSubscriptionService_Create(t *testing.T) {
	ctx := context.Background()
	subs := new(mockSubscriptionRepo)
	svc := NewSubscriptionService(subs, new(mockUserRepo))
	svc.now = fixedClock

	sub := dom.Subscription{Platform: "Netflix", AccountEmail: "family@example.com", MaxProfiles: 4, ExpiresAt: fixedNow.AddDate(0, 1, 0)}
	subs.On("Create", mock.Anything, sub).Return(dom.Subscription{ID: 1, Status: dom.SubscriptionActive}, nil)
	out, err := svc.Create(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, dom.SubscriptionActive, out.Status)

	expired := sub
	expired.ExpiresAt = fixedNow
	_, err = svc.Create(ctx, expired)
	assert.ErrorIs(t, err, ErrInvalidInput)

	badEmail := sub
	badEmail.AccountEmail = "not-an-email"
	_, err = svc.Create(ctx, badEmail)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReturnService_Request(t *testing.T) {
	ctx := context.Background()
	returns := new(mockReturnRepo)
	orders := new(mockOrderRepo)
	svc := NewReturnService(returns, orders)

	orders.On("GetByID", mock.Anything, int64(5)).Return(dom.Order{ID: 5, CustomerID: 7, Status: dom.OrderDelivered}, nil)
	orders.On("GetByID", mock.Anything, int64(6)).Return(dom.Order{ID: 6, CustomerID: 7, Status: dom.OrderShipped}, nil)

	returns.On("Create", mock.Anything, dom.ReturnRequest{OrderID: 5, CustomerID: 7, Reason: "broken"}).
		Return(dom.ReturnRequest{ID: 1, OrderID: 5, Status: dom.ReturnRequested}, nil).Once()
	rr, err := svc.Request(ctx, 7, 5, " broken ")
	require.NoError(t, err)
	assert.Equal(t, dom.ReturnRequested, rr.Status)

	returns.On("Create", mock.Anything, mock.Anything).
		Return(dom.ReturnRequest{}, &pgconn.PgError{Code: "23505"}).Once()
	_, err = svc.Request(ctx, 7, 5, "still broken")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Request(ctx, 8, 5, "not mine")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Request(ctx, 7, 6, "too early")
	assert.ErrorIs(t, err, dom.ErrReturnNotAllowed)

	_, err = svc.Request(ctx, 7, 5, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	returns.AssertExpectations(t)
}

func TestReturnService_Resolve(t *testing.T) {
	ctx := context.Background()
	returns := new(mockReturnRepo)
	svc := NewReturnService(returns, new(mockOrderRepo))

	actor := int64(1)
	returns.On("Resolve", mock.Anything, int64(4), true, "refunded", &actor).
		Return(dom.ReturnRequest{ID: 4, Status: dom.ReturnApproved}, nil)
	rr, err := svc.Resolve(ctx, 1, 4, true, " refunded ")
	require.NoError(t, err)
	assert.Equal(t, dom.ReturnApproved, rr.Status)

	returns.On("Resolve", mock.Anything, int64(5), false, "", &actor).Return(dom.ReturnRequest{}, dom.ErrInvalidTransition)
	_, err = svc.Resolve(ctx, 1, 5, false, "")
	assert.ErrorIs(t, err, dom.ErrInvalidTransition)
}

func TestCartService_Add(t *testing.T) {
	ctx := context.Background()
	carts := new(mockCartRepo)
	products := new(mockProductRepo)
	svc := NewCartService(carts, products, "USD")

	products.On("GetByID", mock.Anything, int64(1), false).
		Return(dom.Product{ID: 1, Kind: dom.KindProduct, Name: "Keyboard", Price: 4500, Stock: 0, Active: true}, nil)
	carts.On("Lines", mock.Anything, int64(7)).Return([]dom.CartLine{}, nil).Once()
	carts.On("AddItem", mock.Anything, int64(7), int64(1), 2).Return(nil).Once()
	carts.On("Lines", mock.Anything, int64(7)).
		Return([]dom.CartLine{{ProductID: 1, Name: "Keyboard", UnitPrice: 4500, Quantity: 2, Active: true}}, nil)

	// Out of stock items may sit in the cart; checkout enforces stock.
	c, err := svc.Add(ctx, 7, 1, 2)
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, int64(9000), c.Total())

	_, err = svc.Add(ctx, 7, 1, dom.MaxQuantity-1)
	assert.ErrorIs(t, err, dom.ErrInvalidQuantity)

	_, err = svc.Add(ctx, 7, 1, 0)
	assert.ErrorIs(t, err, dom.ErrInvalidQuantity)

	products.On("GetByID", mock.Anything, int64(2), false).Return(dom.Product{ID: 2, Active: false}, nil)
	_, err = svc.Add(ctx, 7, 2, 1)
	assert.ErrorIs(t, err, dom.ErrProductUnavailable)
	carts.AssertNumberOfCalls(t, "AddItem", 1)
}

func TestCartService_Checkout(t *testing.T) {
	ctx := context.Background()
	carts := new(mockCartRepo)
	svc := NewCartService(carts, new(mockProductRepo), "USD")

	carts.On("Checkout", mock.Anything, int64(7), "USD", "leave at door").Return(dom.Order{ID: 12, Total: 9000}, nil)
	carts.On("Checkout", mock.Anything, int64(8), "USD", "").Return(dom.Order{}, dom.ErrInsufficientStock)

	o, err := svc.Checkout(ctx, 7, " leave at door ")
	require.NoError(t, err)
	assert.Equal(t, int64(12), o.ID)

	_, err = svc.Checkout(ctx, 8, "")
	assert.ErrorIs(t, err, dom.ErrInsufficientStock)
}
