//go:build integration

package repo

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "storefront/internal/domain"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN not set")
	}
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	require.NoError(t, err)
	require.NoError(t, goose.Up(sqlDB, "../../migrations"))
	require.NoError(t, sqlDB.Close())

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func seedCustomer(t *testing.T, db *pgxpool.Pool) dom.User {
	t.Helper()
	u, err := NewPGUserRepo(db).Create(context.Background(), dom.User{
		Email:        uuid.NewString() + "@example.com",
		Name:         "Test",
		PasswordHash: "x",
		Role:         dom.RoleCustomer,
	})
	require.NoError(t, err)
	return u
}

func seedProduct(t *testing.T, db *pgxpool.Pool, price int64, stock int) dom.Product {
	t.Helper()
	p, err := NewPGProductRepo(db).Create(context.Background(), dom.Product{
		Kind:   dom.KindProduct,
		SKU:    "SKU-" + uuid.NewString()[:8],
		Name:   "Widget",
		Price:  price,
		Stock:  stock,
		Active: true,
	})
	require.NoError(t, err)
	return p
}

func TestOrderRepo_PaymentsKeepSumBelowTotal(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, 500, 10)
	orders := NewPGOrderRepo(db)

	o, err := orders.Create(ctx, dom.NewOrder(customer.ID, "USD",
		[]dom.OrderItem{{ProductID: product.ID, Name: product.Name, UnitPrice: 500, Quantity: 2}}, ""))
	require.NoError(t, err)
	require.Equal(t, int64(1000), o.Total)

	// Concurrent completed payments of 400: only two fit into 1000.
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := orders.RecordPayment(ctx, dom.Payment{
				OrderID: o.ID, Amount: 400, Method: dom.MethodCash, Status: dom.PaymentCompleted,
			})
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, dom.ErrOverpayment)
		}()
	}
	wg.Wait()
	assert.Equal(t, 2, accepted)

	got, err := orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, dom.OrderPartiallyPaid, got.Status)

	history, err := orders.History(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, dom.OrderPending, history[0].From)
	assert.Equal(t, dom.OrderPartiallyPaid, history[0].To)

	got, _, err = orders.RecordPayment(ctx, dom.Payment{
		OrderID: o.ID, Amount: 200, Method: dom.MethodTransfer, Status: dom.PaymentCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, dom.OrderPaid, got.Status)
}

func TestCartRepo_CheckoutDecrementsStock(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, 250, 3)
	carts := NewPGCartRepo(db)

	require.NoError(t, carts.AddItem(ctx, customer.ID, product.ID, 2))
	o, err := carts.Checkout(ctx, customer.ID, "USD", "leave at door")
	require.NoError(t, err)
	assert.Equal(t, int64(500), o.Total)
	assert.Len(t, o.Items, 1)

	p, err := NewPGProductRepo(db).GetByID(ctx, product.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock)

	lines, err := carts.Lines(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	require.NoError(t, carts.AddItem(ctx, customer.ID, product.ID, 2))
	_, err = carts.Checkout(ctx, customer.ID, "USD", "")
	assert.ErrorIs(t, err, dom.ErrInsufficientStock)
}

func TestTaskRepo_CreateIfAbsentIsIdempotent(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()
	tasks := NewPGTaskRepo(db)
	ref := int64(uuid.New().ID())

	created, err := tasks.CreateIfAbsent(ctx, dom.Task{Kind: dom.TaskPaymentOverdue, RefID: ref, Title: "Follow up"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = tasks.CreateIfAbsent(ctx, dom.Task{Kind: dom.TaskPaymentOverdue, RefID: ref, Title: "Follow up"})
	require.NoError(t, err)
	assert.False(t, created)
}

func deliveredOrder(t *testing.T, db *pgxpool.Pool, customer dom.User, product dom.Product) dom.Order {
	t.Helper()
	ctx := context.Background()
	orders := NewPGOrderRepo(db)
	o, err := orders.Create(ctx, dom.NewOrder(customer.ID, "USD",
		[]dom.OrderItem{{ProductID: product.ID, Name: product.Name, UnitPrice: product.Price, Quantity: 1}}, ""))
	require.NoError(t, err)
	_, _, err = orders.RecordPayment(ctx, dom.Payment{
		OrderID: o.ID, Amount: o.Total, Method: dom.MethodCash, Status: dom.PaymentCompleted,
	})
	require.NoError(t, err)
	for _, to := range []dom.OrderStatus{dom.OrderProcessing, dom.OrderShipped, dom.OrderDelivered} {
		o, err = orders.ChangeStatus(ctx, o.ID, to, nil, "")
		require.NoError(t, err)
	}
	return o
}

func TestReturnRepo_ApproveRefundsOrder(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()
	customer := seedCustomer(t, db)
	o := deliveredOrder(t, db, customer, seedProduct(t, db, 700, 5))
	returns := NewPGReturnRepo(db)

	rr, err := returns.Create(ctx, dom.ReturnRequest{OrderID: o.ID, CustomerID: customer.ID, Reason: "broken"})
	require.NoError(t, err)
	assert.Equal(t, dom.ReturnRequested, rr.Status)

	_, err = returns.Create(ctx, dom.ReturnRequest{OrderID: o.ID, CustomerID: customer.ID, Reason: "again"})
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "23505", pgErr.Code)

	resolved, err := returns.Resolve(ctx, rr.ID, true, "refund issued", nil)
	require.NoError(t, err)
	assert.Equal(t, dom.ReturnApproved, resolved.Status)
	assert.NotNil(t, resolved.ResolvedAt)

	orders := NewPGOrderRepo(db)
	got, err := orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, dom.OrderRefunded, got.Status)

	history, err := orders.History(ctx, o.ID)
	require.NoError(t, err)
	last := history[len(history)-1]
	assert.Equal(t, dom.OrderDelivered, last.From)
	assert.Equal(t, dom.OrderRefunded, last.To)
	assert.Equal(t, "return approved", last.Note)

	_, err = returns.Resolve(ctx, rr.ID, false, "", nil)
	assert.ErrorIs(t, err, dom.ErrInvalidTransition)

	// Once resolved, a new request for the same order may be opened.
	_, err = returns.Create(ctx, dom.ReturnRequest{OrderID: o.ID, CustomerID: customer.ID, Reason: "third"})
	assert.NoError(t, err)
}

func TestAuctionRepo_Close(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()
	auctions := NewPGAuctionRepo(db)
	product := seedProduct(t, db, 1000, 1)
	alice, bob := seedCustomer(t, db), seedCustomer(t, db)
	now := time.Now()

	newAuction := func() dom.Auction {
		a, err := auctions.Create(ctx, dom.Auction{
			ProductID: product.ID, StartingPrice: 5000, MinIncrement: 250,
			StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour),
		})
		require.NoError(t, err)
		return a
	}

	a := newAuction()
	_, err := auctions.PlaceBid(ctx, a.ID, alice.ID, 5000, now)
	require.NoError(t, err)
	_, err = auctions.PlaceBid(ctx, a.ID, bob.ID, 5100, now)
	assert.ErrorIs(t, err, dom.ErrBidTooLow)
	win, err := auctions.PlaceBid(ctx, a.ID, bob.ID, 5250, now)
	require.NoError(t, err)

	closed, err := auctions.Close(ctx, a.ID, "USD")
	require.NoError(t, err)
	assert.Equal(t, dom.AuctionClosed, closed.Status)
	require.NotNil(t, closed.WinningBidID)
	assert.Equal(t, win.ID, *closed.WinningBidID)
	require.NotNil(t, closed.OrderID)

	o, err := NewPGOrderRepo(db).GetByID(ctx, *closed.OrderID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, o.CustomerID)
	assert.Equal(t, int64(5250), o.Total)
	assert.Equal(t, dom.OrderPending, o.Status)

	_, err = auctions.Close(ctx, a.ID, "USD")
	assert.ErrorIs(t, err, dom.ErrAuctionClosed)

	empty := newAuction()
	closed, err = auctions.Close(ctx, empty.ID, "USD")
	require.NoError(t, err)
	assert.Equal(t, dom.AuctionClosed, closed.Status)
	assert.Nil(t, closed.OrderID)
	assert.Nil(t, closed.WinningBidID)
}

func TestQuoteRepo_Accept(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()
	quotes := NewPGQuoteRepo(db)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, 1500, 0)
	now := time.Now()

	request := func() dom.Quote {
		q, err := quotes.Create(ctx, dom.Quote{CustomerID: customer.ID, ProductID: product.ID, Quantity: 3},
			dom.QuoteMessage{AuthorID: customer.ID, Body: "bulk price?"})
		require.NoError(t, err)
		return q
	}

	q := request()
	_, err := quotes.Offer(ctx, q.ID, 1200, now.Add(time.Hour))
	require.NoError(t, err)

	_, _, err = quotes.Accept(ctx, q.ID, customer.ID+1, "USD", now)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	accepted, o, err := quotes.Accept(ctx, q.ID, customer.ID, "USD", now)
	require.NoError(t, err)
	assert.Equal(t, dom.QuoteAccepted, accepted.Status)
	require.NotNil(t, accepted.OrderID)
	assert.Equal(t, o.ID, *accepted.OrderID)
	assert.Equal(t, int64(3600), o.Total)
	require.Len(t, o.Items, 1)
	assert.Equal(t, int64(1200), o.Items[0].UnitPrice)

	expired := request()
	_, err = quotes.Offer(ctx, expired.ID, 1200, now.Add(time.Hour))
	require.NoError(t, err)
	_, _, err = quotes.Accept(ctx, expired.ID, customer.ID, "USD", now.Add(2*time.Hour))
	assert.ErrorIs(t, err, dom.ErrOfferExpired)

	got, err := quotes.GetByID(ctx, expired.ID)
	require.NoError(t, err)
	assert.Equal(t, dom.QuoteOffered, got.Status)
	assert.Nil(t, got.OrderID)
}

func TestSubscriptionRepo_AssignProfileRespectsLimit(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()
	subs := NewPGSubscriptionRepo(db)
	customer := seedCustomer(t, db)
	now := time.Now()

	s, err := subs.Create(ctx, dom.Subscription{
		Platform: "Netflix", AccountEmail: "family@example.com", MaxProfiles: 2, ExpiresAt: now.AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	for _, name := range []string{"Alice", "Bob"} {
		_, err := subs.AssignProfile(ctx, dom.AccountProfile{SubscriptionID: s.ID, CustomerID: customer.ID, Name: name}, now)
		require.NoError(t, err)
	}
	_, err = subs.AssignProfile(ctx, dom.AccountProfile{SubscriptionID: s.ID, CustomerID: customer.ID, Name: "Carol"}, now)
	assert.ErrorIs(t, err, dom.ErrSubscriptionFull)

	got, err := subs.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ProfileCount)
}
