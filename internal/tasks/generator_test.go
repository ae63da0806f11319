package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/config"
	dom "storefront/internal/domain"
	"storefront/internal/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) CreateIfAbsent(ctx context.Context, t dom.Task) (bool, error) {
	args := m.Called(ctx, t)
	return args.Bool(0), args.Error(1)
}

type fakeSources struct {
	subs     []dom.Subscription
	orders   []dom.Order
	quotes   []dom.Quote
	auctions []dom.Auction
	err      error

	subsBefore   time.Time
	ordersBefore time.Time
	quotesBefore time.Time
}

func (f *fakeSources) ExpiringBefore(_ context.Context, before time.Time) ([]dom.Subscription, error) {
	f.subsBefore = before
	return f.subs, nil
}

func (f *fakeSources) UnpaidBefore(_ context.Context, before time.Time) ([]dom.Order, error) {
	f.ordersBefore = before
	return f.orders, nil
}

func (f *fakeSources) StaleRequested(_ context.Context, before time.Time) ([]dom.Quote, error) {
	f.quotesBefore = before
	return f.quotes, nil
}

func (f *fakeSources) EndedOpen(_ context.Context, _ time.Time) ([]dom.Auction, error) {
	return f.auctions, f.err
}

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func taskConfig(t *testing.T) config.TaskConfig {
	t.Helper()
	var cfg config.TaskConfig
	require.NoError(t, cfg.SubscriptionWindow.SetValue("168h"))
	require.NoError(t, cfg.PaymentOverdue.SetValue("72h"))
	require.NoError(t, cfg.QuoteStale.SetValue("24h"))
	return cfg
}

func newGenerator(store Store, rules []Rule) *Generator {
	g := NewGenerator(store, logger.Nop(), rules...)
	g.now = func() time.Time { return now }
	return g
}

func TestGenerator_RunCountsPerRule(t *testing.T) {
	src := &fakeSources{
		subs:     []dom.Subscription{{ID: 1, Platform: "Netflix", ExpiresAt: now.Add(48 * time.Hour)}},
		orders:   []dom.Order{{ID: 10, Reference: uuid.New()}, {ID: 11, Reference: uuid.New()}},
		quotes:   []dom.Quote{{ID: 5, ProductName: "Sofa", Quantity: 2}},
		auctions: []dom.Auction{{ID: 3, EndsAt: now.Add(-time.Hour)}},
	}
	store := &mockStore{}
	store.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(t dom.Task) bool {
		return t.Kind == dom.TaskPaymentOverdue && t.RefID == 11
	})).Return(false, nil)
	store.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(t dom.Task) bool {
		return t.Kind == dom.TaskQuoteUnanswered
	})).Return(false, errors.New("boom"))
	store.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(true, nil)

	g := newGenerator(store, DefaultRules(taskConfig(t), src, src, src, src))
	report, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Counts{Created: 1}, report[dom.TaskSubscriptionExpiring])
	assert.Equal(t, Counts{Created: 1, Skipped: 1}, report[dom.TaskPaymentOverdue])
	assert.Equal(t, Counts{Failed: 1}, report[dom.TaskQuoteUnanswered])
	assert.Equal(t, Counts{Created: 1}, report[dom.TaskAuctionEnded])
	assert.Equal(t, Counts{Created: 3, Skipped: 1, Failed: 1}, report.Total())

	assert.Equal(t, now.Add(168*time.Hour), src.subsBefore)
	assert.Equal(t, now.Add(-72*time.Hour), src.ordersBefore)
	assert.Equal(t, now.Add(-24*time.Hour), src.quotesBefore)
}

func TestGenerator_RuleQueryFailure(t *testing.T) {
	src := &fakeSources{err: errors.New("db down"), orders: []dom.Order{{ID: 1}}}
	store := &mockStore{}
	store.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(true, nil)

	g := newGenerator(store, []Rule{AuctionEnded{Source: src}, PaymentOverdue{Source: src, After: time.Hour}})
	report, err := g.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, Counts{Created: 1}, report[dom.TaskPaymentOverdue])
	assert.Equal(t, Counts{}, report[dom.TaskAuctionEnded])
}

func TestGenerator_TaskShape(t *testing.T) {
	expires := now.Add(24 * time.Hour)
	src := &fakeSources{subs: []dom.Subscription{{ID: 7, Platform: "Disney+", AccountEmail: "a@b.c", ExpiresAt: expires}}}
	var got dom.Task
	store := &mockStore{}
	store.On("CreateIfAbsent", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).(dom.Task) }).
		Return(true, nil)

	g := newGenerator(store, []Rule{SubscriptionExpiring{Source: src, Window: time.Hour}})
	_, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dom.TaskSubscriptionExpiring, got.Kind)
	assert.Equal(t, int64(7), got.RefID)
	require.NotNil(t, got.DueAt)
	assert.Equal(t, expires, *got.DueAt)
	assert.Contains(t, got.Title, "Disney+")
}

func TestGenerator_WatchStopsOnCancel(t *testing.T) {
	store := &mockStore{}
	g := newGenerator(store, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := g.Watch(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}
