package tasks

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/config"
	dom "storefront/internal/domain"
)

type SubscriptionSource interface {
	ExpiringBefore(ctx context.Context, before time.Time) ([]dom.Subscription, error)
}

type OrderSource interface {
	UnpaidBefore(ctx context.Context, before time.Time) ([]dom.Order, error)
}

type QuoteSource interface {
	StaleRequested(ctx context.Context, before time.Time) ([]dom.Quote, error)
}

type AuctionSource interface {
	EndedOpen(ctx context.Context, now time.Time) ([]dom.Auction, error)
}

// DefaultRules wires the four follow-up rules with the configured windows.
func DefaultRules(cfg config.TaskConfig, subs SubscriptionSource, orders OrderSource, quotes QuoteSource, auctions AuctionSource) []Rule {
	return []Rule{
		SubscriptionExpiring{Source: subs, Window: cfg.SubscriptionWindow.Duration()},
		PaymentOverdue{Source: orders, After: cfg.PaymentOverdue.Duration()},
		QuoteUnanswered{Source: quotes, After: cfg.QuoteStale.Duration()},
		AuctionEnded{Source: auctions},
	}
}

// SubscriptionExpiring flags active subscriptions that expire within Window.
type SubscriptionExpiring struct {
	Source SubscriptionSource
	Window time.Duration
}

func (SubscriptionExpiring) Kind() dom.TaskKind { return dom.TaskSubscriptionExpiring }

func (r SubscriptionExpiring) Candidates(ctx context.Context, now time.Time) ([]dom.Task, error) {
	subs, err := r.Source.ExpiringBefore(ctx, now.Add(r.Window))
	if err != nil {
		return nil, err
	}
	out := make([]dom.Task, 0, len(subs))
	for _, s := range subs {
		due := s.ExpiresAt
		out = append(out, dom.Task{
			RefID: s.ID,
			Title: fmt.Sprintf("Renew %s subscription %s (expires %s)", s.Platform, s.AccountEmail, s.ExpiresAt.Format("2006-01-02")),
			DueAt: &due,
		})
	}
	return out, nil
}

// PaymentOverdue flags orders still awaiting payment After their creation.
type PaymentOverdue struct {
	Source OrderSource
	After  time.Duration
}

func (PaymentOverdue) Kind() dom.TaskKind { return dom.TaskPaymentOverdue }

func (r PaymentOverdue) Candidates(ctx context.Context, now time.Time) ([]dom.Task, error) {
	orders, err := r.Source.UnpaidBefore(ctx, now.Add(-r.After))
	if err != nil {
		return nil, err
	}
	out := make([]dom.Task, 0, len(orders))
	for _, o := range orders {
		due := now
		out = append(out, dom.Task{
			RefID: o.ID,
			Title: fmt.Sprintf("Follow up unpaid order %s (%s)", o.Reference, o.Status),
			DueAt: &due,
		})
	}
	return out, nil
}

// QuoteUnanswered flags quotes nobody has priced After they were requested.
type QuoteUnanswered struct {
	Source QuoteSource
	After  time.Duration
}

func (QuoteUnanswered) Kind() dom.TaskKind { return dom.TaskQuoteUnanswered }

func (r QuoteUnanswered) Candidates(ctx context.Context, now time.Time) ([]dom.Task, error) {
	quotes, err := r.Source.StaleRequested(ctx, now.Add(-r.After))
	if err != nil {
		return nil, err
	}
	out := make([]dom.Task, 0, len(quotes))
	for _, q := range quotes {
		due := now
		out = append(out, dom.Task{
			RefID: q.ID,
			Title: fmt.Sprintf("Answer quote #%d for %s x%d", q.ID, q.ProductName, q.Quantity),
			DueAt: &due,
		})
	}
	return out, nil
}

// AuctionEnded flags open auctions whose end time has passed.
type AuctionEnded struct {
	Source AuctionSource
}

func (AuctionEnded) Kind() dom.TaskKind { return dom.TaskAuctionEnded }

func (r AuctionEnded) Candidates(ctx context.Context, now time.Time) ([]dom.Task, error) {
	auctions, err := r.Source.EndedOpen(ctx, now)
	if err != nil {
		return nil, err
	}
	out := make([]dom.Task, 0, len(auctions))
	for _, a := range auctions {
		due := a.EndsAt
		out = append(out, dom.Task{
			RefID: a.ID,
			Title: fmt.Sprintf("Close auction #%d for %s", a.ID, a.ProductName),
			DueAt: &due,
		})
	}
	return out, nil
}
