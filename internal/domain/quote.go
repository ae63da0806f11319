package domain

import (
	"fmt"
	"time"
)

type QuoteStatus string

const (
	QuoteRequested QuoteStatus = "requested"
	QuoteOffered   QuoteStatus = "offered"
	QuoteAccepted  QuoteStatus = "accepted"
	QuoteRejected  QuoteStatus = "rejected"
)

// DefaultOfferValidity applies when an admin offers a price without an expiry.
const DefaultOfferValidity = 7 * 24 * time.Hour

// Quote is a negotiated-price request for a product or service.
type Quote struct {
	ID               int64
	CustomerID       int64
	ProductID        int64
	ProductName      string
	Quantity         int
	Status           QuoteStatus
	OfferedUnitPrice *int64
	OfferExpiresAt   *time.Time
	OrderID          *int64
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Messages []QuoteMessage
}

type QuoteMessage struct {
	ID        int64
	QuoteID   int64
	AuthorID  int64
	FromAdmin bool
	Body      string
	CreatedAt time.Time
}

// CanOffer reports whether an admin may (re)price the quote.
func (q Quote) CanOffer() error {
	if q.Status != QuoteRequested && q.Status != QuoteOffered {
		return fmt.Errorf("%w: quote %s", ErrInvalidTransition, q.Status)
	}
	return nil
}

// CanAccept reports whether the customer may accept the current offer at now.
func (q Quote) CanAccept(now time.Time) error {
	if q.Status != QuoteOffered || q.OfferedUnitPrice == nil {
		return fmt.Errorf("%w: quote %s", ErrInvalidTransition, q.Status)
	}
	if q.OfferExpiresAt != nil && !now.Before(*q.OfferExpiresAt) {
		return ErrOfferExpired
	}
	return nil
}

// CanReject reports whether the quote is still open.
func (q Quote) CanReject() error {
	if q.Status != QuoteRequested && q.Status != QuoteOffered {
		return fmt.Errorf("%w: quote %s", ErrInvalidTransition, q.Status)
	}
	return nil
}

// OfferTotal is the offered unit price times quantity; zero without an offer.
func (q Quote) OfferTotal() int64 {
	if q.OfferedUnitPrice == nil {
		return 0
	}
	return *q.OfferedUnitPrice * int64(q.Quantity)
}
