package domain

import (
	"fmt"
	"time"
)

type AuctionStatus string

const (
	AuctionOpen   AuctionStatus = "open"
	AuctionClosed AuctionStatus = "closed"
)

type Auction struct {
	ID            int64
	ProductID     int64
	ProductName   string
	StartingPrice int64
	MinIncrement  int64
	StartsAt      time.Time
	EndsAt        time.Time
	Status        AuctionStatus
	WinningBidID  *int64
	OrderID       *int64
	CreatedAt     time.Time

	HighestBid *Bid
}

type Bid struct {
	ID        int64
	AuctionID int64
	BidderID  int64
	Amount    int64
	CreatedAt time.Time
}

// Validate checks the auction definition itself.
func (a Auction) Validate() error {
	if err := CheckAmount(a.StartingPrice); err != nil {
		return err
	}
	if err := CheckAmount(a.MinIncrement); err != nil {
		return err
	}
	if !a.EndsAt.After(a.StartsAt) {
		return fmt.Errorf("%w: ends_at must be after starts_at", ErrInvalidTransition)
	}
	return nil
}

// MinimumBid is the smallest acceptable next bid given the current highest.
func (a Auction) MinimumBid(highest *Bid) int64 {
	if highest == nil {
		return a.StartingPrice
	}
	return highest.Amount + a.MinIncrement
}

// ValidateBid checks a bid against the auction window and the current highest bid.
func (a Auction) ValidateBid(highest *Bid, bidderID, amount int64, now time.Time) error {
	if a.Status != AuctionOpen || !now.Before(a.EndsAt) {
		return ErrAuctionClosed
	}
	if now.Before(a.StartsAt) {
		return ErrAuctionNotStarted
	}
	if highest != nil && highest.BidderID == bidderID {
		return ErrAlreadyHighest
	}
	if err := CheckAmount(amount); err != nil {
		return err
	}
	if highest == nil {
		if amount < a.StartingPrice {
			return fmt.Errorf("%w: minimum is %d", ErrBidTooLow, a.StartingPrice)
		}
		return nil
	}
	if amount-highest.Amount < a.MinIncrement {
		return fmt.Errorf("%w: minimum is %d", ErrBidTooLow, a.MinimumBid(highest))
	}
	return nil
}
