package domain

import "errors"

// Business rule violations. Services wrap these with context; handlers map them to 4xx.
var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrAmountTooLarge     = errors.New("amount exceeds limit")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrOverpayment        = errors.New("payment exceeds outstanding balance")
	ErrOrderClosed        = errors.New("order is closed")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrUnknownCurrency    = errors.New("unknown currency")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrAuctionClosed      = errors.New("auction is closed")
	ErrAuctionNotStarted  = errors.New("auction has not started")
	ErrBidTooLow          = errors.New("bid too low")
	ErrAlreadyHighest     = errors.New("already the highest bidder")
	ErrNoBids             = errors.New("auction has no bids")
	ErrSubscriptionFull   = errors.New("subscription has no free profiles")
	ErrSubscriptionClosed = errors.New("subscription is not active")
	ErrOfferExpired       = errors.New("quote offer expired")
	ErrReturnNotAllowed   = errors.New("order cannot be returned")
	ErrInvalidImport      = errors.New("invalid import simulation input")
)
