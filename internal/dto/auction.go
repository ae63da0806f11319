package dto

import "time"

type CreateAuctionRequest struct {
	ProductID     int64     `json:"product_id" binding:"required,min=1"`
	StartingPrice int64     `json:"starting_price" binding:"required,min=1,max=1000000000000"`
	MinIncrement  int64     `json:"min_increment" binding:"required,min=1,max=1000000000000"`
	StartsAt      Timestamp `json:"starts_at"`
	EndsAt        Timestamp `json:"ends_at"`
}

type BidRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1,max=1000000000000"`
}

type BidResponse struct {
	ID        int64         `json:"id"`
	AuctionID int64         `json:"auction_id"`
	BidderID  int64         `json:"bidder_id"`
	Amount    MoneyResponse `json:"amount"`
	CreatedAt time.Time     `json:"created_at"`
}

type AuctionResponse struct {
	ID            int64         `json:"id"`
	ProductID     int64         `json:"product_id"`
	ProductName   string        `json:"product_name"`
	StartingPrice MoneyResponse `json:"starting_price"`
	MinIncrement  MoneyResponse `json:"min_increment"`
	StartsAt      time.Time     `json:"starts_at"`
	EndsAt        time.Time     `json:"ends_at"`
	Status        string        `json:"status"`
	HighestBid    *BidResponse  `json:"highest_bid,omitempty"`
	WinningBidID  *int64        `json:"winning_bid_id,omitempty"`
	OrderID       *int64        `json:"order_id,omitempty"`
}

type AuctionDetailResponse struct {
	AuctionResponse
	MinimumBid MoneyResponse `json:"minimum_bid"`
	Bids       []BidResponse `json:"bids"`
}

type ListAuctionsResponse struct {
	Items []AuctionResponse `json:"items"`
}
