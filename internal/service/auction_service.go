package service

import (
	"context"

	dom "storefront/internal/domain"
	"storefront/internal/repo"
)

// AuctionDetail is an auction with its bid history, newest first.
type AuctionDetail struct {
	Auction    dom.Auction
	Bids       []dom.Bid
	MinimumBid int64
}

type AuctionService struct {
	repo     repo.AuctionRepo
	products repo.ProductRepo
	currency string
	now      Clock
}

func NewAuctionService(r repo.AuctionRepo, products repo.ProductRepo, baseCurrency string) *AuctionService {
	return &AuctionService{repo: r, products: products, currency: baseCurrency, now: systemClock}
}

func (s *AuctionService) Create(ctx context.Context, a dom.Auction) (dom.Auction, error) {
	if err := a.Validate(); err != nil {
		return dom.Auction{}, err
	}
	if _, err := s.products.GetByID(ctx, a.ProductID, true); err != nil {
		return dom.Auction{}, mapRepoErr(err)
	}
	a.Status = dom.AuctionOpen
	out, err := s.repo.Create(ctx, a)
	return out, mapRepoErr(err)
}

// List returns auctions, open ones first.
func (s *AuctionService) List(ctx context.Context, status dom.AuctionStatus) ([]dom.Auction, error) {
	return s.repo.List(ctx, status)
}

func (s *AuctionService) Get(ctx context.Context, id int64) (AuctionDetail, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return AuctionDetail{}, mapRepoErr(err)
	}
	bids, err := s.repo.Bids(ctx, id)
	if err != nil {
		return AuctionDetail{}, err
	}
	return AuctionDetail{Auction: a, Bids: bids, MinimumBid: a.MinimumBid(a.HighestBid)}, nil
}

// Bid places a bid; the checks run with the auction row locked.
func (s *AuctionService) Bid(ctx context.Context, bidderID, auctionID, amount int64) (dom.Bid, error) {
	if err := dom.CheckAmount(amount); err != nil {
		return dom.Bid{}, err
	}
	b, err := s.repo.PlaceBid(ctx, auctionID, bidderID, amount, s.now())
	return b, mapRepoErr(err)
}

// Close ends the auction and creates the winner's order when there is a bid.
func (s *AuctionService) Close(ctx context.Context, id int64) (dom.Auction, error) {
	a, err := s.repo.Close(ctx, id, s.currency)
	return a, mapRepoErr(err)
}
