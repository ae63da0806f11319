package repo

import (
	"context"
	"errors"
	"time"

	dom "storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuctionRepo interface {
	Create(ctx context.Context, a dom.Auction) (dom.Auction, error)
	GetByID(ctx context.Context, id int64) (dom.Auction, error)
	List(ctx context.Context, status dom.AuctionStatus) ([]dom.Auction, error)
	Bids(ctx context.Context, auctionID int64) ([]dom.Bid, error)
	PlaceBid(ctx context.Context, auctionID, bidderID, amount int64, now time.Time) (dom.Bid, error)
	Close(ctx context.Context, auctionID int64, currency string) (dom.Auction, error)
	EndedOpen(ctx context.Context, now time.Time) ([]dom.Auction, error)
}

type PGAuctionRepo struct {
	db *pgxpool.Pool
}

func NewPGAuctionRepo(db *pgxpool.Pool) *PGAuctionRepo {
	return &PGAuctionRepo{db: db}
}

const auctionSelect = `
	SELECT a.id, a.product_id, p.name, a.starting_price, a.min_increment, a.starts_at, a.ends_at,
		a.status, a.winning_bid_id, a.order_id, a.created_at
	FROM auctions a
	JOIN products p ON p.id = a.product_id`

const bidColumns = `id, auction_id, bidder_id, amount, created_at`

func scanAuction(row rowScanner) (dom.Auction, error) {
	var a dom.Auction
	err := row.Scan(&a.ID, &a.ProductID, &a.ProductName, &a.StartingPrice, &a.MinIncrement,
		&a.StartsAt, &a.EndsAt, &a.Status, &a.WinningBidID, &a.OrderID, &a.CreatedAt)
	return a, err
}

func scanBid(row rowScanner) (dom.Bid, error) {
	var b dom.Bid
	err := row.Scan(&b.ID, &b.AuctionID, &b.BidderID, &b.Amount, &b.CreatedAt)
	return b, err
}

func (r *PGAuctionRepo) Create(ctx context.Context, a dom.Auction) (dom.Auction, error) {
	var id int64
	if err := r.db.QueryRow(ctx, `
		INSERT INTO auctions (product_id, starting_price, min_increment, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		a.ProductID, a.StartingPrice, a.MinIncrement, a.StartsAt, a.EndsAt).Scan(&id); err != nil {
		return dom.Auction{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID returns the auction with its current highest bid.
func (r *PGAuctionRepo) GetByID(ctx context.Context, id int64) (dom.Auction, error) {
	a, err := scanAuction(r.db.QueryRow(ctx, auctionSelect+` WHERE a.id = $1`, id))
	if err != nil {
		return dom.Auction{}, err
	}
	a.HighestBid, err = highestBid(ctx, r.db, id)
	return a, err
}

// List returns open auctions first, soonest ending first.
func (r *PGAuctionRepo) List(ctx context.Context, status dom.AuctionStatus) ([]dom.Auction, error) {
	rows, err := r.db.Query(ctx, auctionSelect+`
		WHERE ($1::text = '' OR a.status = $1::text)
		ORDER BY (a.status = 'open') DESC, a.ends_at`, string(status))
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAuction)
}

func (r *PGAuctionRepo) Bids(ctx context.Context, auctionID int64) ([]dom.Bid, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+bidColumns+` FROM bids WHERE auction_id = $1 ORDER BY amount DESC, id`, auctionID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanBid)
}

// PlaceBid validates and stores a bid while holding the auction row lock.
func (r *PGAuctionRepo) PlaceBid(ctx context.Context, auctionID, bidderID, amount int64, now time.Time) (dom.Bid, error) {
	var out dom.Bid
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		a, err := scanAuction(tx.QueryRow(ctx, auctionSelect+` WHERE a.id = $1 FOR UPDATE OF a`, auctionID))
		if err != nil {
			return err
		}
		highest, err := highestBid(ctx, tx, auctionID)
		if err != nil {
			return err
		}
		if err := a.ValidateBid(highest, bidderID, amount, now); err != nil {
			return err
		}
		out, err = scanBid(tx.QueryRow(ctx, `
			INSERT INTO bids (auction_id, bidder_id, amount) VALUES ($1, $2, $3)
			RETURNING `+bidColumns, auctionID, bidderID, amount))
		return err
	})
	return out, err
}

// Close ends the auction. The highest bidder, if any, gets a pending order at the bid amount.
func (r *PGAuctionRepo) Close(ctx context.Context, auctionID int64, currency string) (dom.Auction, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		a, err := scanAuction(tx.QueryRow(ctx, auctionSelect+` WHERE a.id = $1 FOR UPDATE OF a`, auctionID))
		if err != nil {
			return err
		}
		if a.Status != dom.AuctionOpen {
			return dom.ErrAuctionClosed
		}
		highest, err := highestBid(ctx, tx, auctionID)
		if err != nil {
			return err
		}
		if highest == nil {
			_, err = tx.Exec(ctx, `UPDATE auctions SET status = 'closed' WHERE id = $1`, auctionID)
			return err
		}
		items := []dom.OrderItem{{ProductID: a.ProductID, Name: a.ProductName, UnitPrice: highest.Amount, Quantity: 1}}
		order, err := insertOrder(ctx, tx, dom.NewOrder(highest.BidderID, currency, items, "auction won"))
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			UPDATE auctions SET status = 'closed', winning_bid_id = $2, order_id = $3 WHERE id = $1`,
			auctionID, highest.ID, order.ID)
		return err
	})
	if err != nil {
		return dom.Auction{}, err
	}
	return r.GetByID(ctx, auctionID)
}

// EndedOpen lists auctions whose window has passed but were never closed.
func (r *PGAuctionRepo) EndedOpen(ctx context.Context, now time.Time) ([]dom.Auction, error) {
	rows, err := r.db.Query(ctx, auctionSelect+`
		WHERE a.status = 'open' AND a.ends_at <= $1
		ORDER BY a.ends_at`, now)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAuction)
}

func highestBid(ctx context.Context, q querier, auctionID int64) (*dom.Bid, error) {
	b, err := scanBid(q.QueryRow(ctx,
		`SELECT `+bidColumns+` FROM bids WHERE auction_id = $1 ORDER BY amount DESC, id LIMIT 1`, auctionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
