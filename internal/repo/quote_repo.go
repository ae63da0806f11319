package repo

import (
	"context"
	"time"

	dom "storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QuoteRepo interface {
	Create(ctx context.Context, q dom.Quote, first dom.QuoteMessage) (dom.Quote, error)
	GetByID(ctx context.Context, id int64) (dom.Quote, error)
	List(ctx context.Context, customerID int64, status dom.QuoteStatus) ([]dom.Quote, error)
	AddMessage(ctx context.Context, m dom.QuoteMessage) (dom.QuoteMessage, error)
	Offer(ctx context.Context, id, unitPrice int64, expiresAt time.Time) (dom.Quote, error)
	Reject(ctx context.Context, id, customerID int64) (dom.Quote, error)
	Accept(ctx context.Context, id, customerID int64, currency string, now time.Time) (dom.Quote, dom.Order, error)
	StaleRequested(ctx context.Context, before time.Time) ([]dom.Quote, error)
}

type PGQuoteRepo struct {
	db *pgxpool.Pool
}

func NewPGQuoteRepo(db *pgxpool.Pool) *PGQuoteRepo {
	return &PGQuoteRepo{db: db}
}

const quoteSelect = `
	SELECT q.id, q.customer_id, q.product_id, p.name, q.quantity, q.status, q.offered_unit_price,
		q.offer_expires_at, q.order_id, q.created_at, q.updated_at
	FROM quotes q
	JOIN products p ON p.id = q.product_id`

const quoteMessageColumns = `id, quote_id, author_id, from_admin, body, created_at`

func scanQuote(row rowScanner) (dom.Quote, error) {
	var q dom.Quote
	err := row.Scan(&q.ID, &q.CustomerID, &q.ProductID, &q.ProductName, &q.Quantity, &q.Status,
		&q.OfferedUnitPrice, &q.OfferExpiresAt, &q.OrderID, &q.CreatedAt, &q.UpdatedAt)
	return q, err
}

func scanQuoteMessage(row rowScanner) (dom.QuoteMessage, error) {
	var m dom.QuoteMessage
	err := row.Scan(&m.ID, &m.QuoteID, &m.AuthorID, &m.FromAdmin, &m.Body, &m.CreatedAt)
	return m, err
}

// Create inserts the quote and its opening message together.
func (r *PGQuoteRepo) Create(ctx context.Context, q dom.Quote, first dom.QuoteMessage) (dom.Quote, error) {
	var out dom.Quote
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var id int64
		if err := tx.QueryRow(ctx, `
			INSERT INTO quotes (customer_id, product_id, quantity)
			VALUES ($1, $2, $3) RETURNING id`,
			q.CustomerID, q.ProductID, q.Quantity).Scan(&id); err != nil {
			return err
		}
		if first.Body != "" {
			first.QuoteID = id
			if _, err := insertQuoteMessage(ctx, tx, first); err != nil {
				return err
			}
		}
		var err error
		out, err = loadQuote(ctx, tx, id, false)
		return err
	})
	return out, err
}

func (r *PGQuoteRepo) GetByID(ctx context.Context, id int64) (dom.Quote, error) {
	q, err := scanQuote(r.db.QueryRow(ctx, quoteSelect+` WHERE q.id = $1`, id))
	if err != nil {
		return dom.Quote{}, err
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+quoteMessageColumns+` FROM quote_messages WHERE quote_id = $1 ORDER BY created_at, id`, id)
	if err != nil {
		return dom.Quote{}, err
	}
	q.Messages, err = collect(rows, scanQuoteMessage)
	return q, err
}

func (r *PGQuoteRepo) List(ctx context.Context, customerID int64, status dom.QuoteStatus) ([]dom.Quote, error) {
	rows, err := r.db.Query(ctx, quoteSelect+`
		WHERE ($1::bigint = 0 OR q.customer_id = $1::bigint)
		  AND ($2::text = '' OR q.status = $2::text)
		ORDER BY q.updated_at DESC, q.id DESC`, customerID, string(status))
	if err != nil {
		return nil, err
	}
	return collect(rows, scanQuote)
}

func (r *PGQuoteRepo) AddMessage(ctx context.Context, m dom.QuoteMessage) (dom.QuoteMessage, error) {
	var out dom.QuoteMessage
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		out, err = insertQuoteMessage(ctx, tx, m)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE quotes SET updated_at = NOW() WHERE id = $1`, m.QuoteID)
		return err
	})
	return out, err
}

func (r *PGQuoteRepo) Offer(ctx context.Context, id, unitPrice int64, expiresAt time.Time) (dom.Quote, error) {
	var out dom.Quote
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		q, err := loadQuote(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if err := q.CanOffer(); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			UPDATE quotes SET status = 'offered', offered_unit_price = $2, offer_expires_at = $3, updated_at = NOW()
			WHERE id = $1`, id, unitPrice, expiresAt); err != nil {
			return err
		}
		out, err = loadQuote(ctx, tx, id, false)
		return err
	})
	return out, err
}

// Reject closes an open quote owned by customerID.
func (r *PGQuoteRepo) Reject(ctx context.Context, id, customerID int64) (dom.Quote, error) {
	var out dom.Quote
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		q, err := loadQuote(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if q.CustomerID != customerID {
			return pgx.ErrNoRows
		}
		if err := q.CanReject(); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`UPDATE quotes SET status = 'rejected', updated_at = NOW() WHERE id = $1`, id); err != nil {
			return err
		}
		out, err = loadQuote(ctx, tx, id, false)
		return err
	})
	return out, err
}

// Accept creates an order at the offered price and links it to the quote.
func (r *PGQuoteRepo) Accept(ctx context.Context, id, customerID int64, currency string, now time.Time) (dom.Quote, dom.Order, error) {
	var (
		quote dom.Quote
		order dom.Order
	)
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		q, err := loadQuote(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if q.CustomerID != customerID {
			return pgx.ErrNoRows
		}
		if err := q.CanAccept(now); err != nil {
			return err
		}
		items := []dom.OrderItem{{
			ProductID: q.ProductID,
			Name:      q.ProductName,
			UnitPrice: *q.OfferedUnitPrice,
			Quantity:  q.Quantity,
		}}
		order, err = insertOrder(ctx, tx, dom.NewOrder(customerID, currency, items, "quote accepted"))
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`UPDATE quotes SET status = 'accepted', order_id = $2, updated_at = NOW() WHERE id = $1`,
			id, order.ID); err != nil {
			return err
		}
		quote, err = loadQuote(ctx, tx, id, false)
		return err
	})
	if err != nil {
		return dom.Quote{}, dom.Order{}, err
	}
	return quote, order, nil
}

// StaleRequested lists quotes still waiting for a first offer since before the cutoff.
func (r *PGQuoteRepo) StaleRequested(ctx context.Context, before time.Time) ([]dom.Quote, error) {
	rows, err := r.db.Query(ctx, quoteSelect+`
		WHERE q.status = 'requested' AND q.created_at < $1
		ORDER BY q.created_at`, before)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanQuote)
}

func loadQuote(ctx context.Context, tx pgx.Tx, id int64, lock bool) (dom.Quote, error) {
	query := quoteSelect + ` WHERE q.id = $1`
	if lock {
		query += ` FOR UPDATE OF q`
	}
	return scanQuote(tx.QueryRow(ctx, query, id))
}

func insertQuoteMessage(ctx context.Context, tx pgx.Tx, m dom.QuoteMessage) (dom.QuoteMessage, error) {
	return scanQuoteMessage(tx.QueryRow(ctx, `
		INSERT INTO quote_messages (quote_id, author_id, from_admin, body)
		VALUES ($1, $2, $3, $4)
		RETURNING `+quoteMessageColumns, m.QuoteID, m.AuthorID, m.FromAdmin, m.Body))
}
