package repo

import (
	"context"

	dom "storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CartRepo interface {
	Lines(ctx context.Context, userID int64) ([]dom.CartLine, error)
	AddItem(ctx context.Context, userID, productID int64, qty int) error
	SetQuantity(ctx context.Context, userID, productID int64, qty int) error
	RemoveItem(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
	Checkout(ctx context.Context, userID int64, currency, notes string) (dom.Order, error)
}

type PGCartRepo struct {
	db *pgxpool.Pool
}

func NewPGCartRepo(db *pgxpool.Pool) *PGCartRepo {
	return &PGCartRepo{db: db}
}

const cartLineQuery = `
	SELECT p.id, p.kind, p.name, p.price, c.quantity, p.stock, (p.active AND p.deleted_at IS NULL)
	FROM cart_items c
	JOIN products p ON p.id = c.product_id
	WHERE c.user_id = $1
	ORDER BY c.added_at, p.id`

func scanCartLine(row rowScanner) (dom.CartLine, error) {
	var l dom.CartLine
	err := row.Scan(&l.ProductID, &l.Kind, &l.Name, &l.UnitPrice, &l.Quantity, &l.Stock, &l.Active)
	return l, err
}

func (r *PGCartRepo) Lines(ctx context.Context, userID int64) ([]dom.CartLine, error) {
	rows, err := r.db.Query(ctx, cartLineQuery, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanCartLine)
}

// AddItem adds qty to the line, creating it if needed.
func (r *PGCartRepo) AddItem(ctx context.Context, userID, productID int64, qty int) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		userID, productID, qty)
	return err
}

func (r *PGCartRepo) SetQuantity(ctx context.Context, userID, productID int64, qty int) error {
	return affected(r.db.Exec(ctx,
		`UPDATE cart_items SET quantity = $3 WHERE user_id = $1 AND product_id = $2`,
		userID, productID, qty))
}

func (r *PGCartRepo) RemoveItem(ctx context.Context, userID, productID int64) error {
	return affected(r.db.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID))
}

func (r *PGCartRepo) Clear(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}

// Checkout turns the cart into a pending order. Product rows are locked so stock
// checks and decrements cannot interleave with another checkout.
func (r *PGCartRepo) Checkout(ctx context.Context, userID int64, currency, notes string) (dom.Order, error) {
	var out dom.Order
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, cartLineQuery+` FOR UPDATE OF p`, userID)
		if err != nil {
			return err
		}
		lines, err := collect(rows, scanCartLine)
		if err != nil {
			return err
		}
		if err := dom.ValidateCheckout(lines); err != nil {
			return err
		}
		out, err = insertOrder(ctx, tx, dom.NewOrder(userID, currency, dom.OrderItems(lines), notes))
		if err != nil {
			return err
		}
		for _, l := range lines {
			if l.Kind != dom.KindProduct {
				continue
			}
			if _, err := tx.Exec(ctx,
				`UPDATE products SET stock = stock - $2, updated_at = NOW() WHERE id = $1`,
				l.ProductID, l.Quantity); err != nil {
				return err
			}
		}
		_, err = tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
		return err
	})
	return out, err
}
