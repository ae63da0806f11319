package repo

import (
	"context"
	"time"

	dom "storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepo interface {
	Create(ctx context.Context, o dom.Order) (dom.Order, error)
	GetByID(ctx context.Context, id int64) (dom.Order, error)
	List(ctx context.Context, f dom.OrderFilter) ([]dom.Order, error)
	Payments(ctx context.Context, orderID int64) ([]dom.Payment, error)
	History(ctx context.Context, orderID int64) ([]dom.StatusChange, error)
	RecordPayment(ctx context.Context, p dom.Payment) (dom.Order, dom.Payment, error)
	ConfirmPayment(ctx context.Context, orderID, paymentID int64, to dom.PaymentStatus, actorID *int64) (dom.Order, dom.Payment, error)
	ChangeStatus(ctx context.Context, orderID int64, to dom.OrderStatus, actorID *int64, note string) (dom.Order, error)
	UnpaidBefore(ctx context.Context, before time.Time) ([]dom.Order, error)
}

type PGOrderRepo struct {
	db *pgxpool.Pool
}

func NewPGOrderRepo(db *pgxpool.Pool) *PGOrderRepo {
	return &PGOrderRepo{db: db}
}

const orderColumns = `id, reference, customer_id, status, total, currency, notes, created_at, updated_at`

const paymentColumns = `id, order_id, amount, method, status, reference, recorded_by, created_at`

func scanOrder(row rowScanner) (dom.Order, error) {
	var o dom.Order
	err := row.Scan(&o.ID, &o.Reference, &o.CustomerID, &o.Status, &o.Total, &o.Currency,
		&o.Notes, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func scanOrderItem(row rowScanner) (dom.OrderItem, error) {
	var it dom.OrderItem
	err := row.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.UnitPrice, &it.Quantity)
	return it, err
}

func scanPayment(row rowScanner) (dom.Payment, error) {
	var p dom.Payment
	err := row.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Status, &p.Reference,
		&p.RecordedBy, &p.CreatedAt)
	return p, err
}

func scanStatusChange(row rowScanner) (dom.StatusChange, error) {
	var sc dom.StatusChange
	err := row.Scan(&sc.ID, &sc.OrderID, &sc.From, &sc.To, &sc.ChangedBy, &sc.Note, &sc.CreatedAt)
	return sc, err
}

// Create inserts an order and its items in one transaction.
func (r *PGOrderRepo) Create(ctx context.Context, o dom.Order) (dom.Order, error) {
	var out dom.Order
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		out, err = insertOrder(ctx, tx, o)
		return err
	})
	return out, err
}

func (r *PGOrderRepo) GetByID(ctx context.Context, id int64) (dom.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return dom.Order{}, err
	}
	o.Items, err = orderItems(ctx, r.db, id)
	if err != nil {
		return dom.Order{}, err
	}
	return o, nil
}

func (r *PGOrderRepo) List(ctx context.Context, f dom.OrderFilter) ([]dom.Order, error) {
	limit, offset := dom.ClampPage(f.Limit, f.Offset)
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1::text = '' OR status = $1::text)
		  AND ($2::bigint = 0 OR customer_id = $2::bigint)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.db.Query(ctx, query, string(f.Status), f.CustomerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanOrder)
}

func (r *PGOrderRepo) Payments(ctx context.Context, orderID int64) ([]dom.Payment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE order_id = $1 ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPayment)
}

func (r *PGOrderRepo) History(ctx context.Context, orderID int64) ([]dom.StatusChange, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, from_status, to_status, changed_by, note, created_at
		FROM order_status_history WHERE order_id = $1 ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanStatusChange)
}

// RecordPayment inserts a payment and advances the order status with the order row locked.
// A status history row is written only when the status actually changes.
func (r *PGOrderRepo) RecordPayment(ctx context.Context, p dom.Payment) (dom.Order, dom.Payment, error) {
	var (
		order dom.Order
		saved dom.Payment
	)
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		o, err := lockOrder(ctx, tx, p.OrderID)
		if err != nil {
			return err
		}
		paid, err := completedSum(ctx, tx, o.ID)
		if err != nil {
			return err
		}
		if err := dom.CheckPayment(o, paid, p); err != nil {
			return err
		}
		saved, err = scanPayment(tx.QueryRow(ctx, `
			INSERT INTO payments (order_id, amount, method, status, reference, recorded_by)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+paymentColumns,
			o.ID, p.Amount, p.Method, p.Status, p.Reference, p.RecordedBy))
		if err != nil {
			return err
		}
		if saved.Status == dom.PaymentCompleted {
			paid += saved.Amount
		}
		order, err = settleOrder(ctx, tx, o, paid, p.RecordedBy)
		return err
	})
	if err != nil {
		return dom.Order{}, dom.Payment{}, err
	}
	return order, saved, nil
}

// ConfirmPayment settles a pending payment as completed or failed and re-evaluates the order status.
func (r *PGOrderRepo) ConfirmPayment(ctx context.Context, orderID, paymentID int64, to dom.PaymentStatus, actorID *int64) (dom.Order, dom.Payment, error) {
	var (
		order dom.Order
		saved dom.Payment
	)
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		o, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		p, err := scanPayment(tx.QueryRow(ctx,
			`SELECT `+paymentColumns+` FROM payments WHERE id = $1 AND order_id = $2 FOR UPDATE`,
			paymentID, orderID))
		if err != nil {
			return err
		}
		paid, err := completedSum(ctx, tx, o.ID)
		if err != nil {
			return err
		}
		if err := dom.CheckConfirmation(o, paid, p, to); err != nil {
			return err
		}
		saved, err = scanPayment(tx.QueryRow(ctx,
			`UPDATE payments SET status = $2 WHERE id = $1 RETURNING `+paymentColumns, p.ID, to))
		if err != nil {
			return err
		}
		if to == dom.PaymentCompleted {
			paid += saved.Amount
		}
		order, err = settleOrder(ctx, tx, o, paid, actorID)
		return err
	})
	if err != nil {
		return dom.Order{}, dom.Payment{}, err
	}
	return order, saved, nil
}

// ChangeStatus applies a manual admin transition.
func (r *PGOrderRepo) ChangeStatus(ctx context.Context, orderID int64, to dom.OrderStatus, actorID *int64, note string) (dom.Order, error) {
	var out dom.Order
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		o, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if err := dom.ValidateTransition(o.Status, to); err != nil {
			return err
		}
		out, err = setOrderStatus(ctx, tx, o, to, actorID, note)
		return err
	})
	return out, err
}

// UnpaidBefore lists orders still awaiting payment that were created before the cutoff.
func (r *PGOrderRepo) UnpaidBefore(ctx context.Context, before time.Time) ([]dom.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE status IN ('pending', 'partially_paid') AND created_at < $1
		ORDER BY created_at`, before)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanOrder)
}

func insertOrder(ctx context.Context, tx pgx.Tx, o dom.Order) (dom.Order, error) {
	out, err := scanOrder(tx.QueryRow(ctx, `
		INSERT INTO orders (reference, customer_id, status, total, currency, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+orderColumns,
		o.Reference, o.CustomerID, o.Status, o.Total, o.Currency, o.Notes))
	if err != nil {
		return dom.Order{}, err
	}
	for _, it := range o.Items {
		saved, err := scanOrderItem(tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, name, unit_price, quantity)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, order_id, product_id, name, unit_price, quantity`,
			out.ID, it.ProductID, it.Name, it.UnitPrice, it.Quantity))
		if err != nil {
			return dom.Order{}, err
		}
		out.Items = append(out.Items, saved)
	}
	return out, nil
}

func orderItems(ctx context.Context, q querier, orderID int64) ([]dom.OrderItem, error) {
	rows, err := q.Query(ctx, `
		SELECT id, order_id, product_id, name, unit_price, quantity
		FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanOrderItem)
}

func lockOrder(ctx context.Context, tx pgx.Tx, id int64) (dom.Order, error) {
	return scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id))
}

func completedSum(ctx context.Context, tx pgx.Tx, orderID int64) (int64, error) {
	var sum int64
	err := tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)::bigint FROM payments WHERE order_id = $1 AND status = 'completed'`,
		orderID).Scan(&sum)
	return sum, err
}

// settleOrder moves the order to the status implied by the completed payment sum.
func settleOrder(ctx context.Context, tx pgx.Tx, o dom.Order, paid int64, actorID *int64) (dom.Order, error) {
	next := dom.StatusAfterPayments(o.Status, paid, o.Total)
	if next == o.Status {
		return o, nil
	}
	return setOrderStatus(ctx, tx, o, next, actorID, "payment recorded")
}

func setOrderStatus(ctx context.Context, tx pgx.Tx, o dom.Order, to dom.OrderStatus, actorID *int64, note string) (dom.Order, error) {
	out, err := scanOrder(tx.QueryRow(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING `+orderColumns,
		o.ID, to))
	if err != nil {
		return dom.Order{}, err
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO order_status_history (order_id, from_status, to_status, changed_by, note)
		VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.Status, to, actorID, note); err != nil {
		return dom.Order{}, err
	}
	out.Items = o.Items
	return out, nil
}
