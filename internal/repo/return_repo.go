package repo

import (
	"context"

	dom "storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReturnRepo interface {
	Create(ctx context.Context, rr dom.ReturnRequest) (dom.ReturnRequest, error)
	GetByID(ctx context.Context, id int64) (dom.ReturnRequest, error)
	List(ctx context.Context, customerID int64, status dom.ReturnStatus) ([]dom.ReturnRequest, error)
	Resolve(ctx context.Context, id int64, approve bool, note string, actorID *int64) (dom.ReturnRequest, error)
}

type PGReturnRepo struct {
	db *pgxpool.Pool
}

func NewPGReturnRepo(db *pgxpool.Pool) *PGReturnRepo {
	return &PGReturnRepo{db: db}
}

const returnColumns = `id, order_id, customer_id, reason, status, admin_note, created_at, resolved_at`

func scanReturn(row rowScanner) (dom.ReturnRequest, error) {
	var rr dom.ReturnRequest
	err := row.Scan(&rr.ID, &rr.OrderID, &rr.CustomerID, &rr.Reason, &rr.Status,
		&rr.AdminNote, &rr.CreatedAt, &rr.ResolvedAt)
	return rr, err
}

func (r *PGReturnRepo) Create(ctx context.Context, rr dom.ReturnRequest) (dom.ReturnRequest, error) {
	return scanReturn(r.db.QueryRow(ctx, `
		INSERT INTO return_requests (order_id, customer_id, reason)
		VALUES ($1, $2, $3)
		RETURNING `+returnColumns, rr.OrderID, rr.CustomerID, rr.Reason))
}

func (r *PGReturnRepo) GetByID(ctx context.Context, id int64) (dom.ReturnRequest, error) {
	return scanReturn(r.db.QueryRow(ctx, `SELECT `+returnColumns+` FROM return_requests WHERE id = $1`, id))
}

// List filters by customer when customerID > 0 and by status when set.
func (r *PGReturnRepo) List(ctx context.Context, customerID int64, status dom.ReturnStatus) ([]dom.ReturnRequest, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+returnColumns+`
		FROM return_requests
		WHERE ($1::bigint = 0 OR customer_id = $1::bigint)
		  AND ($2::text = '' OR status = $2::text)
		ORDER BY created_at DESC, id DESC`, customerID, string(status))
	if err != nil {
		return nil, err
	}
	return collect(rows, scanReturn)
}

// Resolve approves or rejects an open request. Approval refunds the order in the same transaction.
func (r *PGReturnRepo) Resolve(ctx context.Context, id int64, approve bool, note string, actorID *int64) (dom.ReturnRequest, error) {
	var out dom.ReturnRequest
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		rr, err := scanReturn(tx.QueryRow(ctx,
			`SELECT `+returnColumns+` FROM return_requests WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if rr.Status != dom.ReturnRequested {
			return dom.ErrInvalidTransition
		}
		status := dom.ReturnRejected
		if approve {
			status = dom.ReturnApproved
			o, err := lockOrder(ctx, tx, rr.OrderID)
			if err != nil {
				return err
			}
			if err := dom.ValidateTransition(o.Status, dom.OrderRefunded); err != nil {
				return err
			}
			if _, err := setOrderStatus(ctx, tx, o, dom.OrderRefunded, actorID, "return approved"); err != nil {
				return err
			}
		}
		out, err = scanReturn(tx.QueryRow(ctx, `
			UPDATE return_requests SET status = $2, admin_note = $3, resolved_at = NOW()
			WHERE id = $1
			RETURNING `+returnColumns, id, status, note))
		return err
	})
	return out, err
}
