package repo

import (
	"context"
	"errors"
	"time"

	dom "storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepo interface {
	CreateIfAbsent(ctx context.Context, t dom.Task) (bool, error)
	List(ctx context.Context, f dom.TaskFilter) ([]dom.Task, error)
	Complete(ctx context.Context, id int64, now time.Time) (dom.Task, error)
}

type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

const taskColumns = `id, kind, ref_id, title, status, due_at, created_at, completed_at`

func scanTask(row rowScanner) (dom.Task, error) {
	var t dom.Task
	err := row.Scan(&t.ID, &t.Kind, &t.RefID, &t.Title, &t.Status, &t.DueAt, &t.CreatedAt, &t.CompletedAt)
	return t, err
}

// CreateIfAbsent inserts an open task unless one is already open for (kind, ref_id).
// It reports whether a row was created.
func (r *PGTaskRepo) CreateIfAbsent(ctx context.Context, t dom.Task) (bool, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO tasks (kind, ref_id, title, due_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (kind, ref_id) WHERE status = 'open' DO NOTHING
		RETURNING id`, t.Kind, t.RefID, t.Title, t.DueAt).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *PGTaskRepo) List(ctx context.Context, f dom.TaskFilter) ([]dom.Task, error) {
	limit, offset := dom.ClampPage(f.Limit, f.Offset)
	rows, err := r.db.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE ($1::text = '' OR kind = $1::text)
		  AND ($2::text = '' OR status = $2::text)
		ORDER BY due_at NULLS LAST, created_at
		LIMIT $3 OFFSET $4`, string(f.Kind), string(f.Status), limit, offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTask)
}

func (r *PGTaskRepo) Complete(ctx context.Context, id int64, now time.Time) (dom.Task, error) {
	return scanTask(r.db.QueryRow(ctx, `
		UPDATE tasks SET status = 'done', completed_at = $2
		WHERE id = $1 AND status = 'open'
		RETURNING `+taskColumns, id, now))
}
