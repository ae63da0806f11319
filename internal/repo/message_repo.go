package repo

import (
	"context"
	"time"

	dom "storefront/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepo interface {
	List(ctx context.Context, userID int64) ([]dom.Message, error)
	Create(ctx context.Context, m dom.Message) (dom.Message, error)
	MarkRead(ctx context.Context, userID int64, fromAdmin bool, now time.Time) (int64, error)
}

type PGMessageRepo struct {
	db *pgxpool.Pool
}

func NewPGMessageRepo(db *pgxpool.Pool) *PGMessageRepo {
	return &PGMessageRepo{db: db}
}

const messageColumns = `id, user_id, from_admin, body, created_at, read_at`

func scanMessage(row rowScanner) (dom.Message, error) {
	var m dom.Message
	err := row.Scan(&m.ID, &m.UserID, &m.FromAdmin, &m.Body, &m.CreatedAt, &m.ReadAt)
	return m, err
}

func (r *PGMessageRepo) List(ctx context.Context, userID int64) ([]dom.Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanMessage)
}

func (r *PGMessageRepo) Create(ctx context.Context, m dom.Message) (dom.Message, error) {
	return scanMessage(r.db.QueryRow(ctx, `
		INSERT INTO messages (user_id, from_admin, body) VALUES ($1, $2, $3)
		RETURNING `+messageColumns, m.UserID, m.FromAdmin, m.Body))
}

// MarkRead stamps unread messages of the thread sent by the given side.
func (r *PGMessageRepo) MarkRead(ctx context.Context, userID int64, fromAdmin bool, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE messages SET read_at = $3
		WHERE user_id = $1 AND from_admin = $2 AND read_at IS NULL`, userID, fromAdmin, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
