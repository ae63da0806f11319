package repo

import (
	"context"

	dom "storefront/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ImportSimRepo interface {
	Create(ctx context.Context, s dom.ImportSimulation) (dom.ImportSimulation, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]dom.ImportSimulation, error)
}

type PGImportSimRepo struct {
	db *pgxpool.Pool
}

func NewPGImportSimRepo(db *pgxpool.Pool) *PGImportSimRepo {
	return &PGImportSimRepo{db: db}
}

const importSimColumns = `id, user_id, product_id, quantity, rates, breakdown, created_at`

// Rates and breakdown are stored as JSONB; decimals marshal as strings.
func scanImportSim(row rowScanner) (dom.ImportSimulation, error) {
	var s dom.ImportSimulation
	err := row.Scan(&s.ID, &s.UserID, &s.ProductID, &s.Quantity, &s.Rates, &s.Breakdown, &s.CreatedAt)
	return s, err
}

func (r *PGImportSimRepo) Create(ctx context.Context, s dom.ImportSimulation) (dom.ImportSimulation, error) {
	return scanImportSim(r.db.QueryRow(ctx, `
		INSERT INTO import_simulations (user_id, product_id, quantity, rates, breakdown)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+importSimColumns, s.UserID, s.ProductID, s.Quantity, s.Rates, s.Breakdown))
}

func (r *PGImportSimRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]dom.ImportSimulation, error) {
	limit, _ = dom.ClampPage(limit, 0)
	rows, err := r.db.Query(ctx, `
		SELECT `+importSimColumns+`
		FROM import_simulations WHERE user_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanImportSim)
}
