package repo

import (
	"context"

	dom "storefront/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepo interface {
	Create(ctx context.Context, p dom.Product) (dom.Product, error)
	GetByID(ctx context.Context, id int64, includeInactive bool) (dom.Product, error)
	List(ctx context.Context, f dom.ProductFilter) ([]dom.Product, error)
	Update(ctx context.Context, p dom.Product) (dom.Product, error)
	SoftDelete(ctx context.Context, id int64) error
}

type PGProductRepo struct {
	db *pgxpool.Pool
}

func NewPGProductRepo(db *pgxpool.Pool) *PGProductRepo {
	return &PGProductRepo{db: db}
}

const productColumns = `id, kind, sku, name, description, price, stock, weight_grams, active, created_at, updated_at, deleted_at`

func scanProduct(row rowScanner) (dom.Product, error) {
	var p dom.Product
	err := row.Scan(&p.ID, &p.Kind, &p.SKU, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.WeightGrams, &p.Active, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)
	return p, err
}

func (r *PGProductRepo) Create(ctx context.Context, p dom.Product) (dom.Product, error) {
	query := `
		INSERT INTO products (kind, sku, name, description, price, stock, weight_grams, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + productColumns
	return scanProduct(r.db.QueryRow(ctx, query,
		p.Kind, p.SKU, p.Name, p.Description, p.Price, p.Stock, p.WeightGrams, p.Active))
}

func (r *PGProductRepo) GetByID(ctx context.Context, id int64, includeInactive bool) (dom.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE id = $1 AND deleted_at IS NULL AND (active OR $2)`
	return scanProduct(r.db.QueryRow(ctx, query, id, includeInactive))
}

func (r *PGProductRepo) List(ctx context.Context, f dom.ProductFilter) ([]dom.Product, error) {
	f = f.Normalize()
	pattern := ""
	if f.Query != "" {
		pattern = "%" + f.Query + "%"
	}
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE deleted_at IS NULL
		  AND (active OR $1)
		  AND ($2::text = '' OR kind = $2::text)
		  AND ($3::text = '' OR name ILIKE $3 OR description ILIKE $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.db.Query(ctx, query, f.IncludeInactive, string(f.Kind), pattern, f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanProduct)
}

func (r *PGProductRepo) Update(ctx context.Context, p dom.Product) (dom.Product, error) {
	query := `
		UPDATE products SET kind = $2, sku = $3, name = $4, description = $5, price = $6,
			stock = $7, weight_grams = $8, active = $9, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + productColumns
	return scanProduct(r.db.QueryRow(ctx, query, p.ID,
		p.Kind, p.SKU, p.Name, p.Description, p.Price, p.Stock, p.WeightGrams, p.Active))
}

func (r *PGProductRepo) SoftDelete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx,
		`UPDATE products SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id))
}
