package domain

import "time"

type ProductKind string

const (
	KindProduct ProductKind = "product"
	KindService ProductKind = "service"
)

func (k ProductKind) Valid() bool { return k == KindProduct || k == KindService }

// Product is a catalog entry. Services are sold like products but carry no stock.
// Price is in minor units of the shop's base currency.
type Product struct {
	ID          int64
	Kind        ProductKind
	SKU         string
	Name        string
	Description string
	Price       int64
	Stock       int
	WeightGrams int
	Active      bool

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Stocked reports whether the product tracks inventory.
func (p Product) Stocked() bool { return p.Kind == KindProduct }

// Available reports whether qty units can be sold right now.
func (p Product) Available(qty int) bool {
	if !p.Active || p.DeletedAt != nil {
		return false
	}
	if p.Stocked() {
		return p.Stock >= qty
	}
	return true
}

// ProductFilter narrows catalog listings. IncludeInactive is admin-only.
type ProductFilter struct {
	Kind            ProductKind
	Query           string
	IncludeInactive bool
	Limit           int
	Offset          int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize clamps paging to sane bounds.
func (f ProductFilter) Normalize() ProductFilter {
	f.Limit, f.Offset = ClampPage(f.Limit, f.Offset)
	return f
}

// ClampPage applies the default and maximum page size.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
