package dto

import "time"

type CreateProductRequest struct {
	Kind        string `json:"kind" binding:"omitempty,oneof=product service"`
	SKU         string `json:"sku" binding:"required,min=1,max=64"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=5000"`
	Price       int64  `json:"price" binding:"min=0,max=1000000000000"`
	Stock       int    `json:"stock" binding:"min=0"`
	WeightGrams int    `json:"weight_grams" binding:"min=0"`
	Active      *bool  `json:"active"`
}

// UpdateProductRequest is a partial update; omitted fields are unchanged.
type UpdateProductRequest struct {
	Kind        *string `json:"kind" binding:"omitempty,oneof=product service"`
	SKU         *string `json:"sku" binding:"omitempty,min=1,max=64"`
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Price       *int64  `json:"price" binding:"omitempty,min=0,max=1000000000000"`
	Stock       *int    `json:"stock" binding:"omitempty,min=0"`
	WeightGrams *int    `json:"weight_grams" binding:"omitempty,min=0"`
	Active      *bool   `json:"active"`
}

type ProductResponse struct {
	ID          int64          `json:"id"`
	Kind        string         `json:"kind"`
	SKU         string         `json:"sku"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       MoneyResponse  `json:"price"`
	Converted   *MoneyResponse `json:"converted_price,omitempty"`
	Stock       int            `json:"stock"`
	WeightGrams int            `json:"weight_grams"`
	Active      bool           `json:"active"`
	InStock     bool           `json:"in_stock"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type ListProductsResponse struct {
	Items  []ProductResponse `json:"items"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}
