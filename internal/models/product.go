package models

import "time"

// Product represents a catalogue entry and owns a collection of prices.
// Name is unique across all products, enforced by a database constraint.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null;type:varchar(100)" validate:"required,min=1,max=100"`
	Description string    `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Stock       int       `json:"stock" validate:"gte=0"`
	CreatedAt   time.Time `json:"created_at"`
	Prices      []Price   `json:"prices" gorm:"constraint:OnDelete:CASCADE"`
}

// Price is a single price row belonging to exactly one product. Rows are never
// updated in place: replacing a product's prices deletes the old set and inserts
// a fresh one within the same transaction as the other field changes.
type Price struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Amount    float64   `json:"amount" gorm:"not null" validate:"required,gt=0"`
	ProductID uint      `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PriceInput is the request shape for a single price on create/update.
type PriceInput struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// CreateProductRequest is the request body for creating a product.
// The price list is required and must be non-empty.
type CreateProductRequest struct {
	Name        string       `json:"name" validate:"required,min=1,max=100"`
	Description string       `json:"description" validate:"omitempty,max=500"`
	Stock       int          `json:"stock" validate:"gte=0"`
	Prices      []PriceInput `json:"prices" validate:"required,min=1,dive"`
}

// UpdateProductRequest carries a partial update. Pointer fields distinguish
// "not supplied" (nil) from a supplied zero value, so only the fields present
// in the request body are applied.
type UpdateProductRequest struct {
	Name        *string       `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string       `json:"description" validate:"omitempty,max=500"`
	Stock       *int          `json:"stock" validate:"omitempty,gte=0"`
	Prices      *[]PriceInput `json:"prices" validate:"omitempty,dive"`
}
