package repositories

import (
	"errors"

	"catalogue/internal/models"
)

// Sentinel errors returned at the repository boundary. The service layer maps
// them onto its own error taxonomy.
var (
	ErrProductNotFound      = errors.New("product not found")
	ErrDuplicateProductName = errors.New("product name already exists")
)

// ProductRepository defines the interface for product data access.
// Mutating operations are atomic: a product and its price rows are written,
// replaced, or removed as a single transaction.
type ProductRepository interface {
	// List returns products ordered by id ascending, each with its prices.
	List(skip, limit int) ([]models.Product, error)
	// GetByID returns a product with its prices, or ErrProductNotFound.
	GetByID(id uint) (*models.Product, error)
	// Create inserts the product and every price in product.Prices atomically.
	Create(product *models.Product) error
	// Update persists the product's scalar fields. When newPrices is non-nil,
	// all existing price rows are deleted and newPrices inserted in the same
	// transaction. A nil newPrices leaves the price set untouched.
	Update(product *models.Product, newPrices []models.Price) error
	// Delete removes the product and, via cascade, all its prices.
	Delete(id uint) error
}
