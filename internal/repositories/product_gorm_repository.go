package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"catalogue/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List retrieves a page of products with their prices, ordered by id ascending
// so repeated calls are stable absent mutation.
func (r *GORMProductRepository) List(skip, limit int) ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := r.db.Preload("Prices").
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product and its prices by id.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Prices").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts the product row and all of product.Prices in one transaction.
// GORM fills in product_id on the associated price rows.
func (r *GORMProductRepository) Create(product *models.Product) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(product).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateProductName
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update persists the product's scalar fields and, when newPrices is non-nil,
// replaces the full price set, all within a single transaction. A map is used
// for the field update so zero values (empty description, zero stock) are
// written rather than skipped.
func (r *GORMProductRepository) Update(product *models.Product, newPrices []models.Price) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ?", product.ID).
			Updates(map[string]interface{}{
				"name":        product.Name,
				"description": product.Description,
				"stock":       product.Stock,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}

		if newPrices != nil {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.Price{}).Error; err != nil {
				return err
			}
			for i := range newPrices {
				newPrices[i].ProductID = product.ID
			}
			if len(newPrices) > 0 {
				if err := tx.Create(&newPrices).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return ErrProductNotFound
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateProductName
		}
		return fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}
	return nil
}

// Delete removes the product and its price rows atomically. The prices are
// deleted explicitly inside the transaction rather than relying on the
// database cascade, so the behavior is identical across drivers.
func (r *GORMProductRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.Price{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Product{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}
