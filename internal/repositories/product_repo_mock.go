package repositories

import (
	"sort"
	"sync"
	"time"

	"catalogue/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It mirrors the transactional semantics of the GORM implementation (auto ids,
// unique names, full price-set replacement) and is used by service tests.
type MockProductRepository struct {
	products    map[uint]models.Product
	nextID      uint
	nextPriceID uint
	mu          sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products:    make(map[uint]models.Product),
		nextID:      1,
		nextPriceID: 1,
	}
}

// List returns products ordered by id ascending, honoring skip/limit.
func (r *MockProductRepository) List(skip, limit int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, copyProduct(p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if skip >= len(all) {
		return []models.Product{}, nil
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], nil
}

// GetByID returns a product by its id.
func (r *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	p := copyProduct(product)
	return &p, nil
}

// Create adds a new product and its prices, assigning ids.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.products {
		if existing.Name == product.Name {
			return ErrDuplicateProductName
		}
	}

	product.ID = r.nextID
	r.nextID++
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	for i := range product.Prices {
		product.Prices[i].ID = r.nextPriceID
		product.Prices[i].ProductID = product.ID
		if product.Prices[i].CreatedAt.IsZero() {
			product.Prices[i].CreatedAt = time.Now()
		}
		r.nextPriceID++
	}
	r.products[product.ID] = copyProduct(*product)
	return nil
}

// Update modifies an existing product's fields and, when newPrices is non-nil,
// replaces its whole price set with fresh rows.
func (r *MockProductRepository) Update(product *models.Product, newPrices []models.Price) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.products[product.ID]
	if !ok {
		return ErrProductNotFound
	}
	for _, existing := range r.products {
		if existing.ID != product.ID && existing.Name == product.Name {
			return ErrDuplicateProductName
		}
	}

	stored.Name = product.Name
	stored.Description = product.Description
	stored.Stock = product.Stock

	if newPrices != nil {
		stored.Prices = nil
		for i := range newPrices {
			newPrices[i].ID = r.nextPriceID
			newPrices[i].ProductID = product.ID
			if newPrices[i].CreatedAt.IsZero() {
				newPrices[i].CreatedAt = time.Now()
			}
			r.nextPriceID++
			stored.Prices = append(stored.Prices, newPrices[i])
		}
	}
	r.products[product.ID] = stored
	return nil
}

// Delete removes a product and all of its prices.
func (r *MockProductRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

// copyProduct returns a product with its own price slice so callers cannot
// mutate the stored state.
func copyProduct(p models.Product) models.Product {
	out := p
	out.Prices = append([]models.Price(nil), p.Prices...)
	return out
}
