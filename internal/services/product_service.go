package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"catalogue/internal/models"
	"catalogue/internal/repositories"
)

// EventPublisher publishes a JSON-serializable payload with the given routing
// key suffix. Implemented by pkg/rabbitmq.Publisher; mocked in tests.
type EventPublisher interface {
	Publish(routingKeySuffix string, payload interface{}) error
}

// ProductService handles business logic related to products: price-set
// validation, the transactional write contract, and best-effort event
// publishing on every mutation.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case events are skipped with a log line instead of published.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// Create validates the request, inserts the product and its prices as one
// transaction, and publishes a product_created event on success.
func (s *ProductService) Create(req *models.CreateProductRequest) (*models.Product, error) {
	if err := validatePriceInputs(req.Prices); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Stock:       req.Stock,
	}
	for _, p := range req.Prices {
		product.Prices = append(product.Prices, models.Price{Amount: p.Amount})
	}

	if err := s.repo.Create(product); err != nil {
		return nil, mapRepoError(err, product.Name, 0)
	}

	s.publish(routingCreated, ProductCreatedEvent{
		EventType: EventProductCreated,
		EventID:   uuid.New().String(),
		Timestamp: time.Now().UTC(),
		ProductID: product.ID,
		Name:      product.Name,
		Prices:    amounts(product.Prices),
	})
	return product, nil
}

// GetByID retrieves a single product with its prices.
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, mapRepoError(err, "", id)
	}
	return product, nil
}

// List retrieves a page of products ordered by id. An empty page is a valid
// result, not an error.
func (s *ProductService) List(skip, limit int) ([]models.Product, error) {
	products, err := s.repo.List(skip, limit)
	if err != nil {
		return nil, mapRepoError(err, "", 0)
	}
	return products, nil
}

// Update applies a sparse patch: only the fields present in the request are
// changed. A supplied price list replaces the whole set within the same
// transaction as the field updates; an explicitly empty list is rejected,
// since a product must always keep at least one price. On success a
// product_updated event carries the old and new field values.
func (s *ProductService) Update(id uint, req *models.UpdateProductRequest) (*models.Product, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, mapRepoError(err, "", id)
	}

	old := ProductFields{
		Name:        existing.Name,
		Description: existing.Description,
		Stock:       existing.Stock,
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Stock != nil {
		updated.Stock = *req.Stock
	}

	var newPrices []models.Price
	if req.Prices != nil {
		if err := validatePriceInputs(*req.Prices); err != nil {
			return nil, err
		}
		newPrices = make([]models.Price, 0, len(*req.Prices))
		for _, p := range *req.Prices {
			newPrices = append(newPrices, models.Price{Amount: p.Amount})
		}
	}

	if err := s.repo.Update(&updated, newPrices); err != nil {
		return nil, mapRepoError(err, updated.Name, id)
	}

	refreshed, err := s.repo.GetByID(id)
	if err != nil {
		return nil, mapRepoError(err, "", id)
	}

	event := ProductUpdatedEvent{
		EventType: EventProductUpdated,
		EventID:   uuid.New().String(),
		Timestamp: time.Now().UTC(),
		ProductID: refreshed.ID,
		Old:       old,
		New: ProductFields{
			Name:        refreshed.Name,
			Description: refreshed.Description,
			Stock:       refreshed.Stock,
		},
	}
	if req.Prices != nil {
		event.Prices = amounts(refreshed.Prices)
	}
	s.publish(routingUpdated, event)

	return refreshed, nil
}

// Delete removes the product and all its prices atomically, then publishes a
// product_deleted event carrying the state captured immediately before the
// delete. Event delivery is best-effort and not coupled to the transaction.
func (s *ProductService) Delete(id uint) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return mapRepoError(err, "", id)
	}

	if err := s.repo.Delete(id); err != nil {
		return mapRepoError(err, "", id)
	}

	s.publish(routingDeleted, ProductDeletedEvent{
		EventType: EventProductDeleted,
		EventID:   uuid.New().String(),
		Timestamp: time.Now().UTC(),
		ProductID: existing.ID,
		Name:      existing.Name,
		Prices:    amounts(existing.Prices),
	})
	return nil
}

// publish sends an event, logging any failure instead of returning it: the
// database write has already committed and stands regardless.
func (s *ProductService) publish(routingKeySuffix string, payload interface{}) {
	if s.publisher == nil {
		log.Println("Event publisher is not configured. Skipping message publication.")
		return
	}
	if err := s.publisher.Publish(routingKeySuffix, payload); err != nil {
		log.Printf("Warning: Failed to publish product.%s event: %v", routingKeySuffix, err)
	}
}

// mapRepoError translates repository sentinels into the service error
// taxonomy.
func mapRepoError(err error, name string, id uint) error {
	switch {
	case errors.Is(err, repositories.ErrProductNotFound):
		return &NotFoundError{ID: id}
	case errors.Is(err, repositories.ErrDuplicateProductName):
		return &ConflictError{Name: name}
	default:
		return &PersistenceError{Err: err}
	}
}

// validatePriceInputs enforces the price invariant: a supplied set must be
// non-empty and every amount strictly positive.
func validatePriceInputs(prices []models.PriceInput) error {
	if len(prices) == 0 {
		return &ValidationError{Message: "at least one price is required"}
	}
	for _, p := range prices {
		if p.Amount <= 0 {
			return &ValidationError{Message: fmt.Sprintf("price amount must be greater than zero, got %g", p.Amount)}
		}
	}
	return nil
}

// amounts extracts the bare amounts from a price slice for event payloads.
func amounts(prices []models.Price) []float64 {
	out := make([]float64, 0, len(prices))
	for _, p := range prices {
		out = append(out, p.Amount)
	}
	return out
}
