package services

import "time"

// Event types carried in the event_type field of published messages.
const (
	EventProductCreated = "product_created"
	EventProductUpdated = "product_updated"
	EventProductDeleted = "product_deleted"
)

// Routing key suffixes; the publisher prefixes them with "product.".
const (
	routingCreated = "created"
	routingUpdated = "updated"
	routingDeleted = "deleted"
)

// ProductFields is the snapshot of a product's mutable fields, used to carry
// old and new values on update events.
type ProductFields struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stock       int    `json:"stock"`
}

// ProductCreatedEvent is published after a product has been created.
type ProductCreatedEvent struct {
	EventType string    `json:"event_type"`
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Prices    []float64 `json:"prices"`
}

// ProductUpdatedEvent is published after a product has been updated. Prices
// is only set when the price set was replaced, and then holds the new amounts.
type ProductUpdatedEvent struct {
	EventType string        `json:"event_type"`
	EventID   string        `json:"event_id"`
	Timestamp time.Time     `json:"timestamp"`
	ProductID uint          `json:"product_id"`
	Old       ProductFields `json:"old"`
	New       ProductFields `json:"new"`
	Prices    []float64     `json:"prices,omitempty"`
}

// ProductDeletedEvent is published after a product has been deleted. Prices
// holds the amounts as they were immediately before deletion.
type ProductDeletedEvent struct {
	EventType string    `json:"event_type"`
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Prices    []float64 `json:"prices"`
}
