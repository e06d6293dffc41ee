package ports

import (
	"context"

	"foodcourt/internal/core/domain/model/kernel"
)

// Store is the read-only slice of a store record the order core consumes.
// Stores are owned by the catalog collaborator; this core never writes them.
type Store struct {
	ID   kernel.UUID
	Name string
	Logo string
}

// Product is the read-only slice of a product record the order core consumes.
// Price is the current catalog price; order items snapshot it at creation and
// never follow later changes.
type Product struct {
	ID          kernel.UUID
	StoreID     kernel.UUID
	Name        string
	Description string
	Image       string
	Price       kernel.Money
}

// StoreRepository looks up stores from the catalog collaborator.
type StoreRepository interface {
	// Get retrieves a store by ID. Returns an ObjectNotFoundError when the
	// store does not exist.
	Get(ctx context.Context, id kernel.UUID) (*Store, error)
}

// ProductRepository looks up products from the catalog collaborator.
type ProductRepository interface {
	// Get retrieves a product by ID scoped to a store. Returns an
	// ObjectNotFoundError when the product does not exist or belongs to a
	// different store.
	Get(ctx context.Context, id, storeID kernel.UUID) (*Product, error)
}
