// Package ports defines the persistence contracts between the order core and
// its infrastructure adapters. These interfaces establish the dependency
// inversion boundary: the application layer depends on them, the postgres
// adapters implement them.
package ports

import (
	"context"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
)

// OrderRepository is the persistence contract for the Order aggregate.
// The aggregate (header, items, history, links) is always loaded and saved
// as one unit; no operation exposes a partial aggregate.
type OrderRepository interface {
	// Add persists a new order aggregate with all of its items, history
	// entries, and user links.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate: the mutable
	// header fields plus any history entries and links appended since load.
	// Items are immutable and never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves the complete aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves the complete aggregate while holding an
	// exclusive lock on the order row until the enclosing transaction ends.
	// Status updates use it to close the read-validate-write race.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllUnassigned retrieves non-terminal orders that have no courier
	// link, newest first. Used by the courier backfill job.
	GetAllUnassigned(ctx context.Context) ([]*order.Order, error)
}
