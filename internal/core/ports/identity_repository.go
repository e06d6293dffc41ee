package ports

import (
	"context"
	"time"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/services"
)

// User is the read-only slice of an identity record the order core consumes.
// Users are owned by the identity collaborator; this core never writes them.
type User struct {
	ID           kernel.UUID
	Role         services.Role
	RegisteredAt time.Time
}

// Card is the read-only slice of a payment-instrument record the order core
// consumes. Only identity and ownership are visible here; card data itself
// stays with the payment collaborator.
type Card struct {
	ID      kernel.UUID
	OwnerID kernel.UUID
}

// UserRepository looks up users from the identity collaborator.
type UserRepository interface {
	// Get retrieves a user by ID. Returns an ObjectNotFoundError when the
	// user does not exist.
	Get(ctx context.Context, id kernel.UUID) (*User, error)

	// GetAllCouriers retrieves every user with the courier role, ordered by
	// registration timestamp ascending. An empty result is not an error.
	GetAllCouriers(ctx context.Context) ([]services.CourierCandidate, error)
}

// CardRepository looks up payment cards from the identity collaborator.
type CardRepository interface {
	// Get retrieves a card by ID. Returns an ObjectNotFoundError when the
	// card does not exist. Ownership checks are the caller's responsibility.
	Get(ctx context.Context, id kernel.UUID) (*Card, error)
}
