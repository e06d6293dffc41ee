package queries

import (
	"errors"
	"time"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/domain/services"
	"foodcourt/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves order summaries scoped to the acting user's role:
// admins see every order, couriers the orders assigned to them, customers the
// orders they placed. The scoping happens in SQL; no out-of-scope row is ever
// loaded.
//
// Example:
//
//	query, _ := NewListOrdersQuery(actor)
//	handler := NewListOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	fmt.Printf("Found %d orders\n", len(orders))
type ListOrdersQuery struct {
	actor services.Actor

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a query to list orders visible to the actor.
func NewListOrdersQuery(actor services.Actor) (ListOrdersQuery, error) {
	if err := actor.ID.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if err := actor.Role.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Actor returns the acting user's identity and role.
func (q ListOrdersQuery) Actor() services.Actor {
	return q.actor
}

// ListOrdersQueryResponse is the summary view of one order in a listing.
type ListOrdersQueryResponse struct {
	ID           kernel.UUID
	TrackingCode kernel.TrackingCode
	StoreName    string
	Status       order.Status
	Total        kernel.Money
	CreatedAt    time.Time
}
