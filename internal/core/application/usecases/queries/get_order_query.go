// Package queries contains read-only operations over the order store.
// Query handlers bypass the domain aggregates and read projections straight
// from the database, following the CQRS split: commands go through the model,
// queries go through SQL.
package queries

import (
	"errors"
	"time"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/domain/services"
	"foodcourt/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the full projection of a single order for an actor.
// Visibility follows the same access rules as mutation: admins see every
// order, couriers and customers only orders they are linked to.
//
// Example:
//
//	query, _ := NewGetOrderQuery(orderID, actor)
//	handler := NewGetOrderQueryHandler(db)
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("Order %s is %s\n", resp.TrackingCode, resp.Status)
type GetOrderQuery struct {
	orderID kernel.UUID
	actor   services.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve one order's projection.
// Validates the order reference and the acting user.
func NewGetOrderQuery(orderID kernel.UUID, actor services.Actor) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if err := actor.ID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if err := actor.Role.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identity of the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns the acting user's identity and role.
func (q GetOrderQuery) Actor() services.Actor {
	return q.actor
}

// StoreSummaryResponse is the embedded view of the store an order targets.
type StoreSummaryResponse struct {
	ID   kernel.UUID
	Name string
	Logo string
}

// OrderItemResponse is one projected line of an order. UnitPrice is the
// snapshot taken at creation; Subtotal is UnitPrice times Quantity. Name,
// description, and image reflect the current catalog record.
type OrderItemResponse struct {
	ProductID          kernel.UUID
	ProductName        string
	ProductDescription string
	ProductImage       string
	Quantity           int
	UnitPrice          kernel.Money
	Subtotal           kernel.Money
}

// HistoryEntryResponse is one projected entry of an order's status trail.
type HistoryEntryResponse struct {
	Status     order.Status
	Comment    string
	OccurredAt time.Time
}

// GetOrderQueryResponse is the full read model of one order: header, store
// summary, line items, and the status history in chronological order.
type GetOrderQueryResponse struct {
	ID           kernel.UUID
	TrackingCode kernel.TrackingCode
	Store        StoreSummaryResponse
	Status       order.Status
	Resolved     bool
	Total        kernel.Money
	Address      string
	Notes        string
	CreatedAt    time.Time
	CourierID    *kernel.UUID
	Items        []OrderItemResponse
	History      []HistoryEntryResponse
}
