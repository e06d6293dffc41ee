package commands

import (
	"context"
	"errors"

	"foodcourt/internal/core/domain/services"
)

var (
	ErrNoUnassignedOrders  = errors.New("no unassigned orders found")
	ErrNoCouriersAvailable = errors.New("no couriers available")
)

// AssignCourierCommandHandler sweeps orders that have no courier link and
// assigns the earliest-registered courier to each of them. The sweep runs as
// one transaction, so a round either backfills every order it saw or none.
//
// Example:
//
//	handler := NewAssignCourierCommandHandler(uowFactory)
//	err := handler.Handle(ctx, NewAssignCourierCommand())
//	switch {
//	case errors.Is(err, ErrNoUnassignedOrders):
//	    log.Println("nothing to backfill")
//	case errors.Is(err, ErrNoCouriersAvailable):
//	    log.Println("no couriers registered yet")
//	case err != nil:
//	    log.Printf("backfill failed: %v", err)
//	}
type AssignCourierCommandHandler struct {
	uowFactory AssignCourierUoWFactory
	picker     services.CourierPicker
}

// NewAssignCourierCommandHandler creates a handler for courier backfill
// operations. Requires an AssignCourierUoWFactory for coordinating the
// transactional sweep.
func NewAssignCourierCommandHandler(uowFactory AssignCourierUoWFactory) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		picker:     services.NewCourierPicker(),
	}
}

// Handle processes the courier backfill command.
// Returns ErrNoUnassignedOrders when every non-terminal order already has a
// courier, and ErrNoCouriersAvailable when no courier is registered. Both are
// expected idle states for the periodic job, not failures.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, command AssignCourierCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	orders, err := orderRepo.GetAllUnassigned(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return ErrNoUnassignedOrders
	}

	couriers, err := uow.UserRepository().GetAllCouriers(ctx)
	if err != nil {
		return err
	}

	candidate := h.picker.Pick(couriers)
	if candidate == nil {
		return ErrNoCouriersAvailable
	}

	for _, aggregate := range orders {
		if err = aggregate.AssignCourier(candidate.ID); err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
