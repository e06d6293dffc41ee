package commands

import (
	"context"
	"fmt"
	"time"

	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/domain/services"
	"foodcourt/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler handles status transitions of existing
// orders. Loads the order under an exclusive row lock, enforces the access
// policy against the order's user links, and applies the configured
// transition table, so two concurrent updates of the same order cannot both
// observe the same starting status.
//
// Example:
//
//	handler := NewUpdateOrderStatusCommandHandler(uowFactory, order.PolicyOrdered.Table())
//	cmd, _ := NewUpdateOrderStatusCommand(orderID, actor, order.StatusPicked, "")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    var forbidden *errs.ForbiddenError
//	    if errors.As(err, &forbidden) {
//	        // actor has no link to this order
//	    }
//	}
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	table      order.TransitionTable
	access     services.AccessPolicy
}

// NewUpdateOrderStatusCommandHandler creates a handler for status update
// operations. The transition table is fixed at construction; which policy
// built it is a deployment decision, not a per-request one.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	table order.TransitionTable,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		table:      table,
		access:     services.NewAccessPolicy(),
	}
}

// Handle processes the status update command.
// Permission is checked before the transition, so an actor with no link to
// the order gets a forbidden error even when the transition itself would be
// legal. Re-applying the current status commits without writing a history
// entry. The row stays locked from load to commit.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
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

	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	actor := cmd.Actor()
	if !h.access.CanMutate(actor, aggregate.Links()) {
		return errs.NewForbiddenError(actor.ID.String(), aggregate.ID().String())
	}

	comment := cmd.Comment()
	if comment == "" {
		comment = fmt.Sprintf("updated by %s", actor.ID)
	}

	if err = aggregate.ChangeStatus(cmd.Target(), h.table, comment, time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
