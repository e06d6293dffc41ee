package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/domain/services"
	"foodcourt/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Resolves catalog prices into immutable line-item snapshots, links the
// customer as owner, and assigns the earliest-registered courier when one is
// available. The whole sequence runs in a single transaction: either the
// complete aggregate becomes visible or nothing does.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(customerID, storeID, lines, nil, "456 Oak Avenue", "")
//
//	orderID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// Order is now placed in "pending" status
type CreateOrderCommandHandler struct {
	uowFactory CreateOrderUoWFactory
	picker     services.CourierPicker
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires a CreateOrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory CreateOrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		picker:     services.NewCourierPicker(),
	}
}

// Handle processes the order creation command and returns the new order's ID.
// Validates every referenced entity before writing anything: the store and
// all products must exist, and the card, when given, must belong to the
// ordering customer. Any failed lookup aborts the whole creation; no partial
// order is ever persisted.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	store, err := uow.StoreRepository().Get(ctx, cmd.StoreID())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = h.checkCardOwnership(ctx, uow, cmd); err != nil {
		return kernel.UUID{}, err
	}

	items, err := h.resolveItems(ctx, uow, store.ID, cmd.Lines())
	if err != nil {
		return kernel.UUID{}, err
	}

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		store.ID,
		cmd.CardID(),
		cmd.CustomerID(),
		cmd.Address(),
		cmd.Notes(),
		items,
		time.Now().UTC(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = h.assignCourier(ctx, uow, aggregate); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return aggregate.ID(), nil
}

// checkCardOwnership verifies that the optional payment card exists and
// belongs to the ordering customer. A card owned by someone else is rejected
// as an invalid value, not reported as missing, so the response does not leak
// whether the card exists.
func (h CreateOrderCommandHandler) checkCardOwnership(
	ctx context.Context, uow CreateOrderUoW, cmd CreateOrderCommand,
) error {
	cardID := cmd.CardID()
	if cardID == nil {
		return nil
	}

	card, err := uow.CardRepository().Get(ctx, *cardID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewValueIsInvalidErrorWithCause("cardId", err)
	}
	if err != nil {
		return err
	}

	if !card.OwnerID.IsEqual(cmd.CustomerID()) {
		return errs.NewValueIsInvalidErrorWithCause(
			"cardId",
			fmt.Errorf("card %s does not belong to customer %s", card.ID, cmd.CustomerID()),
		)
	}

	return nil
}

// resolveItems turns requested lines into line items carrying catalog price
// snapshots. Every product must exist within the target store; one missing
// product fails the whole resolution.
func (h CreateOrderCommandHandler) resolveItems(
	ctx context.Context, uow CreateOrderUoW, storeID kernel.UUID, lines []OrderLine,
) ([]order.Item, error) {
	productRepo := uow.ProductRepository()

	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		product, err := productRepo.Get(ctx, line.ProductID(), storeID)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(product.ID, line.Quantity(), product.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// assignCourier links the earliest-registered courier to the new order.
// Having no couriers registered is not an error; the order stays unassigned
// and the backfill job picks it up later.
func (h CreateOrderCommandHandler) assignCourier(
	ctx context.Context, uow CreateOrderUoW, aggregate *order.Order,
) error {
	couriers, err := uow.UserRepository().GetAllCouriers(ctx)
	if err != nil {
		return err
	}

	candidate := h.picker.Pick(couriers)
	if candidate == nil {
		return nil
	}

	return aggregate.AssignCourier(candidate.ID)
}
