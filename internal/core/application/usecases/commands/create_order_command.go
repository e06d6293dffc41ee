package commands

import (
	"errors"
	"fmt"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/errs"
	"foodcourt/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderLineIsNotConstructed = errors.New(
		"OrderLine must be created via NewOrderLine constructor",
	)
)

// OrderLine is one requested line of a new order: which product and how many.
// Prices are not part of the request; they are resolved and snapshotted from
// the catalog inside the creation transaction.
type OrderLine struct {
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewOrderLine creates a validated order line.
// The product must be a valid reference and the quantity at least 1.
func NewOrderLine(productID kernel.UUID, quantity int) (OrderLine, error) {
	if err := productID.Validate(); err != nil {
		return OrderLine{}, err
	}

	if quantity < 1 {
		return OrderLine{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not at least 1", quantity),
		)
	}

	return OrderLine{
		productID: productID,
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the line was created through the constructor.
func (l OrderLine) Validate() error {
	return l.guard.Validate(ErrOrderLineIsNotConstructed)
}

// ProductID returns the requested product's identity.
func (l OrderLine) ProductID() kernel.UUID {
	return l.productID
}

// Quantity returns the requested unit count.
func (l OrderLine) Quantity() int {
	return l.quantity
}

// CreateOrderCommand represents a customer's request to place a new order
// against a store. It captures the requested lines, an optional payment card
// reference, and free-text delivery details.
//
// Example:
//
//	line, _ := NewOrderLine(productID, 2)
//	cmd, err := NewCreateOrderCommand(customerID, storeID, []OrderLine{line}, nil, "12 Baker Street", "")
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	storeID    kernel.UUID
	lines      []OrderLine
	cardID     *kernel.UUID
	address    string
	notes      string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order. Validates that
// the customer and store references are valid, the line list is non-empty,
// and every line was properly constructed. Returns an error if any validation
// fails; an empty line list is a validation error, never a silent no-op.
func NewCreateOrderCommand(
	customerID kernel.UUID,
	storeID kernel.UUID,
	lines []OrderLine,
	cardID *kernel.UUID,
	address string,
	notes string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		address: address,
		notes:   notes,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setStoreID(storeID),
		cmd.setLines(lines),
		cmd.setCardID(cardID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the identity of the customer placing the order.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// StoreID returns the identity of the target store.
func (c CreateOrderCommand) StoreID() kernel.UUID {
	return c.storeID
}

// Lines returns the requested order lines.
func (c CreateOrderCommand) Lines() []OrderLine {
	return append([]OrderLine(nil), c.lines...)
}

// CardID returns the optional payment card reference.
func (c CreateOrderCommand) CardID() *kernel.UUID {
	return c.cardID
}

// Address returns the free-text delivery address.
func (c CreateOrderCommand) Address() string {
	return c.address
}

// Notes returns the free-text customer notes.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	c.storeID = storeID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	c.lines = append([]OrderLine(nil), lines...)
	return nil
}

func (c *CreateOrderCommand) setCardID(cardID *kernel.UUID) error {
	if cardID == nil {
		return nil
	}

	if err := cardID.Validate(); err != nil {
		return err
	}

	id := *cardID
	c.cardID = &id
	return nil
}
