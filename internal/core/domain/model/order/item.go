package order

import (
	"errors"
	"fmt"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a line item owned by an Order. It references a product, carries a
// positive quantity, and snapshots the product's unit price at order-creation
// time: later catalog price changes never affect it.
//
// Items are value objects: immutable after construction, never added to or
// removed from an order once the order exists.
type Item struct {
	// id identifies the item row in storage
	id kernel.UUID

	// productID references the catalog product this line was priced from
	productID kernel.UUID

	// quantity is the number of units ordered (at least 1)
	quantity int

	// unitPrice is the product price captured at order creation
	unitPrice kernel.Money

	// isConstructed ensures the item was created via NewItem
	isConstructed bool
}

// NewItem creates a validated line item snapshotting the given unit price.
//
// Parameters:
//   - productID: catalog product reference (must be a valid UUID)
//   - quantity: number of units (must be at least 1)
//   - unitPrice: price per unit captured now (non-negative by construction of Money)
func NewItem(productID kernel.UUID, quantity int, unitPrice kernel.Money) (Item, error) {
	item := Item{
		id:            kernel.NewUUID(),
		isConstructed: true,
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	item.unitPrice = unitPrice
	return item, nil
}

// RestoreItem reconstructs an item from persistence without regenerating its identity.
func RestoreItem(id, productID kernel.UUID, quantity int, unitPrice kernel.Money) (Item, error) {
	item, err := NewItem(productID, quantity, unitPrice)
	if err != nil {
		return Item{}, err
	}

	if err = id.Validate(); err != nil {
		return Item{}, err
	}

	item.id = id
	return item, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's identity.
func (i Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the referenced product's identity.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the ordered unit count.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price snapshot taken at order creation.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns quantity x unit price, rounded to two decimals.
func (i Item) Subtotal() kernel.Money {
	return i.unitPrice.MulQuantity(i.quantity)
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not at least 1", quantity),
		)
	}
	i.quantity = quantity
	return nil
}
