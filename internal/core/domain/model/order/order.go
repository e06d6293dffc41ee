package order

import (
	"errors"
	"sort"
	"time"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrCourierAlreadyAssigned is returned when a courier link already exists
	// on the order. At most one courier link is permitted.
	ErrCourierAlreadyAssigned = errors.New("order already has an assigned courier")
)

// Order is the aggregate root of the order lifecycle. It owns its line items,
// its append-only status history, and its user links, and is loaded and saved
// as one consistency unit.
//
// Order maintains these invariants:
//   - The total always equals the sum of quantity x unit price over all items,
//     rounded to two decimals; it is recomputed from the items and never set
//     independently of them
//   - At least one item exists at creation; the item list never changes afterwards
//   - Exactly one owner link; at most one courier link
//   - The first history entry carries the initial pending status
//   - Status changes go through ChangeStatus and its transition table; orders
//     are canceled via status, never deleted
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// trackingCode is the immutable human-readable code generated at creation
	trackingCode kernel.TrackingCode

	// storeID references the store the order was placed against
	storeID kernel.UUID

	// cardID optionally references the payment card used (nil for cash)
	cardID *kernel.UUID

	// status is the current state in the order lifecycle
	status Status

	// resolved is set once the order reaches delivered
	resolved bool

	// total is the derived sum over items, kept in lockstep with them
	total kernel.Money

	// address is the free-text delivery address
	address string

	// notes is free text supplied by the customer
	notes string

	// createdAt is when the order was placed
	createdAt time.Time

	items   []Item
	history []HistoryEntry
	links   []UserLink

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates an order in pending status with a fresh tracking code, the
// initial history entry, and the owner link for the placing customer. The
// item list must be non-empty; every item must have been built via NewItem.
//
// Parameters:
//   - id: unique identifier for the order
//   - storeID: the store the order targets
//   - cardID: optional payment card reference (nil when paying on delivery)
//   - ownerID: the customer placing the order
//   - address: free-text delivery address
//   - notes: free-text customer notes
//   - items: line items with price snapshots, at least one
//   - createdAt: creation timestamp, also used for the initial history entry
func NewOrder(
	id kernel.UUID,
	storeID kernel.UUID,
	cardID *kernel.UUID,
	ownerID kernel.UUID,
	address string,
	notes string,
	items []Item,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		trackingCode:  kernel.NewTrackingCode(),
		status:        StatusPending,
		address:       address,
		notes:         notes,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setStoreID(storeID),
		o.setCardID(cardID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	initial, err := NewHistoryEntry(StatusPending, "order placed", createdAt)
	if err != nil {
		return nil, err
	}
	o.history = []HistoryEntry{initial}

	ownerLink, err := NewOwnerLink(ownerID)
	if err != nil {
		return nil, err
	}
	o.links = []UserLink{ownerLink}

	return o, nil
}

// RestoreOrder reconstructs the aggregate from persistence. The total is
// recomputed from the restored items rather than trusted from storage, so the
// total invariant holds at every point after loading.
func RestoreOrder(
	id kernel.UUID,
	trackingCode kernel.TrackingCode,
	storeID kernel.UUID,
	cardID *kernel.UUID,
	status Status,
	resolved bool,
	address string,
	notes string,
	createdAt time.Time,
	items []Item,
	history []HistoryEntry,
	links []UserLink,
) (*Order, error) {
	o := &Order{
		address:       address,
		notes:         notes,
		createdAt:     createdAt,
		resolved:      resolved,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setStoreID(storeID),
		o.setCardID(cardID),
		o.setItems(items),
		trackingCode.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.trackingCode = trackingCode
	o.status = status

	for _, entry := range history {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
	}
	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("history")
	}
	o.history = append([]HistoryEntry(nil), history...)

	owners := 0
	couriers := 0
	for _, link := range links {
		if err := link.Validate(); err != nil {
			return nil, err
		}
		if link.IsOwner() {
			owners++
		}
		if link.IsCourier() {
			couriers++
		}
	}
	if owners != 1 {
		return nil, errs.NewValueIsInvalidError("order must have exactly one owner link")
	}
	if couriers > 1 {
		return nil, errs.NewValueIsInvalidError("order must have at most one courier link")
	}
	o.links = append([]UserLink(nil), links...)

	return o, nil
}

// Validate ensures the Order was created through a factory method.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TrackingCode returns the immutable human-readable tracking code.
func (o *Order) TrackingCode() kernel.TrackingCode {
	return o.trackingCode
}

// StoreID returns the identity of the store the order was placed against.
func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

// CardID returns the payment card reference, or nil when none was supplied.
func (o *Order) CardID() *kernel.UUID {
	return o.cardID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Resolved reports whether the order has reached delivered.
func (o *Order) Resolved() bool {
	return o.resolved
}

// Total returns the derived monetary total over all items.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Address returns the free-text delivery address.
func (o *Order) Address() string {
	return o.address
}

// Notes returns the free-text customer notes.
func (o *Order) Notes() string {
	return o.notes
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// History returns a copy of the status history sorted ascending by timestamp.
func (o *Order) History() []HistoryEntry {
	entries := append([]HistoryEntry(nil), o.history...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].OccurredAt().Before(entries[j].OccurredAt())
	})
	return entries
}

// Links returns a copy of the order's user links.
func (o *Order) Links() []UserLink {
	return append([]UserLink(nil), o.links...)
}

// OwnerID returns the identity of the customer who placed the order.
func (o *Order) OwnerID() kernel.UUID {
	for _, link := range o.links {
		if link.IsOwner() {
			return link.UserID()
		}
	}
	return kernel.UUID{}
}

// CourierID returns the assigned courier's identity, or nil when the order
// has no courier link.
func (o *Order) CourierID() *kernel.UUID {
	for _, link := range o.links {
		if link.IsCourier() {
			id := link.UserID()
			return &id
		}
	}
	return nil
}

// AssignCourier adds the courier link for the given user. At most one courier
// link may exist, and terminal orders cannot be assigned.
func (o *Order) AssignCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.CourierID() != nil {
		return ErrCourierAlreadyAssigned
	}

	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionErrorWithCause(
			o.status.String(), o.status.String(),
			errors.New("cannot assign a courier to a terminal order"),
		)
	}

	link, err := NewCourierLink(courierID)
	if err != nil {
		return err
	}

	o.links = append(o.links, link)
	return nil
}

// ChangeStatus moves the order to the target status when the transition table
// permits it, appending a history entry for the change. Re-applying the
// current status is an idempotent no-op: nothing changes and no history entry
// is written. Reaching delivered marks the order resolved.
func (o *Order) ChangeStatus(target Status, table TransitionTable, comment string, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if target == o.status {
		return nil
	}

	if !table.CanTransition(o.status, target) {
		return errs.NewInvalidTransitionError(o.status.String(), target.String())
	}

	entry, err := NewHistoryEntry(target, comment, now)
	if err != nil {
		return err
	}

	o.status = target
	if target == StatusDelivered {
		o.resolved = true
	}
	o.history = append(o.history, entry)

	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	o.storeID = storeID
	return nil
}

func (o *Order) setCardID(cardID *kernel.UUID) error {
	if cardID == nil {
		o.cardID = nil
		return nil
	}

	if err := cardID.Validate(); err != nil {
		return err
	}

	id := *cardID
	o.cardID = &id
	return nil
}

// setItems installs the immutable item list and recomputes the total from it.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	total := kernel.ZeroMoney()
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		total = total.Add(item.Subtotal())
	}

	o.items = append([]Item(nil), items...)
	o.total = total
	return nil
}
