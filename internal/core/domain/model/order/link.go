package order

import (
	"errors"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/errs"
)

// ErrUserLinkIsNotConstructed is returned when a UserLink instance was not
// created through one of its factory methods.
var ErrUserLinkIsNotConstructed = errors.New("UserLink must be created via NewOwnerLink or NewCourierLink constructor")

// UserLink binds a user to an order with role flags. Exactly one owner link
// (the customer who placed the order) exists per order; at most one courier
// link (the assigned deliverer) exists, and it is absent when no courier was
// available at creation time.
type UserLink struct {
	// id identifies the link row in storage
	id kernel.UUID

	// userID references the linked user
	userID kernel.UUID

	// isOwner marks the customer who placed the order
	isOwner bool

	// isCourier marks the assigned deliverer
	isCourier bool

	// isConstructed ensures the link was created via a factory method
	isConstructed bool
}

// NewOwnerLink creates the link marking userID as the order's owning customer.
func NewOwnerLink(userID kernel.UUID) (UserLink, error) {
	return newUserLink(userID, true, false)
}

// NewCourierLink creates the link marking userID as the order's assigned courier.
func NewCourierLink(userID kernel.UUID) (UserLink, error) {
	return newUserLink(userID, false, true)
}

// RestoreUserLink reconstructs a link from persistence keeping its identity.
func RestoreUserLink(id, userID kernel.UUID, isOwner, isCourier bool) (UserLink, error) {
	link, err := newUserLink(userID, isOwner, isCourier)
	if err != nil {
		return UserLink{}, err
	}

	if err = id.Validate(); err != nil {
		return UserLink{}, err
	}

	link.id = id
	return link, nil
}

func newUserLink(userID kernel.UUID, isOwner, isCourier bool) (UserLink, error) {
	if err := userID.Validate(); err != nil {
		return UserLink{}, err
	}

	if isOwner == isCourier {
		return UserLink{}, errs.NewValueIsInvalidError("link must carry exactly one of the owner or courier flags")
	}

	return UserLink{
		id:            kernel.NewUUID(),
		userID:        userID,
		isOwner:       isOwner,
		isCourier:     isCourier,
		isConstructed: true,
	}, nil
}

// Validate ensures the UserLink was created through a factory method.
func (l UserLink) Validate() error {
	if !l.isConstructed {
		return ErrUserLinkIsNotConstructed
	}
	return nil
}

// ID returns the link's identity.
func (l UserLink) ID() kernel.UUID {
	return l.id
}

// UserID returns the linked user's identity.
func (l UserLink) UserID() kernel.UUID {
	return l.userID
}

// IsOwner reports whether the linked user placed the order.
func (l UserLink) IsOwner() bool {
	return l.isOwner
}

// IsCourier reports whether the linked user is the assigned courier.
func (l UserLink) IsCourier() bool {
	return l.isCourier
}
