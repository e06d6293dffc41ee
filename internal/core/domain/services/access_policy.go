package services

import (
	"fmt"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/pkg/errs"
)

// Role is the capability level an actor carries when calling into the order core.
type Role string

const (
	// RoleAdmin may view and mutate every order, unconditionally.
	RoleAdmin Role = "admin"

	// RoleCourier may view and mutate an order only when linked to it as
	// courier or owner.
	RoleCourier Role = "courier"

	// RoleCustomer may view and mutate an order only when linked to it as owner.
	RoleCustomer Role = "customer"
)

// ParseRole converts a wire string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleCourier, RoleCustomer:
		return Role(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%q is not a recognized role", s),
		)
	}
}

// Validate checks that the Role is one of the recognized values.
func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleCourier, RoleCustomer:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%q is not a recognized role", string(r)),
		)
	}
}

// Actor identifies the caller of an order operation: who they are and what
// capability they hold. The transport layer builds it from the authenticated
// session; this core only applies it.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

// NewActor creates a validated Actor.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}

// AccessPolicy decides whether an actor may see or change an order. Decisions
// are pure functions over the actor and the order's user links: no I/O, no
// state. Viewing and mutating follow the same rule for every role.
type AccessPolicy struct{}

// NewAccessPolicy creates a new AccessPolicy instance.
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// CanView reports whether the actor may read the order with the given links.
func (p AccessPolicy) CanView(actor Actor, links []order.UserLink) bool {
	return p.allows(actor, links)
}

// CanMutate reports whether the actor may change the order with the given links.
func (p AccessPolicy) CanMutate(actor Actor, links []order.UserLink) bool {
	return p.allows(actor, links)
}

func (p AccessPolicy) allows(actor Actor, links []order.UserLink) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleCourier:
		for _, link := range links {
			if link.UserID().IsEqual(actor.ID) && (link.IsCourier() || link.IsOwner()) {
				return true
			}
		}
		return false
	case RoleCustomer:
		for _, link := range links {
			if link.UserID().IsEqual(actor.ID) && link.IsOwner() {
				return true
			}
		}
		return false
	default:
		return false
	}
}
