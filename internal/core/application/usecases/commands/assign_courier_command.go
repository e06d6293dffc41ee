package commands

import (
	"errors"

	"foodcourt/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand triggers the backfill of courier links on orders that
// were created while no courier was registered. It is a parameterless sweep:
// every unassigned non-terminal order gets the earliest-registered courier.
//
// Example:
//
//	cmd := NewAssignCourierCommand()
//	handler := NewAssignCourierCommandHandler(uowFactory)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrNoUnassignedOrders) {
//	    // nothing to backfill this round
//	}
type AssignCourierCommand struct {
	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a new command to trigger courier backfill.
func NewAssignCourierCommand() AssignCourierCommand {
	return AssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignCourierCommandIsNotConstructed if validation fails.
func (c *AssignCourierCommand) Validate() error {
	return c.guard.Validate(
		ErrAssignCourierCommandIsNotConstructed,
	)
}
