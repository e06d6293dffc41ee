package order

import (
	"fmt"

	"foodcourt/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// Canonical forward progression:
//
//	Pending ──> Accepted ──> Picked ──> OnRoute ──> Delivered
//	    │           │           │           │
//	    └───────────┴───────────┴───────────┴──> Canceled
//
// Delivered and Canceled are terminal. Which forward moves are legal is not
// encoded here but in a TransitionTable; see TransitionPolicy.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the unique initial status of every order.
	StatusPending

	// StatusAccepted indicates the store has accepted the order.
	StatusAccepted

	// StatusPicked indicates the courier has picked the order up.
	StatusPicked

	// StatusOnRoute indicates the courier is on the way to the customer.
	StatusOnRoute

	// StatusDelivered indicates the order reached the customer. Terminal.
	StatusDelivered

	// StatusCanceled indicates the order was canceled. Terminal.
	StatusCanceled
)

// progression is the canonical ordered sequence of forward states.
var progression = []Status{StatusPending, StatusAccepted, StatusPicked, StatusOnRoute, StatusDelivered}

// getStatusWireValues maps statuses to their stable wire strings.
func getStatusWireValues() map[Status]string {
	return map[Status]string{
		StatusPending:   "pending",
		StatusAccepted:  "accepted",
		StatusPicked:    "picked",
		StatusOnRoute:   "on_route",
		StatusDelivered: "delivered",
		StatusCanceled:  "canceled",
	}
}

// ParseStatus converts a wire string into a Status.
// Unrecognized values are rejected as invalid input.
func ParseStatus(s string) (Status, error) {
	for status, wire := range getStatusWireValues() {
		if wire == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a recognized status", s),
	)
}

// Validate checks that the Status is one of the recognized values.
func (s Status) Validate() error {
	if _, ok := getStatusWireValues()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the stable wire value, or "unknown" for invalid statuses.
// The same strings are used in storage, in the API, and in logs.
func (s Status) String() string {
	if wire, ok := getStatusWireValues()[s]; ok {
		return wire
	}
	return "unknown"
}

// IsTerminal reports whether no transition may leave this status.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCanceled
}

// progressionIndex returns the position of s in the canonical forward
// progression, or -1 when s does not take part in it (Canceled, Unknown).
func (s Status) progressionIndex() int {
	for i, p := range progression {
		if p == s {
			return i
		}
	}
	return -1
}

// TransitionTable is the single authoritative encoding of the status state
// machine: it maps each status to the exact set of statuses it may move to.
// All transition checks consult a table and nothing else, so there is one
// source of truth regardless of which policy produced it.
type TransitionTable map[Status]map[Status]struct{}

// CanTransition is the pure decision function of the state machine: it
// reports whether the table permits moving from one status to another.
// It performs no I/O and holds no state beyond the pre-expanded table.
func (t TransitionTable) CanTransition(from, to Status) bool {
	targets, ok := t[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// TransitionPolicy selects which pre-expanded transition table governs
// status updates. Whether skipping intermediate states (e.g. pending
// straight to delivered) is legal is a product decision; both candidate
// behaviors are available so it stays a configuration choice.
type TransitionPolicy string

const (
	// PolicyOrdered permits any forward move whose target sits at or after
	// the current status in the canonical progression, so intermediate
	// states may be skipped. Cancellation is allowed from every
	// non-terminal state, and re-applying the current status is a no-op.
	PolicyOrdered TransitionPolicy = "ordered"

	// PolicyStrict permits only the immediate successor in the canonical
	// progression, plus cancellation from non-terminal states and the
	// same-status no-op.
	PolicyStrict TransitionPolicy = "strict"
)

// ParseTransitionPolicy converts a configuration string into a TransitionPolicy.
func ParseTransitionPolicy(s string) (TransitionPolicy, error) {
	switch TransitionPolicy(s) {
	case PolicyOrdered:
		return PolicyOrdered, nil
	case PolicyStrict:
		return PolicyStrict, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(
			"transitionPolicy",
			fmt.Errorf("%q is not a recognized policy", s),
		)
	}
}

// Table expands the policy into its transition table. Terminal states allow
// nothing, not even themselves: the idempotent re-application of a terminal
// status is handled as a short-circuit before the table is consulted.
func (p TransitionPolicy) Table() TransitionTable {
	table := make(TransitionTable, len(progression)+1)
	for status := range getStatusWireValues() {
		table[status] = make(map[Status]struct{})
	}

	for _, from := range progression {
		if from.IsTerminal() {
			continue
		}

		table[from][StatusCanceled] = struct{}{}
		table[from][from] = struct{}{}

		switch p {
		case PolicyOrdered:
			for _, to := range progression[from.progressionIndex():] {
				table[from][to] = struct{}{}
			}
		case PolicyStrict:
			table[from][progression[from.progressionIndex()+1]] = struct{}{}
		}
	}

	return table
}
