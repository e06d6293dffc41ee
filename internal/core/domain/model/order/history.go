package order

import (
	"errors"
	"time"

	"foodcourt/internal/core/domain/model/kernel"
)

// ErrHistoryEntryIsNotConstructed is returned when a HistoryEntry instance
// was not created through the NewHistoryEntry factory method.
var ErrHistoryEntryIsNotConstructed = errors.New("HistoryEntry must be created via NewHistoryEntry constructor")

// HistoryEntry is an immutable, append-only log record owned by an Order.
// One entry exists per effective status change; the first entry always
// carries the order's initial pending status. Entries are displayed in
// ascending timestamp order.
type HistoryEntry struct {
	// id identifies the log row in storage
	id kernel.UUID

	// status is the status value the order moved to
	status Status

	// comment is free text attached to the change
	comment string

	// occurredAt is when the change happened
	occurredAt time.Time

	// isConstructed ensures the entry was created via NewHistoryEntry
	isConstructed bool
}

// NewHistoryEntry creates a validated history entry for a status change.
func NewHistoryEntry(status Status, comment string, occurredAt time.Time) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}

	return HistoryEntry{
		id:            kernel.NewUUID(),
		status:        status,
		comment:       comment,
		occurredAt:    occurredAt,
		isConstructed: true,
	}, nil
}

// RestoreHistoryEntry reconstructs an entry from persistence keeping its identity.
func RestoreHistoryEntry(id kernel.UUID, status Status, comment string, occurredAt time.Time) (HistoryEntry, error) {
	entry, err := NewHistoryEntry(status, comment, occurredAt)
	if err != nil {
		return HistoryEntry{}, err
	}

	if err = id.Validate(); err != nil {
		return HistoryEntry{}, err
	}

	entry.id = id
	return entry, nil
}

// Validate ensures the HistoryEntry was created through NewHistoryEntry.
func (h HistoryEntry) Validate() error {
	if !h.isConstructed {
		return ErrHistoryEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's identity.
func (h HistoryEntry) ID() kernel.UUID {
	return h.id
}

// Status returns the status value recorded by this entry.
func (h HistoryEntry) Status() Status {
	return h.status
}

// Comment returns the free-text comment attached to the change.
func (h HistoryEntry) Comment() string {
	return h.comment
}

// OccurredAt returns when the change happened.
func (h HistoryEntry) OccurredAt() time.Time {
	return h.occurredAt
}
