package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Every multi-entity
// write of the order core runs inside exactly one unit of work: all of it
// commits or none of it is ever visible to other readers.
type UnitOfWork interface {
	// Begin starts a new database transaction with serializable isolation,
	// so concurrent read-validate-write sequences on the same order cannot
	// both commit.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// StoreRepository returns a StoreRepository bound to the current transaction.
	StoreRepository() StoreRepository

	// ProductRepository returns a ProductRepository bound to the current transaction.
	ProductRepository() ProductRepository

	// UserRepository returns a UserRepository bound to the current transaction.
	UserRepository() UserRepository

	// CardRepository returns a CardRepository bound to the current transaction.
	CardRepository() CardRepository
}
