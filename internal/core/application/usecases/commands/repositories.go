// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"foodcourt/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories its operation touches, so the
// transaction boundary of every command is visible in its factory type.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CatalogRepoFactory provides access to catalog read repositories within a transaction.
	CatalogRepoFactory interface {
		StoreRepository() ports.StoreRepository
		ProductRepository() ports.ProductRepository
	}

	// IdentityRepoFactory provides access to identity read repositories within a transaction.
	IdentityRepoFactory interface {
		UserRepository() ports.UserRepository
		CardRepository() ports.CardRepository
	}

	// OrderUoW manages transactions for order-only operations such as
	// status updates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CreateOrderUoW manages the transaction of order creation, which reads
	// the catalog and identity collaborators and writes the order aggregate
	// within a single atomic unit.
	CreateOrderUoW interface {
		TxManager
		OrderRepoFactory
		CatalogRepoFactory
		IdentityRepoFactory
	}

	// CreateOrderUoWFactory creates new order-creation unit of work instances.
	CreateOrderUoWFactory interface {
		Create() CreateOrderUoW
	}

	// AssignCourierUoW manages the transaction of courier backfill, which
	// reads couriers from identity and updates order aggregates.
	AssignCourierUoW interface {
		TxManager
		OrderRepoFactory
		IdentityRepoFactory
	}

	// AssignCourierUoWFactory creates new courier-assignment unit of work instances.
	AssignCourierUoWFactory interface {
		Create() AssignCourierUoW
	}
)
