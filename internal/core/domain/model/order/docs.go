// Package order provides domain entities and business logic for the order
// lifecycle in the foodcourt platform. It implements the Order aggregate root
// with transactional creation semantics and a status state machine.
//
// The package includes:
//   - Order: The aggregate root owning items, status history, and user links
//   - Item: An immutable line item with a price snapshot taken at creation
//   - HistoryEntry: An append-only status log entry
//   - UserLink: A join record binding a user (owner or courier) to an order
//   - Status and TransitionTable: The state machine over order statuses
//
// Key business rules:
//   - An order contains at least one item at creation; items never change afterwards
//   - The total always equals the sum of quantity x unit price over all items,
//     rounded to two decimals
//   - Exactly one owner link exists per order; at most one courier link
//   - Status history is append-only and starts with the initial pending entry
//   - Delivered and canceled are terminal; no transition leaves either state
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
