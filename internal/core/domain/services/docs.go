// Package services provides domain services that implement business decisions
// spanning multiple domain entities in the foodcourt platform. It hosts logic
// that does not naturally belong to a single aggregate root.
//
// The package includes:
//   - AccessPolicy: Pure decisions about which actor may view or mutate an order
//   - CourierPicker: The courier-selection policy applied at order creation
//
// Both services are pure: they decide over in-memory inputs and perform no I/O,
// following Domain-Driven Design principles.
package services
