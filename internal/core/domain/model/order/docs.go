// Package order provides the domain entity and business rules for delivery
// orders in the shipping system. It implements the Order aggregate root with
// its full lifecycle: creation, pickup, delivery, and soft cancellation.
//
// Key business rules:
//   - Orders must have a valid unique identifier, a recipient, and a product description
//   - An order is "active" while it has neither a cancellation nor a delivery timestamp
//   - Cancellation is terminal; canceled orders reject all further mutation
//   - Orders are never physically deleted; cancellation only sets a timestamp
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
