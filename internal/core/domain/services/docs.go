// Package services provides domain services that orchestrate business rules
// across multiple domain entities in the factory-order system. It implements
// logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - MarginResolver: Derives client prices from manufacturer prices through
//     the product -> order -> system margin override hierarchy
//   - TransitionGuard: Enforces pricing-completeness preconditions on status
//     transitions, which require the order's products
package services
