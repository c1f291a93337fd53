// Package order provides domain entities and business logic for factory
// purchase orders. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root carrying status, sample-request state, and
//     references to the client and manufacturer
//   - Status: A state machine enforcing the order workflow and per-role rules
//   - Number: The human-readable "PREFIX-NNNNNN" order number
//
// Key business rules:
//   - Status follows Draft -> SubmittedToManufacturer -> PricedByManufacturer
//     -> SubmittedToClient -> ClientApproved -> ReadyForProduction ->
//     InProduction -> Completed, with Rejected reachable from any
//     non-terminal state
//   - Manufacturers and clients may only drive the transitions assigned to
//     them; internal staff may drive any forward transition
//   - Pricing completeness is checked before submission steps (see the
//     transition command handler)
package order
