// Package product provides domain entities for the lines of a factory order.
// It implements the OrderProduct aggregate root and its OrderItem children.
//
// The package includes:
//   - OrderProduct: A priced, routed, lockable order line with soft-delete support
//   - OrderItem: A variant line with quantity and tri-state approvals
//   - Audience: The party currently responsible for acting on a product
//   - Approval: Pending/Approved/Rejected review state
//
// Key business rules:
//   - Client prices are derived, never entered: the price and the margin that
//     produced it are always stored together
//   - Routing a product to the client requires a resolved client price
//   - Locking freezes manufacturer-facing price edits
//   - Soft-deleted products refuse mutation but remain queryable for audit
package product
