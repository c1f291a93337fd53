// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"factoryorders/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
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

	// ProductRepoFactory provides access to the product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// PricingRepoFactory provides access to the pricing repository within a transaction.
	PricingRepoFactory interface {
		PricingRepository() ports.PricingRepository
	}

	// BillingRepoFactory provides access to the billing repository within a transaction.
	BillingRepoFactory interface {
		BillingRepository() ports.BillingRepository
	}

	// CascadeRepoFactory provides access to the cascade repository within a transaction.
	CascadeRepoFactory interface {
		CascadeRepository() ports.CascadeRepository
	}

	// OrderUoW manages transactions for order, product, and pricing state.
	// Used by the transition, routing, pricing, and margin commands.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		PricingRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// BillingUoW manages transactions for invoice operations that may also
	// touch the owning order (sample-fee payment).
	BillingUoW interface {
		TxManager
		BillingRepoFactory
		OrderRepoFactory
	}

	// BillingUoWFactory creates new billing unit of work instances.
	BillingUoWFactory interface {
		Create() BillingUoW
	}

	// PurgeUoW manages transactions for the cascade sweep. Each order is
	// purged in its own transaction so failures stay isolated.
	PurgeUoW interface {
		TxManager
		OrderRepoFactory
		CascadeRepoFactory
	}

	// PurgeUoWFactory creates new purge unit of work instances.
	PurgeUoWFactory interface {
		Create() PurgeUoW
	}
)
