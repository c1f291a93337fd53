// Package postgres provides the GORM-based Unit of Work and repositories.
// A unit of work owns one database transaction; every repository it hands
// out is bound to that transaction, so a command's writes commit or roll
// back together.
package postgres

import (
	"context"

	"factoryorders/internal/adapters/out/postgres/auditrepo"
	"factoryorders/internal/adapters/out/postgres/billingrepo"
	"factoryorders/internal/adapters/out/postgres/orderrepo"
	"factoryorders/internal/adapters/out/postgres/pricingrepo"
	"factoryorders/internal/adapters/out/postgres/productrepo"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// connection pool. Each Create call yields an isolated unit of work.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory over the given connection.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the order,
// product, pricing, billing, and cascade repositories. Repositories
// requested before Begin run against the pool directly; after Begin they
// share the transaction.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling Begin twice is a no-op, not a nested
// transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes the transaction. The unit of work cannot be reused after.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. Safe to defer after Commit: the double
// call returns gorm.ErrInvalidTransaction, which callers ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository returns an order repository bound to the transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// ProductRepository returns a product repository bound to the transaction.
func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewGormProductRepository(uow.conn(), uow)
}

// PricingRepository returns a pricing repository bound to the transaction.
func (uow *GormUnitOfWork) PricingRepository() ports.PricingRepository {
	return pricingrepo.NewGormPricingRepository(uow.conn())
}

// BillingRepository returns a billing repository bound to the transaction.
func (uow *GormUnitOfWork) BillingRepository() ports.BillingRepository {
	return billingrepo.NewGormBillingRepository(uow.conn())
}

// CascadeRepository returns the cascade purge repository bound to the
// transaction.
func (uow *GormUnitOfWork) CascadeRepository() ports.CascadeRepository {
	return NewGormCascadeRepository(uow.conn())
}

// AuditRepository returns the append-only audit store. Audit writes normally
// bypass the unit of work (they run on the pool, outside the primary
// transaction), but the trail query side uses this accessor.
func (uow *GormUnitOfWork) AuditRepository() ports.AuditRepository {
	return auditrepo.NewGormAuditRepository(uow.conn())
}

// TrackAggregate registers a modified aggregate. Repositories call this on
// every add or update; post-commit processing can then inspect the set.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
