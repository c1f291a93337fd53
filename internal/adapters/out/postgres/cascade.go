package postgres

import (
	"context"
	"fmt"

	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/pkg/errs"

	"gorm.io/gorm"
)

// purgeStep is one table swept by the order purge cascade. Steps run
// child-first; optional steps tolerate a missing table because some
// dependent record kinds are deployment-optional.
type purgeStep struct {
	table    string
	where    string
	optional bool
}

// purgeSteps is the cascade order. Audit entries are deliberately absent:
// the trail of a purged order stays readable.
func purgeSteps() []purgeStep {
	return []purgeStep{
		{table: "invoice_items", where: "invoice_id IN (SELECT id FROM invoices WHERE order_id = ?)"},
		{table: "invoices", where: "order_id = ?"},
		{table: "order_items", where: "product_id IN (SELECT id FROM order_products WHERE order_id = ?)"},
		{table: "order_attachments", where: "product_id IN (SELECT id FROM order_products WHERE order_id = ?)", optional: true},
		{table: "order_products", where: "order_id = ?"},
		{table: "order_margins", where: "order_id = ?"},
		{table: "order_notifications", where: "order_id = ?", optional: true},
		{table: "order_attachments", where: "order_id = ?", optional: true},
		{table: "order_notes", where: "order_id = ?", optional: true},
		{table: "orders", where: "id = ?"},
	}
}

// GormCascadeRepository implements CascadeRepository using GORM.
type GormCascadeRepository struct {
	db *gorm.DB
}

// NewGormCascadeRepository creates a new GORM cascade repository.
func NewGormCascadeRepository(db *gorm.DB) *GormCascadeRepository {
	return &GormCascadeRepository{db: db}
}

// PurgeOrder removes the order row and every dependent row, child-first.
// Purging an absent order succeeds, so sweep re-runs are idempotent.
//
// Optional tables are probed with to_regclass before the delete: a failed
// DELETE would abort the surrounding transaction, so the probe has to come
// first rather than catching undefined_table after the fact.
func (r *GormCascadeRepository) PurgeOrder(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	for _, step := range purgeSteps() {
		if step.optional {
			present, err := r.tableExists(ctx, step.table)
			if err != nil {
				return err
			}
			if !present {
				continue
			}
		}

		stmt := fmt.Sprintf("DELETE FROM %s WHERE %s", step.table, step.where)
		if err := r.db.WithContext(ctx).Exec(stmt, orderID.Bytes()).Error; err != nil {
			return errs.NewIntegrityErrorWithCause(
				fmt.Sprintf("purge of order %s failed at %s", orderID, step.table),
				err,
			)
		}
	}

	return nil
}

func (r *GormCascadeRepository) tableExists(ctx context.Context, table string) (bool, error) {
	var regclass *string
	err := r.db.WithContext(ctx).Raw("SELECT to_regclass(?)", table).Scan(&regclass).Error
	if err != nil {
		return false, err
	}
	return regclass != nil, nil
}
