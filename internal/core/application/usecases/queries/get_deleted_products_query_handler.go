package queries

import (
	"context"
	"time"

	"factoryorders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeletedProductsQueryHandler reads the deleted-products report for an order.
type GetDeletedProductsQueryHandler struct {
	db *gorm.DB
}

// NewGetDeletedProductsQueryHandler creates a handler for the report.
func NewGetDeletedProductsQueryHandler(db *gorm.DB) GetDeletedProductsQueryHandler {
	return GetDeletedProductsQueryHandler{db: db}
}

// Handle executes the query, newest deletion first.
func (h GetDeletedProductsQueryHandler) Handle(
	ctx context.Context,
	query GetDeletedProductsQuery,
) ([]GetDeletedProductsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	report := make([]GetDeletedProductsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			deleted_at,
			deleted_by,
			deletion_reason
		FROM order_products
		WHERE order_id = ?
		  AND deleted_at IS NOT NULL
		ORDER BY deleted_at DESC
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, deletedBy uuid.UUID
		var name, reason string
		var deletedAt time.Time

		if err = rows.Scan(&id, &name, &deletedAt, &deletedBy, &reason); err != nil {
			return nil, err
		}

		productID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		actorID, idErr := kernel.UUIDFromBytes(deletedBy[:])
		if idErr != nil {
			return nil, idErr
		}

		report = append(report, GetDeletedProductsQueryResponse{
			ProductID: productID,
			Name:      name,
			DeletedAt: deletedAt,
			DeletedBy: actorID,
			Reason:    reason,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return report, nil
}
