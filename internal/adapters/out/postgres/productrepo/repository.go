package productrepo

import (
	"context"
	"errors"

	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/product"
	"factoryorders/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB, tracker aggregateTracker) *GormProductRepository {
	return &GormProductRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new product to the database.
func (r *GormProductRepository) Add(ctx context.Context, aggregate *product.OrderProduct) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing product. The whole row is written in one
// statement, so the client price and applied margin always land together.
func (r *GormProductRepository) Update(ctx context.Context, aggregate *product.OrderProduct) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a product by ID, soft-deleted ones included.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.OrderProduct, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrder retrieves the live products of an order.
func (r *GormProductRepository) GetByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*product.OrderProduct, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ProductDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "order_id = ? AND deleted_at IS NULL", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetDeletedByOrder retrieves the soft-deleted products of an order.
func (r *GormProductRepository) GetDeletedByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*product.OrderProduct, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ProductDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "order_id = ? AND deleted_at IS NOT NULL", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetManufacturerPriced retrieves every live product with a manufacturer
// price, resolved or not. Filtering on client_price_cents would hide drifted
// rows from the repair batch, so the predicate stays wide.
func (r *GormProductRepository) GetManufacturerPriced(ctx context.Context) ([]*product.OrderProduct, error) {
	var dtos []ProductDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "manufacturer_price_cents IS NOT NULL AND deleted_at IS NULL").
		Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// AddItem saves a new order item.
func (r *GormProductRepository) AddItem(ctx context.Context, item *product.OrderItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := itemFromDomain(item)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetItem retrieves one order item by ID.
func (r *GormProductRepository) GetItem(ctx context.Context, id kernel.UUID) (*product.OrderItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order item", id.String())
		}
		return nil, err
	}

	return itemToDomain(dto)
}

// UpdateItem saves an existing order item.
func (r *GormProductRepository) UpdateItem(ctx context.Context, item *product.OrderItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := itemFromDomain(item)
	result := r.db.WithContext(ctx).
		Model(&ItemDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order item", item.ID().String())
	}

	return nil
}

// GetItems retrieves the items of a product.
func (r *GormProductRepository) GetItems(
	ctx context.Context,
	productID kernel.UUID,
) ([]*product.OrderItem, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ItemDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "product_id = ?", productID.Bytes()).Error; err != nil {
		return nil, err
	}

	items := make([]*product.OrderItem, 0, len(dtos))
	for _, dto := range dtos {
		item, err := itemToDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func toDomainSlice(dtos []ProductDTO) ([]*product.OrderProduct, error) {
	products := make([]*product.OrderProduct, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}
