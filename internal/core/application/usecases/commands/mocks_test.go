package commands_test

import (
	"context"
	"time"

	"factoryorders/internal/core/application/usecases/commands"
	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/billing"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/order"
	"factoryorders/internal/core/domain/model/pricing"
	"factoryorders/internal/core/domain/model/product"
	"factoryorders/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetExpiredDrafts(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if orders, ok := args.Get(0).([]*order.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) NextNumberSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.OrderProduct) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.OrderProduct) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.OrderProduct, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*product.OrderProduct); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*product.OrderProduct, error) {
	args := m.Called(ctx, orderID)
	if products, ok := args.Get(0).([]*product.OrderProduct); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) GetDeletedByOrder(ctx context.Context, orderID kernel.UUID) ([]*product.OrderProduct, error) {
	args := m.Called(ctx, orderID)
	if products, ok := args.Get(0).([]*product.OrderProduct); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) GetManufacturerPriced(ctx context.Context) ([]*product.OrderProduct, error) {
	args := m.Called(ctx)
	if products, ok := args.Get(0).([]*product.OrderProduct); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) AddItem(ctx context.Context, item *product.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockProductRepository) GetItem(ctx context.Context, id kernel.UUID) (*product.OrderItem, error) {
	args := m.Called(ctx, id)
	if item, ok := args.Get(0).(*product.OrderItem); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) UpdateItem(ctx context.Context, item *product.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockProductRepository) GetItems(ctx context.Context, productID kernel.UUID) ([]*product.OrderItem, error) {
	args := m.Called(ctx, productID)
	if items, ok := args.Get(0).([]*product.OrderItem); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPricingRepository struct{ mock.Mock }

func (m *MockPricingRepository) GetOrderMargin(ctx context.Context, orderID kernel.UUID) (*pricing.OrderMargin, error) {
	args := m.Called(ctx, orderID)
	if margin, ok := args.Get(0).(*pricing.OrderMargin); ok {
		return margin, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPricingRepository) SaveOrderMargin(ctx context.Context, margin *pricing.OrderMargin) error {
	args := m.Called(ctx, margin)
	return args.Error(0)
}

func (m *MockPricingRepository) LoadConfig(ctx context.Context) (pricing.Config, error) {
	args := m.Called(ctx)
	return args.Get(0).(pricing.Config), args.Error(1)
}

func (m *MockPricingRepository) SeedDefaults(ctx context.Context, margin, shippingMargin kernel.Percent) error {
	args := m.Called(ctx, margin, shippingMargin)
	return args.Error(0)
}

func (m *MockPricingRepository) SetDefault(ctx context.Context, key string, value kernel.Percent) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

type MockBillingRepository struct{ mock.Mock }

func (m *MockBillingRepository) AddInvoice(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockBillingRepository) UpdateInvoice(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockBillingRepository) GetInvoice(ctx context.Context, id kernel.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if invoice, ok := args.Get(0).(*billing.Invoice); ok {
		return invoice, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBillingRepository) GetInvoicesByOrder(ctx context.Context, orderID kernel.UUID) ([]*billing.Invoice, error) {
	args := m.Called(ctx, orderID)
	if invoices, ok := args.Get(0).([]*billing.Invoice); ok {
		return invoices, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBillingRepository) AddInvoiceItem(ctx context.Context, item *billing.InvoiceItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

type MockCascadeRepository struct{ mock.Mock }

func (m *MockCascadeRepository) PurgeOrder(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

// MockUoW serves every unit-of-work shape the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

func (m *MockUoW) PricingRepository() ports.PricingRepository {
	args := m.Called()
	return args.Get(0).(ports.PricingRepository)
}

func (m *MockUoW) BillingRepository() ports.BillingRepository {
	args := m.Called()
	return args.Get(0).(ports.BillingRepository)
}

func (m *MockUoW) CascadeRepository() ports.CascadeRepository {
	args := m.Called()
	return args.Get(0).(ports.CascadeRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockBillingUoWFactory struct{ mock.Mock }

func (m *MockBillingUoWFactory) Create() commands.BillingUoW {
	args := m.Called()
	return args.Get(0).(commands.BillingUoW)
}

type MockPurgeUoWFactory struct{ mock.Mock }

func (m *MockPurgeUoWFactory) Create() commands.PurgeUoW {
	args := m.Called()
	return args.Get(0).(commands.PurgeUoW)
}

// RecordingAuditLogger captures audit entries for assertions; Record never
// fails, matching the production port contract.
type RecordingAuditLogger struct {
	Entries []*audit.Entry
}

func (l *RecordingAuditLogger) Record(_ context.Context, entry *audit.Entry) {
	l.Entries = append(l.Entries, entry)
}

func (l *RecordingAuditLogger) Actions() []audit.ActionType {
	actions := make([]audit.ActionType, 0, len(l.Entries))
	for _, entry := range l.Entries {
		actions = append(actions, entry.Action())
	}
	return actions
}

type recordedNotification struct {
	UserID  kernel.UUID
	Kind    ports.NotificationKind
	OrderID kernel.UUID
}

// RecordingNotifier captures notifications for assertions.
type RecordingNotifier struct {
	Notifications []recordedNotification
}

func (n *RecordingNotifier) Notify(
	_ context.Context,
	userID kernel.UUID,
	kind ports.NotificationKind,
	_ string,
	relatedOrderID kernel.UUID,
) {
	n.Notifications = append(n.Notifications, recordedNotification{
		UserID:  userID,
		Kind:    kind,
		OrderID: relatedOrderID,
	})
}
