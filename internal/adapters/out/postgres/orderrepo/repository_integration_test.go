package orderrepo_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "factoryorders/internal/adapters/out/postgres"
	"factoryorders/internal/adapters/out/postgres/orderrepo"
	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/order"
	"factoryorders/internal/core/domain/model/product"
	"factoryorders/internal/core/ports"
	"factoryorders/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite exercises the GORM order repository
// against a real PostgreSQL database, including the compare-and-set status
// update and the expired-draft feed.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
	sequence  int64
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	err = db.Exec("CREATE SEQUENCE IF NOT EXISTS order_number_seq").Error
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders").Error
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) repo() ports.OrderRepository {
	return suite.factory.Create().OrderRepository()
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(createdAt time.Time) *order.Order {
	suite.sequence++
	number, err := order.NewNumber("FO", suite.sequence)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), number, kernel.NewUUID(), kernel.NewUUID(), createdAt)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	repo := suite.repo()

	o := suite.newOrder(time.Now())
	fee, err := kernel.NewMoneyFromCents(7500)
	suite.Require().NoError(err)
	suite.Require().NoError(o.RequestSample(&fee))
	suite.Require().NoError(o.RouteSampleTo(product.AudienceManufacturer))

	err = repo.Add(ctx, o)
	suite.Require().NoError(err)

	stored, err := repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(o.ID().IsEqual(stored.ID()))
	suite.True(o.Number().IsEqual(stored.Number()))
	suite.Equal(order.Draft, stored.Status())
	suite.True(o.ClientID().IsEqual(stored.ClientID()))
	suite.True(o.ManufacturerID().IsEqual(stored.ManufacturerID()))
	suite.True(stored.SampleRequired())
	suite.Equal(product.AudienceManufacturer, stored.SampleRoutedTo())
	suite.Require().NotNil(stored.SampleFee())
	suite.Equal(int64(7500), stored.SampleFee().Cents())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repo().Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	var notFound *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_WritesSampleState() {
	ctx := context.Background()
	repo := suite.repo()

	o := suite.newOrder(time.Now())
	suite.Require().NoError(repo.Add(ctx, o))

	suite.Require().NoError(o.RequestSample(nil))
	suite.Require().NoError(o.MarkSampleFeePaid())
	invoiceID := kernel.NewUUID()
	suite.Require().NoError(o.AttachSampleInvoice(invoiceID))

	err := repo.Update(ctx, o)
	suite.Require().NoError(err)

	stored, err := repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(stored.SampleRequired())
	suite.True(stored.SampleFeePaid())
	suite.Require().NotNil(stored.SampleInvoiceID())
	suite.True(invoiceID.IsEqual(*stored.SampleInvoiceID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_DoesNotTouchStatus() {
	ctx := context.Background()
	repo := suite.repo()

	o := suite.newOrder(time.Now())
	suite.Require().NoError(repo.Add(ctx, o))

	// Simulate a concurrent transition committed after this order was loaded.
	moved, err := repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(moved.TransitionTo(order.SubmittedToManufacturer, access.RoleStaff))
	suite.Require().NoError(repo.UpdateStatus(ctx, moved, order.Draft))

	// A plain Update of the stale copy must not undo the transition.
	suite.Require().NoError(o.RequestSample(nil))
	suite.Require().NoError(repo.Update(ctx, o))

	stored, err := repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.SubmittedToManufacturer, stored.Status())
	suite.True(stored.SampleRequired())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_CompareAndSet() {
	ctx := context.Background()
	repo := suite.repo()

	o := suite.newOrder(time.Now())
	suite.Require().NoError(repo.Add(ctx, o))

	suite.Require().NoError(o.TransitionTo(order.SubmittedToManufacturer, access.RoleStaff))
	err := repo.UpdateStatus(ctx, o, order.Draft)
	suite.Require().NoError(err)

	stored, err := repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.SubmittedToManufacturer, stored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_StaleExpectation() {
	ctx := context.Background()
	repo := suite.repo()

	o := suite.newOrder(time.Now())
	suite.Require().NoError(repo.Add(ctx, o))

	// Another writer already moved the order past Draft.
	first, err := repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(first.TransitionTo(order.SubmittedToManufacturer, access.RoleStaff))
	suite.Require().NoError(repo.UpdateStatus(ctx, first, order.Draft))

	// The stale writer still holds the Draft-era copy.
	suite.Require().NoError(o.TransitionTo(order.SubmittedToManufacturer, access.RoleStaff))

	err = repo.UpdateStatus(ctx, o, order.Draft)

	suite.Require().Error(err)
	var precondition *errs.PreconditionFailedError
	suite.Require().ErrorAs(err, &precondition)
	suite.Equal(errs.ReasonStaleState, precondition.Reason)

	stored, err := repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.SubmittedToManufacturer, stored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetExpiredDrafts() {
	ctx := context.Background()
	repo := suite.repo()

	oldDraft := suite.newOrder(time.Now().Add(-40 * 24 * time.Hour))
	freshDraft := suite.newOrder(time.Now())
	submitted := suite.newOrder(time.Now().Add(-40 * 24 * time.Hour))

	suite.Require().NoError(repo.Add(ctx, oldDraft))
	suite.Require().NoError(repo.Add(ctx, freshDraft))
	suite.Require().NoError(repo.Add(ctx, submitted))
	suite.Require().NoError(submitted.TransitionTo(order.SubmittedToManufacturer, access.RoleStaff))
	suite.Require().NoError(repo.UpdateStatus(ctx, submitted, order.Draft))

	cutoff := time.Now().Add(-30 * 24 * time.Hour)
	expired, err := repo.GetExpiredDrafts(ctx, cutoff)
	suite.Require().NoError(err)

	suite.Require().Len(expired, 1)
	suite.True(oldDraft.ID().IsEqual(expired[0].ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestNextNumberSequence() {
	ctx := context.Background()
	repo := suite.repo()

	first, err := repo.NextNumberSequence(ctx)
	suite.Require().NoError(err)

	second, err := repo.NextNumberSequence(ctx)
	suite.Require().NoError(err)

	suite.Greater(second, first, "Sequence values must be strictly increasing")
}

func TestOrderRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
