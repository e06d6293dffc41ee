package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "foodcourt/internal/adapters/out/postgres"
	"foodcourt/internal/adapters/out/postgres/catalogrepo"
	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes the PostgreSQL container and database connection,
// then runs schema migrations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, stores, products, users, cards CASCADE").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up the PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// TestUnitOfWorkFactory_Create verifies the factory creates isolated unit of
// work instances that each expose the full repository set.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.StoreRepository())
	suite.NotNil(uow1.ProductRepository())
	suite.NotNil(uow1.UserRepository())
	suite.NotNil(uow1.CardRepository())
	suite.NotNil(uow2.OrderRepository())
}

// TestUnitOfWork_TransactionLifecycle verifies begin, commit, and rollback
// behavior including the idempotent begin and the no-transaction errors.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	// No active transaction after commit or rollback.
	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

// TestUnitOfWork_CommitMakesOrderVisible verifies that an order added within
// a transaction is visible to other connections only after commit.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitMakesOrderVisible() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	testOrder := suite.createTestOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	// Not visible outside the transaction yet.
	outside := suite.factory.Create()
	_, err := outside.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err)

	suite.Require().NoError(uow.Commit(ctx))

	retrieved, err := outside.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrieved.ID())
	suite.Len(retrieved.Items(), 1)
	suite.Len(retrieved.History(), 1)
}

// TestUnitOfWork_RollbackDiscardsAllChanges verifies that rollback leaves no
// partial aggregate behind in any of the order tables.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsAllChanges() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	testOrder := suite.createTestOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Rollback(ctx))

	for _, table := range []string{"orders", "order_items", "order_status_history", "user_order_links"} {
		var count int64
		suite.Require().NoError(suite.db.Table(table).Count(&count).Error)
		suite.Zero(count, "table %s should be empty after rollback", table)
	}
}

// TestUnitOfWork_CrossRepositoryTransaction verifies that catalog lookups and
// the order write run against the same transaction, mirroring the create
// order flow.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CrossRepositoryTransaction() {
	ctx := context.Background()

	storeID := kernel.NewUUID()
	productID := kernel.NewUUID()
	price, err := kernel.MoneyFromString("14.00")
	suite.Require().NoError(err)

	storeRepo := catalogrepo.NewGormStoreRepository(suite.db)
	suite.Require().NoError(storeRepo.Add(ctx, ports.Store{ID: storeID, Name: "Thai Palace"}))

	productRepo := catalogrepo.NewGormProductRepository(suite.db)
	suite.Require().NoError(productRepo.Add(ctx, ports.Product{
		ID:      productID,
		StoreID: storeID,
		Name:    "Green Curry",
		Price:   price,
	}))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	store, err := uow.StoreRepository().Get(ctx, storeID)
	suite.Require().NoError(err)
	suite.Equal("Thai Palace", store.Name)

	product, err := uow.ProductRepository().Get(ctx, productID, storeID)
	suite.Require().NoError(err)
	suite.True(price.IsEqual(product.Price))

	item, err := order.NewItem(product.ID, 1, product.Price)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), store.ID, nil, kernel.NewUUID(),
		"12 Market Street", "", []order.Item{item}, time.Now().UTC(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	suite.Require().NoError(uow.Commit(ctx))

	retrieved, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(storeID, retrieved.StoreID())
}

// createTestOrder creates a pending order with a single line item.
func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder() *order.Order {
	price, err := kernel.MoneyFromString("12.50")
	suite.Require().NoError(err)

	item, err := order.NewItem(kernel.NewUUID(), 2, price)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		nil,
		kernel.NewUUID(),
		"12 Market Street",
		"leave at reception",
		[]order.Item{item},
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return testOrder
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
