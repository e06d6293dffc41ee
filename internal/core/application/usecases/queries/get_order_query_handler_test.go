package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "foodcourt/internal/adapters/out/postgres"
	"foodcourt/internal/adapters/out/postgres/catalogrepo"
	"foodcourt/internal/adapters/out/postgres/orderrepo"
	"foodcourt/internal/core/application/usecases/queries"
	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/domain/services"
	"foodcourt/internal/core/ports"
	"foodcourt/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker is a no-op tracker for tests that bypass the unit of work.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderQueryHandler
	orderRepo *orderrepo.GormOrderRepository

	store    ports.Store
	padThai  ports.Product
	curry    ports.Product
	adminID  kernel.UUID
	courier  kernel.UUID
	customer kernel.UUID
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.handler = queries.NewGetOrderQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})

	suite.adminID = kernel.NewUUID()
	suite.courier = kernel.NewUUID()
	suite.customer = kernel.NewUUID()

	suite.seedCatalog(ctx)
}

func (suite *GetOrderQueryHandlerTestSuite) seedCatalog(ctx context.Context) {
	suite.store = ports.Store{ID: kernel.NewUUID(), Name: "Thai Palace", Logo: "thai-palace.png"}
	storeRepo := catalogrepo.NewGormStoreRepository(suite.db)
	suite.Require().NoError(storeRepo.Add(ctx, suite.store))

	padThaiPrice, err := kernel.MoneyFromString("12.50")
	suite.Require().NoError(err)
	curryPrice, err := kernel.MoneyFromString("14.00")
	suite.Require().NoError(err)

	suite.padThai = ports.Product{
		ID:      kernel.NewUUID(),
		StoreID: suite.store.ID,
		Name:    "Pad Thai",
		Price:   padThaiPrice,
	}
	suite.curry = ports.Product{
		ID:      kernel.NewUUID(),
		StoreID: suite.store.ID,
		Name:    "Green Curry",
		Price:   curryPrice,
	}

	productRepo := catalogrepo.NewGormProductRepository(suite.db)
	suite.Require().NoError(productRepo.Add(ctx, suite.padThai))
	suite.Require().NoError(productRepo.Add(ctx, suite.curry))
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_Admin_ReturnsFullProjection() {
	ctx := context.Background()
	testOrder := suite.createOrder(ctx)

	result, err := suite.handler.Handle(ctx, suite.query(testOrder.ID(), suite.adminID, services.RoleAdmin))
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), result.ID)
	suite.Equal(testOrder.TrackingCode().String(), result.TrackingCode.String())
	suite.Equal(suite.store.ID, result.Store.ID)
	suite.Equal("Thai Palace", result.Store.Name)
	suite.Equal("thai-palace.png", result.Store.Logo)
	suite.Equal(order.StatusPending, result.Status)
	suite.False(result.Resolved)
	suite.Equal("31.00", result.Total.String())
	suite.Equal("12 Market Street", result.Address)
	suite.Nil(result.CourierID)

	// Items keep the order they were submitted in.
	suite.Require().Len(result.Items, 2)
	suite.Equal("Pad Thai", result.Items[0].ProductName)
	suite.Equal(2, result.Items[0].Quantity)
	suite.Equal("12.50", result.Items[0].UnitPrice.String())
	suite.Equal("25.00", result.Items[0].Subtotal.String())
	suite.Equal("Green Curry", result.Items[1].ProductName)
	suite.Equal("6.00", result.Items[1].Subtotal.String())

	suite.Require().Len(result.History, 1)
	suite.Equal(order.StatusPending, result.History[0].Status)
	suite.Equal("order placed", result.History[0].Comment)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_Owner_CanViewOwnOrder() {
	ctx := context.Background()
	testOrder := suite.createOrder(ctx)

	result, err := suite.handler.Handle(ctx, suite.query(testOrder.ID(), suite.customer, services.RoleCustomer))
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), result.ID)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_OtherCustomer_Forbidden() {
	ctx := context.Background()
	testOrder := suite.createOrder(ctx)

	_, err := suite.handler.Handle(ctx, suite.query(testOrder.ID(), kernel.NewUUID(), services.RoleCustomer))
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrForbidden)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_AssignedCourier_SeesCourierID() {
	ctx := context.Background()
	testOrder := suite.createOrder(ctx)
	suite.Require().NoError(testOrder.AssignCourier(suite.courier))
	suite.Require().NoError(suite.orderRepo.Update(ctx, testOrder))

	result, err := suite.handler.Handle(ctx, suite.query(testOrder.ID(), suite.courier, services.RoleCourier))
	suite.Require().NoError(err)

	suite.Require().NotNil(result.CourierID)
	suite.Equal(suite.courier, *result.CourierID)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_UnlinkedCourier_Forbidden() {
	ctx := context.Background()
	testOrder := suite.createOrder(ctx)

	_, err := suite.handler.Handle(ctx, suite.query(testOrder.ID(), suite.courier, services.RoleCourier))
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrForbidden)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_NonExistentOrder_ReturnsNotFound() {
	ctx := context.Background()

	_, err := suite.handler.Handle(ctx, suite.query(kernel.NewUUID(), suite.adminID, services.RoleAdmin))
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_HistoryIsOldestFirst() {
	ctx := context.Background()
	testOrder := suite.createOrder(ctx)

	table := order.PolicyOrdered.Table()
	base := time.Now().UTC()
	suite.Require().NoError(testOrder.ChangeStatus(order.StatusAccepted, table, "store confirmed", base.Add(time.Minute)))
	suite.Require().NoError(testOrder.ChangeStatus(order.StatusPicked, table, "courier picked up", base.Add(2*time.Minute)))
	suite.Require().NoError(suite.orderRepo.Update(ctx, testOrder))

	result, err := suite.handler.Handle(ctx, suite.query(testOrder.ID(), suite.adminID, services.RoleAdmin))
	suite.Require().NoError(err)

	suite.Require().Len(result.History, 3)
	suite.Equal(order.StatusPending, result.History[0].Status)
	suite.Equal(order.StatusAccepted, result.History[1].Status)
	suite.Equal(order.StatusPicked, result.History[2].Status)
}

// query builds a validated GetOrderQuery for the given actor.
func (suite *GetOrderQueryHandlerTestSuite) query(
	orderID, actorID kernel.UUID, role services.Role,
) queries.GetOrderQuery {
	actor, err := services.NewActor(actorID, role)
	suite.Require().NoError(err)

	q, err := queries.NewGetOrderQuery(orderID, actor)
	suite.Require().NoError(err)
	return q
}

// createOrder persists a pending order owned by the suite's customer with two
// line items against the seeded catalog.
func (suite *GetOrderQueryHandlerTestSuite) createOrder(ctx context.Context) *order.Order {
	first, err := order.NewItem(suite.padThai.ID, 2, suite.padThai.Price)
	suite.Require().NoError(err)

	sides, err := kernel.MoneyFromString("6.00")
	suite.Require().NoError(err)
	second, err := order.NewItem(suite.curry.ID, 1, sides)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		suite.store.ID,
		nil,
		suite.customer,
		"12 Market Street",
		"",
		[]order.Item{first, second},
		time.Now().UTC(),
	)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))
	return testOrder
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
