package orderrepo_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/orderrepo"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTripsAllFields() {
	ctx := context.Background()

	id := kernel.NewUUID()
	deliverymanID := kernel.NewUUID()
	signatureID := kernel.NewUUID()
	startDate := time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC)
	createdAt := startDate.Add(-time.Hour)

	originalOrder, err := order.RestoreOrder(
		id, kernel.NewUUID(), &deliverymanID, &signatureID, "Espresso machine",
		&startDate, &endDate, nil, createdAt, endDate,
	)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", id, originalOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	retrievedOrder, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)

	suite.True(id.IsEqual(retrievedOrder.ID()))
	suite.Equal("Espresso machine", retrievedOrder.Product())
	suite.True(originalOrder.Recipient().IsEqual(retrievedOrder.Recipient()))
	suite.Require().NotNil(retrievedOrder.Deliveryman())
	suite.True(deliverymanID.IsEqual(*retrievedOrder.Deliveryman()))
	suite.Require().NotNil(retrievedOrder.Signature())
	suite.True(signatureID.IsEqual(*retrievedOrder.Signature()))
	suite.Require().NotNil(retrievedOrder.StartDate())
	suite.True(startDate.Equal(*retrievedOrder.StartDate()))
	suite.Require().NotNil(retrievedOrder.EndDate())
	suite.True(endDate.Equal(*retrievedOrder.EndDate()))
	suite.Nil(retrievedOrder.CanceledAt())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrievedOrder, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_OrderLifecycleTransitions() {
	testCases := []struct {
		name   string
		mutate func(o *order.Order, at time.Time) error
		verify func(o *order.Order, at time.Time)
	}{
		{
			name: "record pickup",
			mutate: func(o *order.Order, at time.Time) error {
				return o.MarkPickedUp(at.Add(time.Minute), at)
			},
			verify: func(o *order.Order, at time.Time) {
				suite.Require().NotNil(o.StartDate())
				suite.True(o.StartDate().Equal(at.Add(time.Minute)))
				suite.True(o.IsActive())
			},
		},
		{
			name: "record delivery",
			mutate: func(o *order.Order, at time.Time) error {
				return o.MarkDelivered(at.Add(2*time.Hour), at)
			},
			verify: func(o *order.Order, at time.Time) {
				suite.Require().NotNil(o.EndDate())
				suite.True(o.EndDate().Equal(at.Add(2*time.Hour)))
				suite.False(o.IsActive())
			},
		},
		{
			name: "soft cancel",
			mutate: func(o *order.Order, at time.Time) error {
				return o.Cancel(at)
			},
			verify: func(o *order.Order, at time.Time) {
				suite.Require().NotNil(o.CanceledAt())
				suite.True(o.CanceledAt().Equal(at))
				suite.False(o.IsActive())
			},
		},
	}

	ctx := context.Background()
	at := time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			testOrder := suite.createTestOrder()
			suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()

			suite.Require().NoError(suite.repository.Add(ctx, testOrder))
			suite.Require().NoError(tc.mutate(testOrder, at))
			suite.Require().NoError(suite.repository.Update(ctx, testOrder))

			retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
			suite.Require().NoError(err)
			tc.verify(retrievedOrder, at)
		})
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	nonExistentOrder := suite.createTestOrder()

	err := suite.repository.Update(ctx, nonExistentOrder)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

// TestOrderRepository_ErrorScenarios verifies error handling for various failure cases.
func (suite *OrderRepositoryIntegrationTestSuite) TestOrderRepository_ErrorScenarios() {
	testCases := []struct {
		name      string
		operation func() error
		expected  string
	}{
		{
			name: "get with invalid UUID",
			operation: func() error {
				invalidID := kernel.UUID{}
				_, err := suite.repository.Get(context.Background(), invalidID)
				return err
			},
			expected: "required",
		},
		{
			name: "get non-existent order",
			operation: func() error {
				_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
				return err
			},
			expected: "not found",
		},
		{
			name: "update non-existent order",
			operation: func() error {
				return suite.repository.Update(context.Background(), suite.createTestOrder())
			},
			expected: "record not found",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			err := tc.operation()
			suite.Require().Error(err)
			suite.Contains(strings.ToLower(err.Error()), strings.ToLower(tc.expected))
			suite.tracker.AssertExpectations(suite.T())
		})
	}
}

// TestOrderRepository_Concurrency verifies repository behavior under concurrent access.
func (suite *OrderRepositoryIntegrationTestSuite) TestOrderRepository_Concurrency() {
	ctx := context.Background()

	initialOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", initialOrder.ID(), initialOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, initialOrder))

	results := make(chan *order.Order, 3)
	failures := make(chan error, 3)

	for range 3 {
		go func() {
			retrievedOrder, readErr := suite.repository.Get(ctx, initialOrder.ID())
			if readErr != nil {
				failures <- readErr
			} else {
				results <- retrievedOrder
			}
		}()
	}

	for range 3 {
		select {
		case result := <-results:
			suite.True(initialOrder.ID().IsEqual(result.ID()))
		case readErr := <-failures:
			suite.Failf("Unexpected error in concurrent read", "%v", readErr)
		}
	}

	suite.tracker.AssertExpectations(suite.T())
}

// createTestOrder creates a basic test order with default values.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	id := kernel.NewUUID()
	deliverymanID := kernel.NewUUID()
	now := time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)

	testOrder, err := order.NewOrder(id, kernel.NewUUID(), &deliverymanID, nil, "Coffee grinder", now)
	suite.Require().NoError(err)
	return testOrder
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
