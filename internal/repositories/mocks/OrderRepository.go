package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// OrderRepository is a mock type for the OrderRepository type
type OrderRepository struct {
	mock.Mock
}

func (_m *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	ret := _m.Called(ctx, order)

	return ret.Error(0)
}

func (_m *OrderRepository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	ret := _m.Called(ctx, items)

	return ret.Error(0)
}

func (_m *OrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Order)
	}

	return r0, ret.Error(1)
}

func (_m *OrderRepository) GetOrderForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Order)
	}

	return r0, ret.Error(1)
}

func (_m *OrderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page int, size int) ([]models.Order, int, error) {
	ret := _m.Called(ctx, userID, page, size)

	var r0 []models.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Order)
	}

	return r0, ret.Int(1), ret.Error(2)
}

func (_m *OrderRepository) UpdateOrderStatus(ctx context.Context, order *models.Order) error {
	ret := _m.Called(ctx, order)

	return ret.Error(0)
}

// NewOrderRepository creates a new instance of OrderRepository. It also registers a cleanup function to assert the mocks expectations.
func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
