package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// OrderService is a mock type for the OrderService type
type OrderService struct {
	mock.Mock
}

func (_m *OrderService) CreateOrder(ctx context.Context, actor models.Actor, req *models.CreateOrderRequest) (*models.Order, error) {
	ret := _m.Called(ctx, actor, req)

	return order(ret)
}

func (_m *OrderService) GetOrderByID(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Order, error) {
	ret := _m.Called(ctx, actor, id)

	return order(ret)
}

func (_m *OrderService) ListOrders(ctx context.Context, actor models.Actor, page int, size int) ([]models.Order, int, error) {
	ret := _m.Called(ctx, actor, page, size)

	var r0 []models.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Order)
	}

	return r0, ret.Int(1), ret.Error(2)
}

func (_m *OrderService) CancelOrder(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Order, error) {
	ret := _m.Called(ctx, actor, id)

	return order(ret)
}

func (_m *OrderService) UpdateOrderStatus(ctx context.Context, actor models.Actor, id uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	ret := _m.Called(ctx, actor, id, req)

	return order(ret)
}

func order(ret mock.Arguments) (*models.Order, error) {
	var r0 *models.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Order)
	}

	return r0, ret.Error(1)
}

// NewOrderService creates a new instance of OrderService. It also registers a cleanup function to assert the mocks expectations.
func NewOrderService(t testingT) *OrderService {
	m := &OrderService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
