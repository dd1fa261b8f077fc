package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// CartService is a mock type for the CartService type
type CartService struct {
	mock.Mock
}

func (_m *CartService) CreateCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error) {
	ret := _m.Called(ctx, userID)

	return cartResponse(ret)
}

func (_m *CartService) GetCart(ctx context.Context, userID uuid.UUID, cartID uuid.UUID) (*models.CartResponse, error) {
	ret := _m.Called(ctx, userID, cartID)

	return cartResponse(ret)
}

func (_m *CartService) AddItem(ctx context.Context, userID uuid.UUID, cartID uuid.UUID, req *models.AddItemRequest) (*models.CartResponse, error) {
	ret := _m.Called(ctx, userID, cartID, req)

	return cartResponse(ret)
}

func (_m *CartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, cartID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartResponse, error) {
	ret := _m.Called(ctx, userID, cartID, req)

	return cartResponse(ret)
}

func (_m *CartService) DeleteCart(ctx context.Context, userID uuid.UUID, cartID uuid.UUID) error {
	ret := _m.Called(ctx, userID, cartID)

	return ret.Error(0)
}

func cartResponse(ret mock.Arguments) (*models.CartResponse, error) {
	var r0 *models.CartResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.CartResponse)
	}

	return r0, ret.Error(1)
}

// NewCartService creates a new instance of CartService. It also registers a cleanup function to assert the mocks expectations.
func NewCartService(t testingT) *CartService {
	m := &CartService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
