package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// CartRepository is a mock type for the CartRepository type
type CartRepository struct {
	mock.Mock
}

func (_m *CartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	ret := _m.Called(ctx, cart)

	return ret.Error(0)
}

func (_m *CartRepository) GetCart(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Cart
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Cart)
	}

	return r0, ret.Error(1)
}

func (_m *CartRepository) GetCartForUpdate(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Cart
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Cart)
	}

	return r0, ret.Error(1)
}

func (_m *CartRepository) AddItem(ctx context.Context, cartID uuid.UUID, productID uuid.UUID, quantity int) error {
	ret := _m.Called(ctx, cartID, productID, quantity)

	return ret.Error(0)
}

func (_m *CartRepository) SetItemQuantity(ctx context.Context, cartID uuid.UUID, productID uuid.UUID, quantity int) error {
	ret := _m.Called(ctx, cartID, productID, quantity)

	return ret.Error(0)
}

func (_m *CartRepository) RemoveItem(ctx context.Context, cartID uuid.UUID, productID uuid.UUID) error {
	ret := _m.Called(ctx, cartID, productID)

	return ret.Error(0)
}

func (_m *CartRepository) DeleteCart(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}

// NewCartRepository creates a new instance of CartRepository. It also registers a cleanup function to assert the mocks expectations.
func NewCartRepository(t testingT) *CartRepository {
	m := &CartRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
