package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// UserService is a mock type for the UserService type
type UserService struct {
	mock.Mock
}

func (_m *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	ret := _m.Called(ctx, req)

	return user(ret)
}

func (_m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.LoginResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.LoginResponse)
	}

	return r0, ret.Error(1)
}

func (_m *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ret := _m.Called(ctx, id)

	return user(ret)
}

func user(ret mock.Arguments) (*models.User, error) {
	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}

	return r0, ret.Error(1)
}

// NewUserService creates a new instance of UserService. It also registers a cleanup function to assert the mocks expectations.
func NewUserService(t testingT) *UserService {
	m := &UserService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
