package mocks

import (
	"context"

	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/stretchr/testify/mock"
)

type TxFunc = func(ctx context.Context, uow repository.UnitOfWork) error

// Transactor is a mock type for the Transactor type
type Transactor struct {
	mock.Mock
}

// WithinTx accepts either an error or a func(ctx, TxFunc) error as its return value.
func (_m *Transactor) WithinTx(ctx context.Context, fn TxFunc) error {
	ret := _m.Called(ctx, fn)

	if rf, ok := ret.Get(0).(func(context.Context, TxFunc) error); ok {
		return rf(ctx, fn)
	}

	return ret.Error(0)
}

// RunWith makes WithinTx hand uow to the callback and return whatever the callback returns.
func (_m *Transactor) RunWith(uow repository.UnitOfWork) *mock.Call {
	return _m.On("WithinTx", mock.Anything, mock.Anything).Return(func(ctx context.Context, fn TxFunc) error {
		return fn(ctx, uow)
	})
}

// NewTransactor creates a new instance of Transactor. It also registers a cleanup function to assert the mocks expectations.
func NewTransactor(t testingT) *Transactor {
	m := &Transactor{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// UnitOfWork is a mock type for the UnitOfWork type
type UnitOfWork struct {
	CartRepo  *CartRepository
	OrderRepo *OrderRepository
}

func (u *UnitOfWork) Carts() repository.CartRepository {
	return u.CartRepo
}

func (u *UnitOfWork) Orders() repository.OrderRepository {
	return u.OrderRepo
}
