package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// Cache is a mock type for the Cache type
type Cache struct {
	mock.Mock
}

// Get accepts either (bool, error) or a func(ctx, key, value) (bool, error) that fills value.
func (_m *Cache) Get(ctx context.Context, key string, value any) (bool, error) {
	ret := _m.Called(ctx, key, value)

	if rf, ok := ret.Get(0).(func(context.Context, string, any) (bool, error)); ok {
		return rf(ctx, key, value)
	}

	return ret.Bool(0), ret.Error(1)
}

func (_m *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	ret := _m.Called(ctx, key, value, ttl)

	return ret.Error(0)
}

func (_m *Cache) Delete(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)

	return ret.Error(0)
}

func (_m *Cache) Close() error {
	ret := _m.Called()

	return ret.Error(0)
}

// NewCache creates a new instance of Cache. It also registers a cleanup function to assert the mocks expectations.
func NewCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *Cache {
	m := &Cache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
