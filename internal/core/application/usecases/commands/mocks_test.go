package commands_test

import (
	"context"
	"testing"

	"agenthub/internal/core/domain/events"
	"agenthub/internal/core/domain/model/kernel"
	"agenthub/internal/core/domain/model/order"
	"agenthub/internal/core/domain/model/route"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAgentBackend struct{ mock.Mock }

func (m *MockAgentBackend) FetchHistory(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockAgentBackend) AcceptOrder(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockAgentBackend) RejectOrder(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockOrderStore struct{ mock.Mock }

func (m *MockOrderStore) ApplySnapshot(ctx context.Context, orders []*order.Order) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

func (m *MockOrderStore) Ingest(ctx context.Context, o *order.Order) (bool, error) {
	args := m.Called(ctx, o)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderStore) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderStore) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderStore) Remove(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderStore) GetAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockLocationProvider struct{ mock.Mock }

func (m *MockLocationProvider) Acquire(ctx context.Context) (kernel.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.Location), args.Error(1)
}

type MockRoutePublisher struct{ mock.Mock }

func (m *MockRoutePublisher) Publish(ctx context.Context, orderID kernel.UUID, r route.Route) error {
	args := m.Called(ctx, orderID, r)
	return args.Error(0)
}

func (m *MockRoutePublisher) Current(ctx context.Context) (route.Route, error) {
	args := m.Called(ctx)
	return args.Get(0).(route.Route), args.Error(1)
}

func (m *MockRoutePublisher) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func mustLocation(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}

func assignedOrder(t *testing.T, dest kernel.Location) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "Asha", "12 MG Road", dest, 420)
	require.NoError(t, err)
	return o
}
