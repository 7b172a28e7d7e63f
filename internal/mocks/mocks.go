package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pizza-service/internal/domain"
	"pizza-service/internal/infra"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Exists(ctx context.Context, category, id string) (bool, error) {
	args := m.Called(ctx, category, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) Create(ctx context.Context, category, id string, value []byte) error {
	args := m.Called(ctx, category, id, value)
	return args.Error(0)
}

func (m *MockStore) Read(ctx context.Context, category, id string) ([]byte, error) {
	args := m.Called(ctx, category, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStore) Update(ctx context.Context, category, id string, value []byte) error {
	args := m.Called(ctx, category, id, value)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, category, id string) error {
	args := m.Called(ctx, category, id)
	return args.Error(0)
}

type MockCharger struct {
	mock.Mock
}

func (m *MockCharger) Charge(ctx context.Context, sourceToken string, amount float64, description string) (*infra.ChargeResult, error) {
	args := m.Called(ctx, sourceToken, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infra.ChargeResult), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, subject, htmlBody, to string) error {
	args := m.Called(ctx, subject, htmlBody, to)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, data interface{}) error {
	args := m.Called(ctx, routingKey, data)
	return args.Error(0)
}

type MockItemResolver struct {
	mock.Mock
}

func (m *MockItemResolver) Item(ctx context.Context, category, itemID string) (*domain.Item, error) {
	args := m.Called(ctx, category, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
