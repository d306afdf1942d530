package mocks

import (
	"context"

	"billapi/internal/model"
	"billapi/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) Create(ctx context.Context, bill *model.Bill) (*model.Bill, error) {
	args := m.Called(ctx, bill)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if f, ok := args.Get(0).(func(context.Context, *model.Bill) *model.Bill); ok {
		return f(ctx, bill), args.Error(1)
	}
	return args.Get(0).(*model.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByID(ctx context.Context, id string) (*model.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByEmail(ctx context.Context, email string) ([]model.Bill, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bill), args.Error(1)
}

func (m *MockBillRepository) List(ctx context.Context) ([]model.Bill, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bill), args.Error(1)
}

func (m *MockBillRepository) ListPage(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Bill], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Bill]), args.Error(1)
}

func (m *MockBillRepository) Update(ctx context.Context, bill *model.Bill) (*model.Bill, error) {
	args := m.Called(ctx, bill)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if f, ok := args.Get(0).(func(context.Context, *model.Bill) *model.Bill); ok {
		return f(ctx, bill), args.Error(1)
	}
	return args.Get(0).(*model.Bill), args.Error(1)
}
