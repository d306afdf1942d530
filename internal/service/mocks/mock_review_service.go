package mocks

import (
	"context"

	"billapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListAll(ctx context.Context) ([]model.Bill, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bill), args.Error(1)
}

func (m *MockReviewService) Filter(bills []model.Bill, status model.BillStatus, reviewer string) []model.Bill {
	args := m.Called(bills, status, reviewer)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Bill)
}

func (m *MockReviewService) Accept(ctx context.Context, id string, comment string) (*model.Bill, error) {
	args := m.Called(ctx, id, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bill), args.Error(1)
}

func (m *MockReviewService) Refuse(ctx context.Context, id string, comment string) (*model.Bill, error) {
	args := m.Called(ctx, id, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bill), args.Error(1)
}
