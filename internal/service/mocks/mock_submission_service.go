package mocks

import (
	"context"
	"io"

	"billapi/internal/model"
	"billapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) AttachReceipt(ctx context.Context, email string, r io.Reader, fileName string, contentType string, size int64) (*service.Attachment, error) {
	args := m.Called(ctx, email, r, fileName, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Attachment), args.Error(1)
}

func (m *MockSubmissionService) Submit(ctx context.Context, key string, email string, form service.SubmissionForm) (*model.Bill, error) {
	args := m.Called(ctx, key, email, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bill), args.Error(1)
}

func (m *MockSubmissionService) ListByEmail(ctx context.Context, email string, direction model.SortDirection) ([]model.Bill, error) {
	args := m.Called(ctx, email, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bill), args.Error(1)
}

func (m *MockSubmissionService) ListPage(ctx context.Context, limit, offset int) (*service.BillListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BillListResult), args.Error(1)
}
