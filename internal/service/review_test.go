package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"billapi/internal/model"
	repoMocks "billapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReviewService_ListAll(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockBillRepository)
		svc := NewReviewService(mRepo, nil, false)

		mRepo.On("List", ctx).Return([]model.Bill{
			{ID: "1", Date: "2001-01-01", Status: model.BillStatusPending},
			{ID: "2", Date: "2002-02-02", Status: model.BillStatusAccepted},
		}, nil)

		bills, err := svc.ListAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, bills, 2)
		mRepo.AssertExpectations(t)
	})

	t.Run("failure propagates to the caller", func(t *testing.T) {
		mRepo := new(repoMocks.MockBillRepository)
		svc := NewReviewService(mRepo, nil, false)

		mRepo.On("List", ctx).Return(nil, errors.New("Erreur 404"))

		bills, err := svc.ListAll(ctx)

		assert.Nil(t, bills)
		assert.EqualError(t, err, "Erreur 404")
	})
}

func TestReviewService_Filter(t *testing.T) {
	bills := []model.Bill{
		{ID: "1", Email: "jane.doe@corp.tld", Status: model.BillStatusPending},
		{ID: "2", Email: "john.roe@corp.tld", Status: model.BillStatusAccepted},
		{ID: "3", Email: "qa@corp.tld", Status: model.BillStatusPending},
		{ID: "4", Email: "manager@corp.tld", Status: model.BillStatusPending},
	}

	t.Run("matches status only when exclusion is off", func(t *testing.T) {
		svc := NewReviewService(nil, []string{"qa@corp.tld"}, false)

		got := svc.Filter(bills, model.BillStatusPending, "manager@corp.tld")

		assert.Len(t, got, 3)
		for _, b := range got {
			assert.Equal(t, model.BillStatusPending, b.Status)
		}
	})

	t.Run("excludes test accounts and self outside test mode", func(t *testing.T) {
		svc := NewReviewService(nil, []string{"qa@corp.tld"}, true)

		got := svc.Filter(bills, model.BillStatusPending, "manager@corp.tld")

		assert.Len(t, got, 1)
		assert.Equal(t, "1", got[0].ID)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		svc := NewReviewService(nil, nil, true)

		assert.Empty(t, svc.Filter(nil, model.BillStatusPending, "manager@corp.tld"))
		assert.Empty(t, svc.Filter([]model.Bill{}, model.BillStatusPending, "manager@corp.tld"))
	})
}

func TestReviewService_Decisions(t *testing.T) {
	ctx := context.Background()

	pendingBill := func() *model.Bill {
		return &model.Bill{
			ID:     "bill-1",
			Email:  "jane.doe@corp.tld",
			Status: model.BillStatusPending,
			Amount: 100,
		}
	}

	t.Run("accept persists status and admin comment", func(t *testing.T) {
		mRepo := new(repoMocks.MockBillRepository)
		svc := NewReviewService(mRepo, nil, false)

		mRepo.On("FindByID", ctx, "bill-1").Return(pendingBill(), nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(b *model.Bill) bool {
			return b.ID == "bill-1" &&
				b.Status == model.BillStatusAccepted &&
				b.CommentAdmin == "ok" &&
				b.Amount == 100
		})).Return(func(ctx context.Context, b *model.Bill) *model.Bill { return b }, nil)

		bill, err := svc.Accept(ctx, "bill-1", "ok")

		assert.NoError(t, err)
		assert.Equal(t, model.BillStatusAccepted, bill.Status)
		assert.Equal(t, "ok", bill.CommentAdmin)
		mRepo.AssertExpectations(t)
	})

	t.Run("refuse persists status and admin comment", func(t *testing.T) {
		mRepo := new(repoMocks.MockBillRepository)
		svc := NewReviewService(mRepo, nil, false)

		mRepo.On("FindByID", ctx, "bill-1").Return(pendingBill(), nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(b *model.Bill) bool {
			return b.Status == model.BillStatusRefused && b.CommentAdmin == "missing receipt"
		})).Return(func(ctx context.Context, b *model.Bill) *model.Bill { return b }, nil)

		bill, err := svc.Refuse(ctx, "bill-1", "missing receipt")

		assert.NoError(t, err)
		assert.Equal(t, model.BillStatusRefused, bill.Status)
	})

	t.Run("decision does not mutate the loaded record on update failure", func(t *testing.T) {
		mRepo := new(repoMocks.MockBillRepository)
		svc := NewReviewService(mRepo, nil, false)

		loaded := pendingBill()
		mRepo.On("FindByID", ctx, "bill-1").Return(loaded, nil)
		mRepo.On("Update", ctx, mock.Anything).Return(nil, errors.New("db fail"))

		_, err := svc.Accept(ctx, "bill-1", "ok")

		assert.Error(t, err)
		assert.Equal(t, model.BillStatusPending, loaded.Status)
	})

	t.Run("already accepted bill cannot be decided again", func(t *testing.T) {
		mRepo := new(repoMocks.MockBillRepository)
		svc := NewReviewService(mRepo, nil, false)

		accepted := pendingBill()
		accepted.Status = model.BillStatusAccepted
		mRepo.On("FindByID", ctx, "bill-1").Return(accepted, nil)

		_, err := svc.Refuse(ctx, "bill-1", "too late")

		assert.ErrorIs(t, err, ErrBadTransition)
	})

	t.Run("unknown bill", func(t *testing.T) {
		mRepo := new(repoMocks.MockBillRepository)
		svc := NewReviewService(mRepo, nil, false)

		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.Accept(ctx, "missing", "ok")

		assert.ErrorIs(t, err, ErrBillNotFound)
	})
}
