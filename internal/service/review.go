package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"billapi/internal/model"
	"billapi/internal/repository"
)

// ErrBadTransition is returned when a decision targets a bill that already
// left the pending state. Accept and refuse are the only transitions out of
// pending; there is no re-opening.
var ErrBadTransition = errors.New("only pending bills can be accepted or refused")

// ReviewService defines the manager-facing review use cases.
type ReviewService interface {
	// ListAll returns every submitted bill. Failures are propagated to the
	// caller unchanged so it can render the error message.
	ListAll(ctx context.Context) ([]model.Bill, error)

	// Filter returns the bills whose status matches. When internal-account
	// exclusion is on, bills from configured test accounts and from the
	// reviewer's own email are dropped.
	Filter(bills []model.Bill, status model.BillStatus, reviewer string) []model.Bill

	// Accept transitions a pending bill to accepted with the manager's comment.
	Accept(ctx context.Context, id string, comment string) (*model.Bill, error)

	// Refuse transitions a pending bill to refused with the manager's comment.
	Refuse(ctx context.Context, id string, comment string) (*model.Bill, error)
}

// reviewService is a concrete implementation of ReviewService.
type reviewService struct {
	repo            repository.BillRepository
	testAccounts    []string
	excludeInternal bool
}

// NewReviewService constructs a ReviewService. testAccounts are internal
// submitter emails hidden from reviewers; excludeInternal false disables that
// filtering (and self-review exclusion), as a test harness does.
func NewReviewService(repo repository.BillRepository, testAccounts []string, excludeInternal bool) ReviewService {
	return &reviewService{
		repo:            repo,
		testAccounts:    testAccounts,
		excludeInternal: excludeInternal,
	}
}

func (s *reviewService) ListAll(ctx context.Context) ([]model.Bill, error) {
	return s.repo.List(ctx)
}

func (s *reviewService) Filter(bills []model.Bill, status model.BillStatus, reviewer string) []model.Bill {
	out := make([]model.Bill, 0)
	for _, b := range bills {
		if b.Status != status {
			continue
		}
		if s.excludeInternal && (b.Email == reviewer || s.isTestAccount(b.Email)) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (s *reviewService) isTestAccount(email string) bool {
	for _, acc := range s.testAccounts {
		if acc == email {
			return true
		}
	}
	return false
}

func (s *reviewService) Accept(ctx context.Context, id string, comment string) (*model.Bill, error) {
	return s.decide(ctx, id, model.BillStatusAccepted, comment)
}

func (s *reviewService) Refuse(ctx context.Context, id string, comment string) (*model.Bill, error) {
	return s.decide(ctx, id, model.BillStatusRefused, comment)
}

// decide re-submits the full bill record with the new status and the
// manager's comment.
func (s *reviewService) decide(ctx context.Context, id string, status model.BillStatus, comment string) (*model.Bill, error) {
	bill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBillNotFound
		}
		return nil, err
	}
	if bill.Status != model.BillStatusPending {
		return nil, ErrBadTransition
	}

	decided := *bill
	decided.Status = status
	decided.CommentAdmin = comment

	stored, err := s.repo.Update(ctx, &decided)
	if err != nil {
		return nil, fmt.Errorf("persist decision: %w", err)
	}
	return stored, nil
}
