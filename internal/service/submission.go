package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"billapi/internal/model"
	"billapi/internal/repository"
	"billapi/internal/storage"
)

var (
	ErrReaderNil          = errors.New("reader is nil")
	ErrEmailRequired      = errors.New("session email is required")
	ErrAttachmentRequired = errors.New("attachment key is required")
	ErrInvalidAmount      = errors.New("amount must be an integer")
	ErrBillNotFound       = errors.New("bill not found")
)

// authorizedExtensions are the only receipt file types accepted, matched
// case-sensitively against the substring from the file name's last dot.
var authorizedExtensions = []string{".jpeg", ".jpg", ".png", ".gif"}

// defaultPct is the business default applied when the pct field is empty or
// not a number. This is expected behavior, not an error.
const defaultPct = 20

// ExtensionError reports a receipt file whose extension is not authorized.
type ExtensionError struct {
	Ext string
}

func (e *ExtensionError) Error() string {
	return fmt.Sprintf("This file type: %q is not allowed. Authorized extensions: %s",
		e.Ext, strings.Join(authorizedExtensions, ", "))
}

// Attachment is returned by AttachReceipt: the key identifies the pending
// bill shell the receipt was bound to, and FileURL is where the stored
// receipt can be downloaded.
type Attachment struct {
	Key      string `json:"key"`
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
}

// SubmissionForm carries the expense form fields as entered, numbers still
// as text. Amount and pct parsing rules live in Submit.
type SubmissionForm struct {
	Type       string `json:"type" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Date       string `json:"date" validate:"required"`
	Amount     string `json:"amount"`
	VAT        string `json:"vat"`
	Pct        string `json:"pct"`
	Commentary string `json:"commentary"`
}

// FormError wraps a struct-validation failure on the submission form.
type FormError struct {
	err error
}

// NewFormError wraps a validation failure as a FormError.
func NewFormError(err error) *FormError { return &FormError{err: err} }

func (e *FormError) Error() string { return "invalid submission form: " + e.err.Error() }
func (e *FormError) Unwrap() error { return e.err }

// SubmissionService defines the employee-facing bill submission use cases.
type SubmissionService interface {
	// AttachReceipt validates the receipt's extension, streams it to object
	// storage, and creates a pending bill shell carrying the file name and
	// download URL. The returned key identifies the shell for Submit.
	AttachReceipt(ctx context.Context, email string, r io.Reader, fileName string, contentType string, size int64) (*Attachment, error)

	// Submit fills the previously attached shell with the expense form and
	// persists it, still pending review.
	Submit(ctx context.Context, key string, email string, form SubmissionForm) (*model.Bill, error)

	// ListByEmail returns the employee's bills ordered by bill date.
	ListByEmail(ctx context.Context, email string, direction model.SortDirection) ([]model.Bill, error)

	// ListPage returns bills using limit/offset and a total count.
	ListPage(ctx context.Context, limit, offset int) (*BillListResult, error)
}

// BillListResult is the service-level DTO for paginated bills.
type BillListResult struct {
	Items []model.Bill `json:"data"`
	Total int          `json:"total"`
}

// submissionService is a concrete implementation of SubmissionService.
type submissionService struct {
	store      storage.Storage
	repo       repository.BillRepository
	validate   *validator.Validate
	presignTTL time.Duration
}

// NewSubmissionService constructs a new SubmissionService. presignTTL bounds
// the lifetime of receipt download URLs written into bill records.
func NewSubmissionService(store storage.Storage, repo repository.BillRepository, presignTTL time.Duration) SubmissionService {
	return &submissionService{
		store:      store,
		repo:       repo,
		validate:   validator.New(),
		presignTTL: presignTTL,
	}
}

// fileExtension derives the extension as the substring from the last dot of
// the name, keeping its case. No dot yields an empty string, which never
// matches an authorized extension.
func fileExtension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return name[idx:]
}

func extensionAuthorized(ext string) bool {
	for _, allowed := range authorizedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (s *submissionService) AttachReceipt(ctx context.Context, email string, r io.Reader, fileName string, contentType string, size int64) (*Attachment, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if email == "" {
		return nil, ErrEmailRequired
	}

	ext := fileExtension(fileName)
	if !extensionAuthorized(ext) {
		return nil, &ExtensionError{Ext: ext}
	}

	id := uuid.New().String()
	key := "bills/" + id + ext

	_, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": fileName,
			"submitter-email":   email,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	fileURL, err := s.store.PresignGet(ctx, key, s.presignTTL)
	if err != nil {
		return nil, rollbackUpload(ctx, s.store, key, fmt.Errorf("presign receipt url: %w", err))
	}

	// Shell row: the form fields arrive later via Submit. Status is pending
	// from the first persist.
	shell := &model.Bill{
		ID:        id,
		Email:     email,
		Pct:       defaultPct,
		FileURL:   fileURL,
		FileName:  fileName,
		Status:    model.BillStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, shell)
	if err != nil {
		return nil, rollbackUpload(ctx, s.store, key, fmt.Errorf("db save failed: %w", err))
	}

	return &Attachment{
		Key:      stored.ID,
		FileURL:  stored.FileURL,
		FileName: stored.FileName,
	}, nil
}

// rollbackUpload removes an orphaned receipt object after a failed attach.
func rollbackUpload(ctx context.Context, store storage.Storage, key string, cause error) error {
	if delErr := store.Delete(ctx, key); delErr != nil {
		return fmt.Errorf("%v; rollback delete failed: %v", cause, delErr)
	}
	return cause
}

func (s *submissionService) Submit(ctx context.Context, key string, email string, form SubmissionForm) (*model.Bill, error) {
	if key == "" {
		return nil, ErrAttachmentRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if err := s.validate.Struct(form); err != nil {
		return nil, &FormError{err: err}
	}

	amount, err := strconv.Atoi(strings.TrimSpace(form.Amount))
	if err != nil {
		return nil, ErrInvalidAmount
	}
	pct := parsePct(form.Pct)

	bill, err := s.repo.FindByID(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBillNotFound
		}
		return nil, err
	}
	// The shell is bound to the email that uploaded the receipt; another
	// session cannot claim it, and the mismatch is indistinguishable from a
	// missing bill.
	if bill.Email != email {
		return nil, ErrBillNotFound
	}

	bill.Email = email
	bill.Type = form.Type
	bill.Name = form.Name
	bill.Date = form.Date
	bill.Amount = amount
	bill.VAT = form.VAT
	bill.Pct = pct
	bill.Commentary = form.Commentary
	bill.Status = model.BillStatusPending

	stored, err := s.repo.Update(ctx, bill)
	if err != nil {
		return nil, fmt.Errorf("persist bill: %w", err)
	}
	return stored, nil
}

// parsePct falls back to the business default when the field is empty or not
// a number.
func parsePct(raw string) int {
	pct, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return defaultPct
	}
	return pct
}

// ListByEmail returns the employee's own bills sorted by bill date.
func (s *submissionService) ListByEmail(ctx context.Context, email string, direction model.SortDirection) ([]model.Bill, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	bills, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return model.SortByDate(direction, bills)
}

// ListPage returns paginated bills without exposing repository types.
func (s *submissionService) ListPage(ctx context.Context, limit, offset int) (*BillListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.ListPage(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &BillListResult{Items: res.Items, Total: res.Total}, nil
}
