package repository

import (
	"context"

	"billapi/internal/model"
)

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

// BillRepository defines data access for bills using SQL queries only.
// No business logic here — strictly persistence operations.
type BillRepository interface {
	// Create inserts a new bill row.
	// The caller provides required fields (ID, Email, CreatedAt); everything
	// else may still be empty for an attachment shell awaiting its form.
	// Returns the stored bill (may include values set by the DB).
	Create(ctx context.Context, bill *model.Bill) (*model.Bill, error)

	// FindByID returns a bill by its ID.
	FindByID(ctx context.Context, id string) (*model.Bill, error)

	// FindByEmail returns every bill submitted by the given employee,
	// most recently created first.
	FindByEmail(ctx context.Context, email string) ([]model.Bill, error)

	// List returns all bills across every submitter.
	List(ctx context.Context) ([]model.Bill, error)

	// ListPage returns a paginated list of bills and the total row count.
	ListPage(ctx context.Context, pq PageQuery) (*PageResult[model.Bill], error)

	// Update overwrites the full bill record keyed by bill.ID and returns
	// the stored row.
	Update(ctx context.Context, bill *model.Bill) (*model.Bill, error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
