package postgres

import (
	"context"
	"database/sql"

	"billapi/internal/model"
	"billapi/internal/repository"
)

// BillPostgres is a PostgreSQL implementation of repository.BillRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type BillPostgres struct {
	db *sql.DB
}

// NewBillPostgres creates a new BillPostgres repository.
func NewBillPostgres(db *sql.DB) *BillPostgres {
	return &BillPostgres{db: db}
}

var _ repository.BillRepository = (*BillPostgres)(nil)

const billColumns = `id, email, type, name, date, amount, vat, pct, commentary, file_url, file_name, status, comment_admin, created_at`

func scanBill(row interface{ Scan(dest ...any) error }) (*model.Bill, error) {
	var b model.Bill
	if err := row.Scan(
		&b.ID,
		&b.Email,
		&b.Type,
		&b.Name,
		&b.Date,
		&b.Amount,
		&b.VAT,
		&b.Pct,
		&b.Commentary,
		&b.FileURL,
		&b.FileName,
		&b.Status,
		&b.CommentAdmin,
		&b.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new bill row and returns the stored record.
func (r *BillPostgres) Create(ctx context.Context, bill *model.Bill) (*model.Bill, error) {
	const q = `
		INSERT INTO bills (id, email, type, name, date, amount, vat, pct, commentary, file_url, file_name, status, comment_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + billColumns
	row := r.db.QueryRowContext(ctx, q,
		bill.ID,
		bill.Email,
		bill.Type,
		bill.Name,
		bill.Date,
		bill.Amount,
		bill.VAT,
		bill.Pct,
		bill.Commentary,
		bill.FileURL,
		bill.FileName,
		bill.Status,
		bill.CommentAdmin,
		bill.CreatedAt,
	)
	return scanBill(row)
}

// FindByID fetches a single bill by its ID.
func (r *BillPostgres) FindByID(ctx context.Context, id string) (*model.Bill, error) {
	const q = `SELECT ` + billColumns + ` FROM bills WHERE id = $1`
	return scanBill(r.db.QueryRowContext(ctx, q, id))
}

// FindByEmail returns every bill submitted by the given employee.
func (r *BillPostgres) FindByEmail(ctx context.Context, email string) ([]model.Bill, error) {
	const q = `SELECT ` + billColumns + ` FROM bills WHERE email = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, email)
	if err != nil {
		return nil, err
	}
	return collectBills(rows)
}

// List returns all bills across every submitter.
func (r *BillPostgres) List(ctx context.Context) ([]model.Bill, error) {
	const q = `SELECT ` + billColumns + ` FROM bills ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectBills(rows)
}

// ListPage returns bills using LIMIT/OFFSET pagination and a total count.
func (r *BillPostgres) ListPage(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Bill], error) {
	const qCount = `SELECT COUNT(*) FROM bills`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `SELECT ` + billColumns + ` FROM bills ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	items, err := collectBills(rows)
	if err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Bill]{
		Items: items,
		Total: total,
	}, nil
}

// Update overwrites the full bill record and returns the stored row.
func (r *BillPostgres) Update(ctx context.Context, bill *model.Bill) (*model.Bill, error) {
	const q = `
		UPDATE bills
		SET email = $2, type = $3, name = $4, date = $5, amount = $6, vat = $7, pct = $8,
		    commentary = $9, file_url = $10, file_name = $11, status = $12, comment_admin = $13
		WHERE id = $1
		RETURNING ` + billColumns
	row := r.db.QueryRowContext(ctx, q,
		bill.ID,
		bill.Email,
		bill.Type,
		bill.Name,
		bill.Date,
		bill.Amount,
		bill.VAT,
		bill.Pct,
		bill.Commentary,
		bill.FileURL,
		bill.FileName,
		bill.Status,
		bill.CommentAdmin,
	)
	return scanBill(row)
}

func collectBills(rows *sql.Rows) ([]model.Bill, error) {
	defer rows.Close()

	items := make([]model.Bill, 0)
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
