package model

import "time"

// BillStatus is the review state of a bill. A bill is created pending and
// leaves that state only through an accept or refuse decision.
type BillStatus string

const (
	BillStatusPending  BillStatus = "pending"
	BillStatusAccepted BillStatus = "accepted"
	BillStatusRefused  BillStatus = "refused"
)

// Statuses lists all review states in dashboard display order.
var Statuses = []BillStatus{BillStatusPending, BillStatusAccepted, BillStatusRefused}

// Valid reports whether s is one of the known review states.
func (s BillStatus) Valid() bool {
	switch s {
	case BillStatusPending, BillStatusAccepted, BillStatusRefused:
		return true
	}
	return false
}

// Bill represents an expense report submitted by an employee.
// This is a pure domain model with no database-specific dependencies or tags.
// JSON field names match the wire format the consuming clients expect.
type Bill struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Type         string     `json:"type"`
	Name         string     `json:"name"`
	Date         string     `json:"date"`
	Amount       int        `json:"amount"`
	VAT          string     `json:"vat"`
	Pct          int        `json:"pct"`
	Commentary   string     `json:"commentary"`
	FileURL      string     `json:"fileUrl"`
	FileName     string     `json:"fileName"`
	Status       BillStatus `json:"status"`
	CommentAdmin string     `json:"commentAdmin"`
	CreatedAt    time.Time  `json:"created_at"`
}

// billDateLayout is the calendar format bill dates are stored in.
const billDateLayout = "2006-01-02"

// ParseBillDate parses a bill's date field. Unparseable values map to the
// zero time, which sorts before every real date.
func ParseBillDate(s string) time.Time {
	t, err := time.Parse(billDateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatBillDate renders a bill date for the dashboard cards, e.g. "4 Apr. 04".
// Unparseable values are passed through untouched.
func FormatBillDate(s string) string {
	t, err := time.Parse(billDateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("2 Jan. 06")
}
