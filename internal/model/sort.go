package model

import (
	"errors"
	"sort"
)

// SortDirection selects the ordering of SortByDate.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ErrInvalidDirection is returned when a sort direction is neither "asc" nor "desc".
var ErrInvalidDirection = errors.New(`invalid direction: provide "asc" or "desc"`)

// SortByDate orders bills by their parsed calendar date, earliest first for
// SortAsc and latest first for SortDesc. The slice is sorted in place and
// returned; callers sharing the slice observe the reordering. Relative order
// of equal dates is unspecified.
func SortByDate(direction SortDirection, bills []Bill) ([]Bill, error) {
	switch direction {
	case SortAsc, SortDesc:
	default:
		return nil, ErrInvalidDirection
	}

	sort.Slice(bills, func(i, j int) bool {
		a, b := ParseBillDate(bills[i].Date), ParseBillDate(bills[j].Date)
		if direction == SortAsc {
			return a.Before(b)
		}
		return b.Before(a)
	})
	return bills, nil
}
