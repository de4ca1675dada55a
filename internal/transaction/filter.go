package transaction

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultPage    = 0
	DefaultPerPage = 10
)

// SortDirection orders a listing by id. When unset, listings fall back to
// created_at descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

var ErrInvalidFilter = errors.New("invalid filter")

// Filter holds the query parameters of a transaction listing. Predicates are
// applied by the store in a fixed order: search text, type, category set,
// date-from, date-to, sort. Build one with NewFilter so defaults and bounds
// are validated up front.
type Filter struct {
	Page        int
	PerPage     int
	From        *time.Time
	To          *time.Time
	Type        *Type
	CategoryIDs []int64
	SearchText  string
	OrderID     *SortDirection
}

// FilterParams is the unvalidated input for NewFilter. Zero values mean
// "not set"; Page/PerPage fall back to defaults.
type FilterParams struct {
	Page        *int
	PerPage     *int
	From        *time.Time
	To          *time.Time
	Type        *Type
	CategoryIDs []int64
	SearchText  string
	OrderID     *SortDirection
}

func NewFilter(p FilterParams) (Filter, error) {
	f := Filter{
		Page:        DefaultPage,
		PerPage:     DefaultPerPage,
		From:        p.From,
		To:          p.To,
		Type:        p.Type,
		CategoryIDs: p.CategoryIDs,
		SearchText:  p.SearchText,
		OrderID:     p.OrderID,
	}

	if p.Page != nil {
		if *p.Page < 0 {
			return Filter{}, fmt.Errorf("%w: page must not be negative", ErrInvalidFilter)
		}

		f.Page = *p.Page
	}

	if p.PerPage != nil {
		if *p.PerPage < 1 {
			return Filter{}, fmt.Errorf("%w: perPage must be at least 1", ErrInvalidFilter)
		}

		f.PerPage = *p.PerPage
	}

	if p.Type != nil && !p.Type.Valid() {
		return Filter{}, fmt.Errorf("%w: unknown type %d", ErrInvalidFilter, *p.Type)
	}

	if p.OrderID != nil && *p.OrderID != SortAsc && *p.OrderID != SortDesc {
		return Filter{}, fmt.Errorf("%w: order must be asc or desc", ErrInvalidFilter)
	}

	if p.From != nil && p.To != nil && p.To.Before(*p.From) {
		return Filter{}, fmt.Errorf("%w: date range is inverted", ErrInvalidFilter)
	}

	return f, nil
}

// Offset returns the row offset implied by the page settings.
func (f Filter) Offset() int {
	return f.Page * f.PerPage
}

// NextPage returns a copy of the filter advanced to the following page.
func (f Filter) NextPage() Filter {
	f.Page++
	return f
}
