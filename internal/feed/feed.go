// Package feed drives the incremental transaction listing: one filtered,
// paginated window that grows via "load more" and resets on refresh. All
// entry points serialize through a mutex so the accumulated list and the
// ledger totals have a single writer.
package feed

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/jfarias-dev/carteira/internal/report"
	"github.com/jfarias-dev/carteira/internal/transaction"
)

// ErrStale marks a fetch whose response arrived after a newer refresh took
// over. The response is discarded and no state changes.
var ErrStale = errors.New("fetch superseded by a newer request")

type Feed struct {
	svc *transaction.Service

	mu          sync.Mutex
	gen         uint64
	ownerID     uuid.UUID
	filter      transaction.Filter
	items       []*transaction.Transaction
	total       int
	hasMore     bool
	loadingMore bool
	totals      report.Totals
}

func New(svc *transaction.Service) *Feed {
	return &Feed{svc: svc}
}

// Refresh replaces the accumulated list with page zero of the given filter
// and recomputes the ledger totals over the complete unfiltered set of the
// owner. Totals deliberately ignore the filter. On error the prior state is
// left untouched.
//
// Each refresh bumps a generation counter; a response that loses the race
// against a newer refresh is discarded and reported as ErrStale.
func (f *Feed) Refresh(ctx context.Context, ownerID uuid.UUID, filter transaction.Filter) error {
	filter.Page = 0

	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.mu.Unlock()

	page, err := f.svc.List(ctx, ownerID, filter)
	if err != nil {
		return err
	}

	all, err := f.svc.ListRange(ctx, ownerID, nil, nil)
	if err != nil {
		return err
	}

	totals := report.CalculateTotals(all)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen {
		return ErrStale
	}

	f.ownerID = ownerID
	f.filter = filter
	f.items = page.Items
	f.total = page.Total
	f.hasMore = len(page.Items) < page.Total
	f.totals = totals

	return nil
}

// LoadMore fetches the next page and merges it into the accumulated list,
// deduplicating by id so overlapping pages caused by concurrent mutation
// never double an entry. The call is refused (false, nil) while another
// LoadMore is outstanding or when no further pages exist.
func (f *Feed) LoadMore(ctx context.Context) (bool, error) {
	f.mu.Lock()

	if f.loadingMore || !f.hasMore {
		f.mu.Unlock()
		return false, nil
	}

	f.loadingMore = true
	gen := f.gen
	ownerID := f.ownerID
	next := f.filter.NextPage()

	f.mu.Unlock()

	page, err := f.svc.List(ctx, ownerID, next)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.loadingMore = false

	if err != nil {
		return false, err
	}

	if gen != f.gen {
		return false, ErrStale
	}

	seen := make(map[int64]struct{}, len(f.items))
	for _, tx := range f.items {
		seen[tx.ID] = struct{}{}
	}

	for _, tx := range page.Items {
		if _, dup := seen[tx.ID]; dup {
			continue
		}

		seen[tx.ID] = struct{}{}

		f.items = append(f.items, tx)
	}

	f.filter = next
	f.total = page.Total
	f.hasMore = len(f.items) < page.Total

	return true, nil
}

// Items returns a copy of the accumulated list.
func (f *Feed) Items() []*transaction.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := make([]*transaction.Transaction, len(f.items))
	copy(items, f.items)

	return items
}

// Totals returns the last computed unfiltered ledger totals.
func (f *Feed) Totals() report.Totals {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.totals
}

// HasMore reports whether further pages exist beyond the accumulated list.
func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.hasMore
}

// Total returns the exact size of the full matching set as of the last
// fetch.
func (f *Feed) Total() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.total
}
