package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jfarias-dev/carteira/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=report
type Source interface {
	// ListRange returns every transaction of the owner inside the inclusive
	// bounds; nil bounds are open.
	ListRange(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*transaction.Transaction, error)
}

type Service struct {
	src     Source
	resolve Resolver
}

func NewService(src Source, resolve Resolver) *Service {
	return &Service{src: src, resolve: resolve}
}

// Overview is everything the dashboard screen renders for one year
// selection.
type Overview struct {
	Totals           Totals
	Monthly          []MonthBucket
	Categories       []CategorySlice
	TransactionCount int
}

// Overview fetches the owner's ledger for the selected year (0 selects the
// full ledger with a trailing six-month series) and reduces it. Totals are
// computed over the whole fetched set, never over a page.
func (s *Service) Overview(ctx context.Context, ownerID uuid.UUID, year int, now time.Time) (Overview, error) {
	var from, to *time.Time

	if year != 0 {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(1, 0, 0).Add(-time.Second)
		from, to = &start, &end
	}

	txs, err := s.src.ListRange(ctx, ownerID, from, to)
	if err != nil {
		return Overview{}, fmt.Errorf("fetching transactions: %w", err)
	}

	return Overview{
		Totals:           CalculateTotals(txs),
		Monthly:          MonthlySeries(txs, year, now),
		Categories:       CategoryBreakdown(txs, s.resolve),
		TransactionCount: len(txs),
	}, nil
}

// Window is an inclusive timestamp range.
type Window struct {
	Start time.Time
	End   time.Time
}

// ComparisonWindows pairs the current window with the previous one it is
// measured against, plus the label rendered on the cards.
type ComparisonWindows struct {
	Current  Window
	Previous Window
	Label    string
}

// MonthComparison compares the month containing now against the month
// before it.
func MonthComparison(now time.Time) ComparisonWindows {
	curStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	curEnd := curStart.AddDate(0, 1, 0).Add(-time.Second)

	prevStart := curStart.AddDate(0, -1, 0)
	prevEnd := curStart.Add(-time.Second)

	return ComparisonWindows{
		Current:  Window{Start: curStart, End: curEnd},
		Previous: Window{Start: prevStart, End: prevEnd},
		Label:    "vs mês anterior",
	}
}

// YearComparison compares a calendar year against the year before it.
func YearComparison(year int) ComparisonWindows {
	curStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	curEnd := curStart.AddDate(1, 0, 0).Add(-time.Second)

	prevStart := curStart.AddDate(-1, 0, 0)
	prevEnd := curStart.Add(-time.Second)

	return ComparisonWindows{
		Current:  Window{Start: curStart, End: curEnd},
		Previous: Window{Start: prevStart, End: prevEnd},
		Label:    fmt.Sprintf("vs %d", year-1),
	}
}

// Insights fetches the two windows independently and derives the comparison
// cards. Both windows empty yields an empty list, not an error.
func (s *Service) Insights(ctx context.Context, ownerID uuid.UUID, w ComparisonWindows) ([]Insight, error) {
	current, err := s.src.ListRange(ctx, ownerID, &w.Current.Start, &w.Current.End)
	if err != nil {
		return nil, fmt.Errorf("fetching current window: %w", err)
	}

	previous, err := s.src.ListRange(ctx, ownerID, &w.Previous.Start, &w.Previous.End)
	if err != nil {
		return nil, fmt.Errorf("fetching previous window: %w", err)
	}

	insights := ComparePeriods(current, previous, s.resolve)

	if w.Label != "" && w.Label != defaultComparisonLabel {
		for i := range insights {
			insights[i].ComparisonLabel = w.Label
			insights[i].Description = strings.ReplaceAll(
				insights[i].Description, defaultComparisonLabel, w.Label)
		}
	}

	return insights, nil
}
