// Package report turns a user's transaction history into the aggregates the
// dashboard renders: running totals, monthly series, category breakdowns and
// period-comparison insights. All reducers are pure and single-pass; they
// never fail on empty input.
package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Resolver maps a category id to its display name. Implementations must
// return a fallback label for unknown ids rather than failing.
type Resolver interface {
	Resolve(id int64) string
}

// Totals is the income/expense/net summary of a transaction set, in major
// currency units. Net is kept consistent with income-expense at every
// accumulation step.
type Totals struct {
	Income  float64
	Expense float64
	Net     float64
}

// MonthBucket is one calendar month of the dashboard line chart.
type MonthBucket struct {
	Label   string
	Year    int
	Month   int // 1-12
	Income  float64
	Expense float64
}

// CategorySlice is one ranked entry of the expense-by-category chart.
type CategorySlice struct {
	CategoryID int64
	Name       string
	Value      float64
	Color      string
}

// ptBR renders currency and percentage figures with Brazilian number
// formatting, matching the app's locale.
var ptBR = message.NewPrinter(language.BrazilianPortuguese)

func formatCurrency(v float64) string {
	return ptBR.Sprintf("R$ %.2f", v)
}
