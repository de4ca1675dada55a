package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfarias-dev/carteira/internal/report"
	"github.com/jfarias-dev/carteira/internal/transaction"
)

func TestComparePeriods_IncomeGrowth(t *testing.T) {
	current := []*transaction.Transaction{tx(150000, transaction.TypeIncome, 1)}
	previous := []*transaction.Transaction{tx(100000, transaction.TypeIncome, 1)}

	got := report.ComparePeriods(current, previous, mapResolver{})
	require.Len(t, got, 1)

	in := got[0]
	assert.Equal(t, report.InsightSuccess, in.Kind)
	assert.Equal(t, "Receitas em alta", in.Title)
	assert.Equal(t, "trending-up", in.Icon)
	assert.InDelta(t, 50.0, in.Percentage, 0.001)
	assert.InDelta(t, 500.0, in.Delta, 0.001)
	assert.Equal(t, "vs período anterior", in.ComparisonLabel)
	assert.Contains(t, in.Description, "vs período anterior")
}

func TestComparePeriods_IncomeDrop(t *testing.T) {
	current := []*transaction.Transaction{tx(70000, transaction.TypeIncome, 1)}
	previous := []*transaction.Transaction{tx(100000, transaction.TypeIncome, 1)}

	got := report.ComparePeriods(current, previous, mapResolver{})
	require.Len(t, got, 1)

	assert.Equal(t, report.InsightWarning, got[0].Kind)
	assert.Equal(t, "Receitas em queda", got[0].Title)
	assert.InDelta(t, 30.0, got[0].Percentage, 0.001)
}

func TestComparePeriods_ExpensePolarityInverted(t *testing.T) {
	type testCase struct {
		name      string
		current   int64
		previous  int64
		wantKind  report.InsightKind
		wantTitle string
	}

	tests := []testCase{
		{
			name:      "SpendingLessIsSuccess",
			current:   50000,
			previous:  100000,
			wantKind:  report.InsightSuccess,
			wantTitle: "Você economizou",
		},
		{
			name:      "SpendingMoreIsDanger",
			current:   150000,
			previous:  100000,
			wantKind:  report.InsightDanger,
			wantTitle: "Gastos em alta",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := []*transaction.Transaction{tx(tt.current, transaction.TypeExpense, 1)}
			previous := []*transaction.Transaction{tx(tt.previous, transaction.TypeExpense, 1)}

			got := report.ComparePeriods(current, previous, mapResolver{})

			// the totals card plus the single-category card
			require.NotEmpty(t, got)
			assert.Equal(t, tt.wantKind, got[0].Kind)
			assert.Equal(t, tt.wantTitle, got[0].Title)
		})
	}
}

func TestComparePeriods_BelowThresholdIsSilent(t *testing.T) {
	// 19% income move and 19% expense move, both under the 20% gate
	current := []*transaction.Transaction{
		tx(119000, transaction.TypeIncome, 1),
		tx(119000, transaction.TypeExpense, 2),
	}
	previous := []*transaction.Transaction{
		tx(100000, transaction.TypeIncome, 1),
		tx(100000, transaction.TypeExpense, 2),
	}

	got := report.ComparePeriods(current, previous, mapResolver{})
	assert.Empty(t, got)
}

func TestComparePeriods_ZeroBaselineIsSilent(t *testing.T) {
	current := []*transaction.Transaction{
		tx(500000, transaction.TypeIncome, 1),
		tx(300000, transaction.TypeExpense, 2),
	}

	got := report.ComparePeriods(current, nil, mapResolver{})
	assert.Empty(t, got)
}

func TestComparePeriods_BothEmpty(t *testing.T) {
	got := report.ComparePeriods(nil, nil, mapResolver{})
	assert.Empty(t, got)
}

func TestComparePeriods_CategoryInsights(t *testing.T) {
	resolver := mapResolver{1: "Alimentação", 2: "Transporte", 3: "Lazer"}

	// income held steady so only category cards appear; total expenses also
	// held under the 20% gate.
	current := []*transaction.Transaction{
		tx(100000, transaction.TypeIncome, 9),
		tx(50000, transaction.TypeExpense, 1),  // -50% on Alimentação
		tx(140000, transaction.TypeExpense, 2), // +40% on Transporte
		tx(100000, transaction.TypeExpense, 3), // flat on Lazer
	}
	previous := []*transaction.Transaction{
		tx(100000, transaction.TypeIncome, 9),
		tx(100000, transaction.TypeExpense, 1),
		tx(100000, transaction.TypeExpense, 2),
		tx(100000, transaction.TypeExpense, 3),
	}

	got := report.ComparePeriods(current, previous, resolver)
	require.Len(t, got, 2)

	// strongest mover first
	assert.Equal(t, report.InsightSuccess, got[0].Kind)
	assert.Equal(t, "Economia na categoria", got[0].Title)
	assert.Equal(t, "Alimentação", got[0].CategoryName)
	assert.InDelta(t, 50.0, got[0].Percentage, 0.001)

	assert.Equal(t, report.InsightWarning, got[1].Kind)
	assert.Equal(t, "Atenção aos gastos", got[1].Title)
	assert.Equal(t, "Transporte", got[1].CategoryName)
	assert.InDelta(t, 40.0, got[1].Percentage, 0.001)
}

func TestComparePeriods_CategoryRequiresBaseline(t *testing.T) {
	// a brand new expense category has no baseline to compare against
	current := []*transaction.Transaction{
		tx(500000, transaction.TypeExpense, 7),
		tx(100000, transaction.TypeExpense, 8),
	}
	previous := []*transaction.Transaction{tx(100000, transaction.TypeExpense, 8)}

	got := report.ComparePeriods(current, previous, mapResolver{})

	// only the totals card fires; category 7 is skipped and 8 held flat
	require.Len(t, got, 1)
	assert.Equal(t, "Gastos em alta", got[0].Title)
	assert.Empty(t, got[0].CategoryName)
}

func TestComparePeriods_CapsAtFourInEncounterOrder(t *testing.T) {
	resolver := mapResolver{1: "A", 2: "B", 3: "C"}

	// income +50, expenses +80 overall, three categories over the 30% gate
	current := []*transaction.Transaction{
		tx(150000, transaction.TypeIncome, 9),
		tx(200000, transaction.TypeExpense, 1), // +100%
		tx(190000, transaction.TypeExpense, 2), // +90%
		tx(150000, transaction.TypeExpense, 3), // +50%
	}
	previous := []*transaction.Transaction{
		tx(100000, transaction.TypeIncome, 9),
		tx(100000, transaction.TypeExpense, 1),
		tx(100000, transaction.TypeExpense, 2),
		tx(100000, transaction.TypeExpense, 3),
	}

	got := report.ComparePeriods(current, previous, resolver)
	require.Len(t, got, 4)

	// totals first, then the two strongest category movers; C is cut
	assert.Equal(t, "Receitas em alta", got[0].Title)
	assert.Equal(t, "Gastos em alta", got[1].Title)
	assert.Equal(t, "A", got[2].CategoryName)
	assert.Equal(t, "B", got[3].CategoryName)
}

func TestInsightKind_String(t *testing.T) {
	assert.Equal(t, "success", report.InsightSuccess.String())
	assert.Equal(t, "warning", report.InsightWarning.String())
	assert.Equal(t, "danger", report.InsightDanger.String())
	assert.Equal(t, "info", report.InsightInfo.String())
}
