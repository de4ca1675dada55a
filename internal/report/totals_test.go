package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jfarias-dev/carteira/internal/report"
	"github.com/jfarias-dev/carteira/internal/transaction"
)

func tx(value int64, typ transaction.Type, categoryID int64) *transaction.Transaction {
	return &transaction.Transaction{
		Value:      value,
		Type:       typ,
		CategoryID: categoryID,
	}
}

func TestCalculateTotals(t *testing.T) {
	type testCase struct {
		name string
		txs  []*transaction.Transaction
		want report.Totals
	}

	tests := []testCase{
		{
			name: "Empty",
			txs:  nil,
			want: report.Totals{},
		},
		{
			name: "OnlyIncome",
			txs: []*transaction.Transaction{
				tx(150000, transaction.TypeIncome, 1),
				tx(50000, transaction.TypeIncome, 1),
			},
			want: report.Totals{Income: 2000, Expense: 0, Net: 2000},
		},
		{
			name: "OnlyExpenses",
			txs: []*transaction.Transaction{
				tx(30050, transaction.TypeExpense, 2),
			},
			want: report.Totals{Income: 0, Expense: 300.50, Net: -300.50},
		},
		{
			name: "Mixed",
			txs: []*transaction.Transaction{
				tx(500000, transaction.TypeIncome, 1),
				tx(120000, transaction.TypeExpense, 2),
				tx(8099, transaction.TypeExpense, 3),
			},
			want: report.Totals{Income: 5000, Expense: 1280.99, Net: 3719.01},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := report.CalculateTotals(tt.txs)

			assert.InDelta(t, tt.want.Income, got.Income, 0.001)
			assert.InDelta(t, tt.want.Expense, got.Expense, 0.001)
			assert.InDelta(t, tt.want.Net, got.Net, 0.001)
		})
	}
}

func TestCalculateTotals_NetConsistency(t *testing.T) {
	got := report.CalculateTotals([]*transaction.Transaction{
		tx(100000, transaction.TypeIncome, 1),
		tx(40000, transaction.TypeExpense, 2),
	})

	assert.InDelta(t, got.Income-got.Expense, got.Net, 0.001)
}
