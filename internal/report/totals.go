package report

import (
	"github.com/jfarias-dev/carteira/internal/transaction"
)

// CalculateTotals reduces a transaction set into income, expense and net
// figures in major units. Net is recomputed after every accumulation so the
// struct is internally consistent at any inspection point. An empty set
// yields all zeroes.
func CalculateTotals(txs []*transaction.Transaction) Totals {
	var t Totals

	for _, tx := range txs {
		v := tx.MajorValue()

		switch tx.Type {
		case transaction.TypeIncome:
			t.Income += v
		case transaction.TypeExpense:
			t.Expense += v
		}

		t.Net = t.Income - t.Expense
	}

	return t
}
