package report

import (
	"time"

	"github.com/jfarias-dev/carteira/internal/transaction"
)

// rollingMonths is the window size of the trailing series shown when no
// specific year is selected.
const rollingMonths = 6

// pt-BR short month names, as the mobile client displayed them.
var shortMonthNames = [12]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// MonthlySeries buckets transactions into calendar months. With year == 0 it
// builds the trailing six months ending at now's month, most recent last;
// otherwise it builds January through December of the given year. Months
// without transactions yield zero-valued buckets. Bucket membership is by
// calendar month of CreatedAt, never by rolling 30-day windows.
func MonthlySeries(txs []*transaction.Transaction, year int, now time.Time) []MonthBucket {
	var (
		first time.Time
		n     int
	)

	if year == 0 {
		n = rollingMonths
		first = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, -(n - 1), 0)
	} else {
		n = 12
		first = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	buckets := make([]MonthBucket, n)
	for i := range buckets {
		m := first.AddDate(0, i, 0)
		buckets[i] = MonthBucket{
			Label: shortMonthNames[m.Month()-1],
			Year:  m.Year(),
			Month: int(m.Month()),
		}
	}

	for _, tx := range txs {
		idx := monthsSince(first, tx.CreatedAt)
		if idx < 0 || idx >= n {
			continue
		}

		v := tx.MajorValue()

		switch tx.Type {
		case transaction.TypeIncome:
			buckets[idx].Income += v
		case transaction.TypeExpense:
			buckets[idx].Expense += v
		}
	}

	return buckets
}

func monthsSince(first, t time.Time) int {
	return (t.Year()-first.Year())*12 + int(t.Month()) - int(first.Month())
}
