package report

import (
	"math"
	"sort"

	"github.com/jfarias-dev/carteira/internal/transaction"
)

// chartPalette is the fixed color set of the category chart, assigned by
// rank index after sorting.
var chartPalette = [...]string{
	"#ED4A4C", "#00875F", "#5A86F7", "#F75A68", "#00B37E", "#284DAA",
}

// maxSlices caps the breakdown at the largest spending categories.
const maxSlices = 6

// CategoryBreakdown ranks expense categories by summed value. Income rows are
// ignored; category ids without a reference entry resolve to the fallback
// label instead of being dropped. The result is sorted descending by value
// (name breaks ties for determinism), truncated to the top six, and colored
// by rank. Zero expense transactions yield an empty result.
func CategoryBreakdown(txs []*transaction.Transaction, resolve Resolver) []CategorySlice {
	totals := make(map[int64]float64)

	for _, tx := range txs {
		if tx.Type != transaction.TypeExpense {
			continue
		}

		totals[tx.CategoryID] += tx.MajorValue()
	}

	if len(totals) == 0 {
		return nil
	}

	slices := make([]CategorySlice, 0, len(totals))
	for id, v := range totals {
		slices = append(slices, CategorySlice{
			CategoryID: id,
			Name:       resolve.Resolve(id),
			Value:      round2(v),
		})
	}

	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Value != slices[j].Value {
			return slices[i].Value > slices[j].Value
		}

		return slices[i].Name < slices[j].Name
	})

	if len(slices) > maxSlices {
		slices = slices[:maxSlices]
	}

	for i := range slices {
		slices[i].Color = chartPalette[i%len(chartPalette)]
	}

	return slices
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
