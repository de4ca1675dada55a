package report

import (
	"math"
	"sort"

	"github.com/jfarias-dev/carteira/internal/transaction"
)

// InsightKind classifies an insight card. It is a closed set; rendering
// tables switch over it exhaustively.
type InsightKind int

const (
	InsightSuccess InsightKind = iota
	InsightWarning
	InsightDanger
	InsightInfo
)

func (k InsightKind) String() string {
	switch k {
	case InsightSuccess:
		return "success"
	case InsightWarning:
		return "warning"
	case InsightDanger:
		return "danger"
	case InsightInfo:
		return "info"
	}

	return "unknown"
}

// Insight is one card of the period-comparison panel. Percentage and Delta
// are absolute magnitudes; Kind carries the direction and severity.
type Insight struct {
	Kind            InsightKind
	Title           string
	Description     string
	Icon            string
	CategoryName    string
	Delta           float64
	Percentage      float64
	ComparisonLabel string
}

const (
	// totalsPctThreshold gates income/expense insights; smaller movements
	// are noise.
	totalsPctThreshold = 20
	// categoryPctThreshold gates per-category expense insights.
	categoryPctThreshold = 30
	// maxCategoryInsights keeps only the strongest category movers.
	maxCategoryInsights = 2
	// maxInsights caps the combined card list.
	maxInsights = 4

	defaultComparisonLabel = "vs período anterior"
)

// ComparePeriods derives insight cards from two disjoint time windows of the
// owner's ledger. Totals-level cards come first, then the top category
// movers; the combined list is truncated to four in that encounter order,
// not re-ranked by magnitude. Baselines of zero never emit a card, and two
// empty windows produce an empty list.
func ComparePeriods(current, previous []*transaction.Transaction, resolve Resolver) []Insight {
	cur := newWindowStats(current)
	prev := newWindowStats(previous)

	var insights []Insight

	if in, ok := incomeInsight(cur.totals, prev.totals); ok {
		insights = append(insights, in)
	}

	if in, ok := expenseInsight(cur.totals, prev.totals); ok {
		insights = append(insights, in)
	}

	insights = append(insights, categoryInsights(cur, prev, resolve)...)

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}

	return insights
}

type windowStats struct {
	totals       Totals
	expenseByCat map[int64]float64
}

func newWindowStats(txs []*transaction.Transaction) windowStats {
	s := windowStats{
		totals:       CalculateTotals(txs),
		expenseByCat: make(map[int64]float64),
	}

	for _, tx := range txs {
		if tx.Type == transaction.TypeExpense {
			s.expenseByCat[tx.CategoryID] += tx.MajorValue()
		}
	}

	return s
}

// percentChange returns the signed percentage move from prev to cur. The
// caller must have ruled out a zero baseline.
func percentChange(cur, prev float64) float64 {
	return (cur - prev) / prev * 100
}

func incomeInsight(cur, prev Totals) (Insight, bool) {
	if prev.Income <= 0 {
		return Insight{}, false
	}

	pct := percentChange(cur.Income, prev.Income)
	if math.Abs(pct) < totalsPctThreshold {
		return Insight{}, false
	}

	delta := math.Abs(cur.Income - prev.Income)

	if pct > 0 {
		return Insight{
			Kind:            InsightSuccess,
			Title:           "Receitas em alta",
			Description:     ptBR.Sprintf("Suas receitas aumentaram %s %s", formatCurrency(delta), defaultComparisonLabel),
			Icon:            "trending-up",
			Delta:           delta,
			Percentage:      math.Abs(pct),
			ComparisonLabel: defaultComparisonLabel,
		}, true
	}

	return Insight{
		Kind:            InsightWarning,
		Title:           "Receitas em queda",
		Description:     ptBR.Sprintf("Suas receitas caíram %s %s", formatCurrency(delta), defaultComparisonLabel),
		Icon:            "trending-down",
		Delta:           delta,
		Percentage:      math.Abs(pct),
		ComparisonLabel: defaultComparisonLabel,
	}, true
}

// expenseInsight has inverted polarity relative to income: spending less is
// the success case, spending more is flagged as danger.
func expenseInsight(cur, prev Totals) (Insight, bool) {
	if prev.Expense <= 0 {
		return Insight{}, false
	}

	pct := percentChange(cur.Expense, prev.Expense)
	if math.Abs(pct) < totalsPctThreshold {
		return Insight{}, false
	}

	delta := math.Abs(cur.Expense - prev.Expense)

	if pct < 0 {
		return Insight{
			Kind:            InsightSuccess,
			Title:           "Você economizou",
			Description:     ptBR.Sprintf("Seus gastos caíram %s %s", formatCurrency(delta), defaultComparisonLabel),
			Icon:            "savings",
			Delta:           delta,
			Percentage:      math.Abs(pct),
			ComparisonLabel: defaultComparisonLabel,
		}, true
	}

	return Insight{
		Kind:            InsightDanger,
		Title:           "Gastos em alta",
		Description:     ptBR.Sprintf("Seus gastos aumentaram %s %s", formatCurrency(delta), defaultComparisonLabel),
		Icon:            "trending-up",
		Delta:           delta,
		Percentage:      math.Abs(pct),
		ComparisonLabel: defaultComparisonLabel,
	}, true
}

type categoryCandidate struct {
	categoryID int64
	delta      float64
	pct        float64
}

// categoryInsights surfaces only expense movements; income-by-category
// changes are deliberately not reported.
func categoryInsights(cur, prev windowStats, resolve Resolver) []Insight {
	ids := make(map[int64]struct{}, len(cur.expenseByCat)+len(prev.expenseByCat))
	for id := range cur.expenseByCat {
		ids[id] = struct{}{}
	}

	for id := range prev.expenseByCat {
		ids[id] = struct{}{}
	}

	var candidates []categoryCandidate

	for id := range ids {
		prevVal := prev.expenseByCat[id]
		if prevVal <= 0 {
			continue
		}

		pct := percentChange(cur.expenseByCat[id], prevVal)
		if math.Abs(pct) < categoryPctThreshold {
			continue
		}

		candidates = append(candidates, categoryCandidate{
			categoryID: id,
			delta:      cur.expenseByCat[id] - prevVal,
			pct:        pct,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if math.Abs(candidates[i].pct) != math.Abs(candidates[j].pct) {
			return math.Abs(candidates[i].pct) > math.Abs(candidates[j].pct)
		}

		return candidates[i].categoryID < candidates[j].categoryID
	})

	if len(candidates) > maxCategoryInsights {
		candidates = candidates[:maxCategoryInsights]
	}

	insights := make([]Insight, 0, len(candidates))

	for _, c := range candidates {
		name := resolve.Resolve(c.categoryID)
		delta := math.Abs(c.delta)

		if c.pct < 0 {
			insights = append(insights, Insight{
				Kind:            InsightSuccess,
				Title:           "Economia na categoria",
				Description:     ptBR.Sprintf("Você gastou %s a menos em %s %s", formatCurrency(delta), name, defaultComparisonLabel),
				Icon:            "savings",
				CategoryName:    name,
				Delta:           delta,
				Percentage:      math.Abs(c.pct),
				ComparisonLabel: defaultComparisonLabel,
			})

			continue
		}

		insights = append(insights, Insight{
			Kind:            InsightWarning,
			Title:           "Atenção aos gastos",
			Description:     ptBR.Sprintf("Você gastou %s a mais em %s %s", formatCurrency(delta), name, defaultComparisonLabel),
			Icon:            "warning",
			CategoryName:    name,
			Delta:           delta,
			Percentage:      math.Abs(c.pct),
			ComparisonLabel: defaultComparisonLabel,
		})
	}

	return insights
}
