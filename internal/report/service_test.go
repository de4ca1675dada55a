package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jfarias-dev/carteira/internal/category"
	"github.com/jfarias-dev/carteira/internal/report"
	"github.com/jfarias-dev/carteira/internal/transaction"
)

func TestService_Overview_SelectedYear(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	now := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	src := report.NewMockSource(ctrl)
	src.EXPECT().
		ListRange(gomock.Any(), ownerID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, from, to *time.Time) ([]*transaction.Transaction, error) {
			require.NotNil(t, from)
			require.NotNil(t, to)
			assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), *from)
			assert.Equal(t, time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC), *to)

			return []*transaction.Transaction{
				txAt(100000, transaction.TypeIncome, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)),
				txAt(40000, transaction.TypeExpense, time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)),
			}, nil
		})

	svc := report.NewService(src, mapResolver{})

	got, err := svc.Overview(context.Background(), ownerID, 2024, now)
	require.NoError(t, err)

	assert.Equal(t, 2, got.TransactionCount)
	assert.InDelta(t, 1000.0, got.Totals.Income, 0.001)
	assert.InDelta(t, 600.0, got.Totals.Net, 0.001)
	assert.Len(t, got.Monthly, 12)
	assert.Len(t, got.Categories, 1)
}

func TestService_Overview_AllTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	now := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	src := report.NewMockSource(ctrl)
	src.EXPECT().
		ListRange(gomock.Any(), ownerID, nil, nil).
		Return(nil, nil)

	svc := report.NewService(src, mapResolver{})

	got, err := svc.Overview(context.Background(), ownerID, 0, now)
	require.NoError(t, err)

	assert.Zero(t, got.TransactionCount)
	assert.Len(t, got.Monthly, 6)
	assert.Empty(t, got.Categories)
}

func TestService_Overview_ResolvesNamesWithColdCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	catRepo := category.NewMockRepository(ctrl)
	catRepo.EXPECT().
		ListCategories(gomock.Any()).
		Return([]transaction.Category{{ID: 1, Name: "Alimentação"}}, nil)

	src := report.NewMockSource(ctrl)
	src.EXPECT().
		ListRange(gomock.Any(), gomock.Any(), nil, nil).
		Return([]*transaction.Transaction{
			{Value: 10000, Type: transaction.TypeExpense, CategoryID: 1},
		}, nil)

	// wired exactly as the binary does: the category service is the
	// resolver and nothing has listed categories yet
	svc := report.NewService(src, category.NewService(catRepo))

	got, err := svc.Overview(context.Background(), uuid.New(), 0, time.Now())
	require.NoError(t, err)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, "Alimentação", got.Categories[0].Name)
}

func TestService_Overview_SourceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := report.NewMockSource(ctrl)
	src.EXPECT().
		ListRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))

	svc := report.NewService(src, mapResolver{})

	_, err := svc.Overview(context.Background(), uuid.New(), 0, time.Now())
	assert.Error(t, err)
}

func TestMonthComparison(t *testing.T) {
	now := time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

	w := report.MonthComparison(now)

	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), w.Current.Start)
	assert.Equal(t, time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC), w.Current.End)
	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), w.Previous.Start)
	assert.Equal(t, time.Date(2025, time.February, 28, 23, 59, 59, 0, time.UTC), w.Previous.End)
	assert.Equal(t, "vs mês anterior", w.Label)
}

func TestMonthComparison_JanuaryWrapsYear(t *testing.T) {
	now := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)

	w := report.MonthComparison(now)

	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), w.Previous.Start)
	assert.Equal(t, time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC), w.Previous.End)
}

func TestYearComparison(t *testing.T) {
	w := report.YearComparison(2024)

	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), w.Current.Start)
	assert.Equal(t, time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC), w.Current.End)
	assert.Equal(t, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), w.Previous.Start)
	assert.Equal(t, time.Date(2023, time.December, 31, 23, 59, 59, 0, time.UTC), w.Previous.End)
	assert.Equal(t, "vs 2023", w.Label)
}

func TestService_Insights_RewritesLabel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	w := report.MonthComparison(time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC))

	src := report.NewMockSource(ctrl)
	src.EXPECT().
		ListRange(gomock.Any(), ownerID, &w.Current.Start, &w.Current.End).
		Return([]*transaction.Transaction{tx(150000, transaction.TypeIncome, 1)}, nil)
	src.EXPECT().
		ListRange(gomock.Any(), ownerID, &w.Previous.Start, &w.Previous.End).
		Return([]*transaction.Transaction{tx(100000, transaction.TypeIncome, 1)}, nil)

	svc := report.NewService(src, mapResolver{})

	got, err := svc.Insights(context.Background(), ownerID, w)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "vs mês anterior", got[0].ComparisonLabel)
	assert.Contains(t, got[0].Description, "vs mês anterior")
	assert.NotContains(t, got[0].Description, "vs período anterior")
}

func TestService_Insights_CurrentWindowError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	w := report.YearComparison(2024)

	src := report.NewMockSource(ctrl)
	src.EXPECT().
		ListRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("timeout"))

	svc := report.NewService(src, mapResolver{})

	got, err := svc.Insights(context.Background(), uuid.New(), w)
	assert.Error(t, err)
	assert.Nil(t, got)
}
