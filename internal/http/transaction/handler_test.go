package transaction_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jfarias-dev/carteira/internal/auth"
	handler "github.com/jfarias-dev/carteira/internal/http/transaction"
	"github.com/jfarias-dev/carteira/internal/transaction"
)

func TestParseFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/?page=2&per_page=25&type_id=2&category_ids=1,3&search=mercado&order=asc", nil)

	f, err := handler.ParseFilter(req)
	require.NoError(t, err)

	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 25, f.PerPage)
	require.NotNil(t, f.Type)
	assert.Equal(t, transaction.TypeExpense, *f.Type)
	assert.Equal(t, []int64{1, 3}, f.CategoryIDs)
	assert.Equal(t, "mercado", f.SearchText)
	require.NotNil(t, f.OrderID)
	assert.Equal(t, transaction.SortAsc, *f.OrderID)
}

func TestParseFilter_RejectsMalformedValues(t *testing.T) {
	type testCase struct {
		name  string
		query string
	}

	tests := []testCase{
		{name: "PageNotANumber", query: "page=abc"},
		{name: "PerPageNotANumber", query: "per_page=ten"},
		{name: "FromNotATimestamp", query: "from=yesterday"},
		{name: "ToNotATimestamp", query: "to=2024-13-99"},
		{name: "TypeNotANumber", query: "type_id=expense"},
		{name: "CategoryIDsWithGarbage", query: "category_ids=1,x,3"},
		{name: "BadOrder", query: "order=sideways"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

			_, err := handler.ParseFilter(req)
			assert.ErrorIs(t, err, transaction.ErrInvalidFilter)
		})
	}
}

// feedRouter mounts the handler over a 25-row ledger served page by page
// through the repository mock, with the given user pre-authenticated.
func feedRouter(t *testing.T, ownerID uuid.UUID) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)

	var ledger []*transaction.Transaction
	for i := 1; i <= 25; i++ {
		ledger = append(ledger, &transaction.Transaction{
			ID:          int64(i),
			Value:       1000,
			Type:        transaction.TypeExpense,
			Description: "tx",
			UserID:      ownerID,
		})
	}

	repo.EXPECT().
		ListTransactions(gomock.Any(), ownerID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, filter transaction.Filter) ([]*transaction.Transaction, int, error) {
			start := min(filter.Offset(), len(ledger))
			end := min(start+filter.PerPage, len(ledger))
			return ledger[start:end], len(ledger), nil
		}).
		AnyTimes()

	repo.EXPECT().
		ListRange(gomock.Any(), ownerID, gomock.Any(), gomock.Any()).
		Return(ledger, nil).
		AnyTimes()

	h := handler.NewHandler(transaction.NewService(repo))

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), ownerID)))
		})
	})
	h.Routes(router)

	return router
}

type feedBody struct {
	Items []struct {
		ID int64 `json:"id"`
	} `json:"items"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
	Loaded  bool `json:"loaded"`
	Totals  struct {
		Expense float64 `json:"expense"`
		Net     float64 `json:"net"`
	} `json:"totals"`
}

func doFeed(t *testing.T, router http.Handler, method, target string) feedBody {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body feedBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestHandler_Feed(t *testing.T) {
	router := feedRouter(t, uuid.New())

	// refresh lands page zero plus the unfiltered ledger totals
	body := doFeed(t, router, http.MethodPut, "/feed")
	assert.Len(t, body.Items, 10)
	assert.Equal(t, 25, body.Total)
	assert.True(t, body.HasMore)
	assert.InDelta(t, 250.0, body.Totals.Expense, 0.001)
	assert.InDelta(t, -250.0, body.Totals.Net, 0.001)

	// two loads drain the remaining pages
	body = doFeed(t, router, http.MethodPost, "/feed/next")
	assert.True(t, body.Loaded)
	assert.Len(t, body.Items, 20)
	assert.True(t, body.HasMore)

	body = doFeed(t, router, http.MethodPost, "/feed/next")
	assert.True(t, body.Loaded)
	assert.Len(t, body.Items, 25)
	assert.False(t, body.HasMore)

	// exhausted: refused, state unchanged
	body = doFeed(t, router, http.MethodPost, "/feed/next")
	assert.False(t, body.Loaded)
	assert.Len(t, body.Items, 25)

	// state endpoint re-serves the accumulated window without fetching
	body = doFeed(t, router, http.MethodGet, "/feed")
	assert.Len(t, body.Items, 25)
	assert.Equal(t, 25, body.Total)
}

func TestHandler_FeedRefresh_RejectsBadFilter(t *testing.T) {
	router := feedRouter(t, uuid.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/feed?page=abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_List_RejectsBadFilter(t *testing.T) {
	router := feedRouter(t, uuid.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?from=yesterday", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
