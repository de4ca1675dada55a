package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/jfarias-dev/carteira/internal/auth"
	"github.com/jfarias-dev/carteira/internal/feed"
	"github.com/jfarias-dev/carteira/internal/http/httperr"
)

// feedFor returns the caller's accumulation feed, creating it on first use.
// One feed lives per authenticated user for the lifetime of the process.
func (h *Handler) feedFor(ownerID uuid.UUID) *feed.Feed {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, ok := h.feeds[ownerID]
	if !ok {
		f = feed.New(h.svc)
		h.feeds[ownerID] = f
	}

	return f
}

type feedTotalsResponse struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

type feedResponse struct {
	Items   []transactionResponse `json:"items"`
	Total   int                   `json:"total"`
	HasMore bool                  `json:"has_more"`
	Totals  feedTotalsResponse    `json:"totals"`
}

func toFeedResponse(f *feed.Feed) feedResponse {
	items := f.Items()
	totals := f.Totals()

	resp := feedResponse{
		Items:   make([]transactionResponse, len(items)),
		Total:   f.Total(),
		HasMore: f.HasMore(),
		Totals: feedTotalsResponse{
			Income:  totals.Income,
			Expense: totals.Expense,
			Net:     totals.Net,
		},
	}

	for i, tx := range items {
		resp.Items[i] = toResponse(tx)
	}

	return resp
}

// feedRefresh resets the caller's accumulated window to page zero of the
// given filter and recomputes the unfiltered ledger totals.
func (h *Handler) feedRefresh(w http.ResponseWriter, r *http.Request) {
	ownerID, err := auth.CurrentUser(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	filter, err := ParseFilter(r)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	f := h.feedFor(ownerID)

	if err := f.Refresh(r.Context(), ownerID, filter); err != nil {
		if errors.Is(err, feed.ErrStale) {
			// a newer refresh superseded this one; its state already won
			w.WriteHeader(http.StatusConflict)
			return
		}

		httperr.Write(w, err)

		return
	}

	writeFeedJSON(w, toFeedResponse(f))
}

type feedNextResponse struct {
	feedResponse
	Loaded bool `json:"loaded"`
}

// feedNext appends the following page to the accumulated window. Loaded is
// false when the feed is exhausted or another load is already in flight.
func (h *Handler) feedNext(w http.ResponseWriter, r *http.Request) {
	ownerID, err := auth.CurrentUser(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	f := h.feedFor(ownerID)

	loaded, err := f.LoadMore(r.Context())
	if err != nil {
		if errors.Is(err, feed.ErrStale) {
			w.WriteHeader(http.StatusConflict)
			return
		}

		httperr.Write(w, err)

		return
	}

	writeFeedJSON(w, feedNextResponse{
		feedResponse: toFeedResponse(f),
		Loaded:       loaded,
	})
}

// feedState returns the accumulated window without fetching anything, so a
// reconnecting client can re-render what it had.
func (h *Handler) feedState(w http.ResponseWriter, r *http.Request) {
	ownerID, err := auth.CurrentUser(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeFeedJSON(w, toFeedResponse(h.feedFor(ownerID)))
}

func writeFeedJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
