package transaction

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jfarias-dev/carteira/internal/auth"
	"github.com/jfarias-dev/carteira/internal/feed"
	"github.com/jfarias-dev/carteira/internal/http/httperr"
	"github.com/jfarias-dev/carteira/internal/transaction"
)

type Handler struct {
	svc *transaction.Service

	mu    sync.Mutex
	feeds map[uuid.UUID]*feed.Feed
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{
		svc:   svc,
		feeds: make(map[uuid.UUID]*feed.Feed),
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)

	r.Get("/feed", h.feedState)
	r.Put("/feed", h.feedRefresh)
	r.Post("/feed/next", h.feedNext)

	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	Value       int64            `json:"value"`
	Type        transaction.Type `json:"type_id"`
	CategoryID  int64            `json:"category_id"`
	Description string           `json:"description"`
	ReceiptURL  string           `json:"receipt_url"`
	CreatedAt   *time.Time       `json:"created_at,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, err := auth.CurrentUser(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := transaction.CreateParams{
		Value:       req.Value,
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		ReceiptURL:  req.ReceiptURL,
	}
	if req.CreatedAt != nil {
		params.CreatedAt = *req.CreatedAt
	}

	tx, err := h.svc.Create(r.Context(), ownerID, params)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// ParseFilter reads the listing query params into a validated Filter.
// Malformed values are rejected outright rather than silently replaced with
// defaults.
func ParseFilter(r *http.Request) (transaction.Filter, error) {
	q := r.URL.Query()

	var params transaction.FilterParams

	if s := q.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return transaction.Filter{}, fmt.Errorf("%w: page must be an integer", transaction.ErrInvalidFilter)
		}

		params.Page = new(n)
	}

	if s := q.Get("per_page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return transaction.Filter{}, fmt.Errorf("%w: per_page must be an integer", transaction.ErrInvalidFilter)
		}

		params.PerPage = new(n)
	}

	if s := q.Get("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return transaction.Filter{}, fmt.Errorf("%w: from must be an RFC3339 timestamp", transaction.ErrInvalidFilter)
		}

		params.From = new(t)
	}

	if s := q.Get("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return transaction.Filter{}, fmt.Errorf("%w: to must be an RFC3339 timestamp", transaction.ErrInvalidFilter)
		}

		params.To = new(t)
	}

	if s := q.Get("type_id"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return transaction.Filter{}, fmt.Errorf("%w: type_id must be an integer", transaction.ErrInvalidFilter)
		}

		params.Type = new(transaction.Type(n))
	}

	if s := q.Get("category_ids"); s != "" {
		for _, part := range strings.Split(s, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return transaction.Filter{}, fmt.Errorf("%w: category_ids must be a list of integers", transaction.ErrInvalidFilter)
			}

			params.CategoryIDs = append(params.CategoryIDs, id)
		}
	}

	params.SearchText = q.Get("search")

	if s := q.Get("order"); s != "" {
		params.OrderID = new(transaction.SortDirection(s))
	}

	return transaction.NewFilter(params)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
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

	page, err := h.svc.List(r.Context(), ownerID, filter)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toPageResponse(page, filter)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ownerID, err := auth.CurrentUser(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateTransactionRequest struct {
	Value       *int64            `json:"value,omitempty"`
	Type        *transaction.Type `json:"type_id,omitempty"`
	CategoryID  *int64            `json:"category_id,omitempty"`
	Description *string           `json:"description,omitempty"`
	ReceiptURL  *string           `json:"receipt_url,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ownerID, err := auth.CurrentUser(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Update(r.Context(), ownerID, id, transaction.UpdateParams{
		Value:       req.Value,
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		ReceiptURL:  req.ReceiptURL,
	})
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ownerID, err := auth.CurrentUser(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), ownerID, id); err != nil {
		httperr.Write(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
