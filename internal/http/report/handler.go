package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jfarias-dev/carteira/internal/auth"
	"github.com/jfarias-dev/carteira/internal/http/httperr"
	"github.com/jfarias-dev/carteira/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.overview)
	r.Get("/insights", h.insights)
}

// year 0 (or absent) selects the full ledger with a rolling six-month
// series; otherwise a specific calendar year.
func yearParam(r *http.Request) int {
	s := r.URL.Query().Get("year")
	if s == "" {
		return 0
	}

	year, err := strconv.Atoi(s)
	if err != nil || year < 0 {
		return 0
	}

	return year
}

type monthResponse struct {
	Label   string  `json:"label"`
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

type categorySliceResponse struct {
	CategoryID int64   `json:"category_id"`
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Color      string  `json:"color"`
}

type overviewResponse struct {
	Totals struct {
		Income  float64 `json:"income"`
		Expense float64 `json:"expense"`
		Net     float64 `json:"net"`
	} `json:"totals"`
	Monthly          []monthResponse         `json:"monthly"`
	Categories       []categorySliceResponse `json:"categories"`
	TransactionCount int                     `json:"transaction_count"`
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	ownerID, err := auth.CurrentUser(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	ov, err := h.svc.Overview(r.Context(), ownerID, yearParam(r), time.Now())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	var resp overviewResponse

	resp.Totals.Income = ov.Totals.Income
	resp.Totals.Expense = ov.Totals.Expense
	resp.Totals.Net = ov.Totals.Net
	resp.TransactionCount = ov.TransactionCount

	resp.Monthly = make([]monthResponse, len(ov.Monthly))
	for i, m := range ov.Monthly {
		resp.Monthly[i] = monthResponse{
			Label:   m.Label,
			Year:    m.Year,
			Month:   m.Month,
			Income:  m.Income,
			Expense: m.Expense,
		}
	}

	resp.Categories = make([]categorySliceResponse, len(ov.Categories))
	for i, c := range ov.Categories {
		resp.Categories[i] = categorySliceResponse{
			CategoryID: c.CategoryID,
			Name:       c.Name,
			Value:      c.Value,
			Color:      c.Color,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type insightResponse struct {
	Kind            string  `json:"kind"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Icon            string  `json:"icon"`
	CategoryName    string  `json:"category_name,omitempty"`
	Delta           float64 `json:"delta"`
	Percentage      float64 `json:"percentage"`
	ComparisonLabel string  `json:"comparison_label"`
}

func (h *Handler) insights(w http.ResponseWriter, r *http.Request) {
	ownerID, err := auth.CurrentUser(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	year := yearParam(r)

	var windows report.ComparisonWindows
	if year == 0 {
		windows = report.MonthComparison(time.Now())
	} else {
		windows = report.YearComparison(year)
	}

	insights, err := h.svc.Insights(r.Context(), ownerID, windows)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp := make([]insightResponse, len(insights))
	for i, in := range insights {
		resp[i] = insightResponse{
			Kind:            in.Kind.String(),
			Title:           in.Title,
			Description:     in.Description,
			Icon:            in.Icon,
			CategoryName:    in.CategoryName,
			Delta:           in.Delta,
			Percentage:      in.Percentage,
			ComparisonLabel: in.ComparisonLabel,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
