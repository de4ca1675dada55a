package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jfarias-dev/carteira/internal/auth"
	"github.com/jfarias-dev/carteira/internal/http/httperr"
	"github.com/jfarias-dev/carteira/internal/importer"
	"github.com/jfarias-dev/carteira/internal/transaction"
)

const maxUploadBytes = 5 << 20

type Handler struct {
	importer *importer.Service
	txs      *transaction.Service
}

func NewHandler(importerSvc *importer.Service, txSvc *transaction.Service) *Handler {
	return &Handler{importer: importerSvc, txs: txSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importStatement)
}

type importResponse struct {
	Imported int `json:"imported"`
	Parsed   int `json:"parsed"`
}

func (h *Handler) importStatement(w http.ResponseWriter, r *http.Request) {
	ownerID, err := auth.CurrentUser(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importer.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.txs.ImportBatch(r.Context(), ownerID, params)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(importResponse{
		Imported: len(created),
		Parsed:   len(params),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
