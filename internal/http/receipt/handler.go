package receipt

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jfarias-dev/carteira/internal/auth"
	"github.com/jfarias-dev/carteira/internal/http/httperr"
	"github.com/jfarias-dev/carteira/internal/receipt"
)

// maxUploadBytes caps receipt images at 10 MiB.
const maxUploadBytes = 10 << 20

type Handler struct {
	svc *receipt.Service
}

func NewHandler(svc *receipt.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.upload)
}

type uploadResponse struct {
	URL string `json:"url"`
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	ownerID, err := auth.CurrentUser(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	url, err := h.svc.Upload(r.Context(), ownerID, header.Filename, contentType, file)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(uploadResponse{URL: url}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
