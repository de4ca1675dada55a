// Package httperr maps domain errors onto HTTP status codes so failures stay
// distinguishable from empty results.
package httperr

import (
	"errors"
	"net/http"

	"github.com/jfarias-dev/carteira/internal/auth"
	"github.com/jfarias-dev/carteira/internal/transaction"
)

// Write renders err with the status its kind implies.
func Write(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated):
		http.Error(w, "not authenticated", http.StatusUnauthorized)
	case errors.Is(err, transaction.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, transaction.ErrInvalidParams), errors.Is(err, transaction.ErrInvalidFilter):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
