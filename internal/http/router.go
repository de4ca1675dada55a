package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jfarias-dev/carteira/internal/auth"
	"github.com/jfarias-dev/carteira/internal/http/category"
	"github.com/jfarias-dev/carteira/internal/http/importcsv"
	"github.com/jfarias-dev/carteira/internal/http/receipt"
	"github.com/jfarias-dev/carteira/internal/http/report"
	"github.com/jfarias-dev/carteira/internal/http/transaction"
)

func New(
	verifier *auth.Verifier,
	transactionsV1 *transaction.Handler,
	categoriesV1 *category.Handler,
	reportsV1 *report.Handler,
	receiptsV1 *receipt.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(verifier))

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/categories", categoriesV1.Routes)

		r.Route("/dashboard", reportsV1.Routes)

		r.Route("/receipts", receiptsV1.Routes)

		r.Route("/import", importV1.Routes)
	})

	return router
}
