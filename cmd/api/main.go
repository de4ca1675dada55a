package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"cloud.google.com/go/storage"
	"github.com/joho/godotenv"

	"github.com/jfarias-dev/carteira/internal/auth"
	"github.com/jfarias-dev/carteira/internal/category"
	categoryStore "github.com/jfarias-dev/carteira/internal/category/store"
	"github.com/jfarias-dev/carteira/internal/config"
	"github.com/jfarias-dev/carteira/internal/database"
	carteiraHttp "github.com/jfarias-dev/carteira/internal/http"
	categoryHandler "github.com/jfarias-dev/carteira/internal/http/category"
	importHandler "github.com/jfarias-dev/carteira/internal/http/importcsv"
	receiptHandler "github.com/jfarias-dev/carteira/internal/http/receipt"
	reportHandler "github.com/jfarias-dev/carteira/internal/http/report"
	txHandler "github.com/jfarias-dev/carteira/internal/http/transaction"
	"github.com/jfarias-dev/carteira/internal/importer"
	"github.com/jfarias-dev/carteira/internal/receipt"
	"github.com/jfarias-dev/carteira/internal/report"
	"github.com/jfarias-dev/carteira/internal/transaction"
	txStore "github.com/jfarias-dev/carteira/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(ctx, cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	gcsClient, err := storage.NewClient(ctx)
	if err != nil {
		slog.Error("failed to create storage client", "error", err)
		os.Exit(1)
	}
	defer gcsClient.Close()

	var (
		repo            = txStore.New(db)
		txService       = transaction.NewService(repo)
		categoryService = category.NewService(categoryStore.New(db))
		reportService   = report.NewService(repo, categoryService)
		importService   = importer.NewService()
		receiptService  = receipt.NewService(
			receipt.NewGCSStore(gcsClient, cfg.Storage.Bucket),
			cfg.Storage.PublicBaseURL,
		)
	)

	if _, err := categoryService.List(ctx); err != nil {
		slog.Warn("category cache warm-up failed", "error", err)
	}

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret)

	var (
		transactionH = txHandler.NewHandler(txService)
		categoryH    = categoryHandler.NewHandler(categoryService)
		reportH      = reportHandler.NewHandler(reportService)
		receiptH     = receiptHandler.NewHandler(receiptService)
		importH      = importHandler.NewHandler(importService, txService)
	)

	router := carteiraHttp.New(verifier, transactionH, categoryH, reportH, receiptH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
