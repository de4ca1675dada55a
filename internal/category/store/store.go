package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jfarias-dev/carteira/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListCategories(ctx context.Context) ([]transaction.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM transaction_categories ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var cats []transaction.Category

	for rows.Next() {
		var c transaction.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		cats = append(cats, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return cats, nil
}
