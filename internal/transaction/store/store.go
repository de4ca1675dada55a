package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jfarias-dev/carteira/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a transaction row from the scanner.
// Expected column order: id, value, type_id, category_id, description,
// receipt_url, user_id, created_at, updated_at, deleted_at
func scanTransaction(s scanner, extra ...any) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeID int

	var categoryID sql.NullInt64

	var receiptURL sql.NullString

	dest := []any{
		&tx.ID, &tx.Value, &typeID, &categoryID, &tx.Description,
		&receiptURL, &tx.UserID,
		&tx.CreatedAt, &tx.UpdatedAt, &tx.DeletedAt,
	}
	dest = append(dest, extra...)

	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeID)
	tx.CategoryID = categoryID.Int64
	tx.ReceiptURL = receiptURL.String

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.value, t.type_id, t.category_id, t.description,
	t.receipt_url, t.user_id, t.created_at, t.updated_at, t.deleted_at
`

// predicate is one WHERE clause fragment with its argument. The expr carries
// a %d placeholder for the positional parameter index.
type predicate struct {
	expr string
	arg  any
}

// filterPredicates translates a filter into clauses in the fixed order the
// listing contract documents: search text, type, category set, date-from,
// date-to. The owner scope is applied separately and always.
func filterPredicates(f transaction.Filter) []predicate {
	var ps []predicate

	if f.SearchText != "" {
		ps = append(ps, predicate{"t.description ILIKE $%d", "%" + f.SearchText + "%"})
	}

	if f.Type != nil {
		ps = append(ps, predicate{"t.type_id = $%d", int(*f.Type)})
	}

	if len(f.CategoryIDs) > 0 {
		ps = append(ps, predicate{"t.category_id = ANY($%d)", f.CategoryIDs})
	}

	if f.From != nil {
		ps = append(ps, predicate{"t.created_at >= $%d", *f.From})
	}

	if f.To != nil {
		ps = append(ps, predicate{"t.created_at <= $%d", *f.To})
	}

	return ps
}

func appendPredicates(query string, args []any, ps []predicate) (string, []any) {
	for _, p := range ps {
		query += " AND " + fmt.Sprintf(p.expr, len(args)+1)
		args = append(args, p.arg)
	}

	return query, args
}

func orderClause(f transaction.Filter) string {
	if f.OrderID != nil {
		if *f.OrderID == transaction.SortAsc {
			return " ORDER BY t.id ASC"
		}

		return " ORDER BY t.id DESC"
	}

	return " ORDER BY t.created_at DESC"
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (value, type_id, category_id, description, receipt_url, user_id, created_at)
		VALUES ($1, $2, NULLIF($3, 0), $4, NULLIF($5, ''), $6, $7)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.Value,
		int(tx.Type),
		tx.CategoryID,
		tx.Description,
		tx.ReceiptURL,
		tx.UserID,
		tx.CreatedAt,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, ownerID uuid.UUID, id int64) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.id = $1 AND t.user_id = $2`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

// ListTransactions returns one page of matching rows plus the exact count of
// the full matching set, computed in the same query via a window function.
func (s *Store) ListTransactions(ctx context.Context, ownerID uuid.UUID, filter transaction.Filter) ([]*transaction.Transaction, int, error) {
	query := `SELECT ` + selectTransactionColumns + `, COUNT(*) OVER() AS total_count
		FROM transactions t
		WHERE t.user_id = $1`

	args := []any{ownerID}

	query, args = appendPredicates(query, args, filterPredicates(filter))
	query += orderClause(filter)

	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.PerPage, filter.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	total := 0

	for rows.Next() {
		tx, err := scanTransaction(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating transaction rows: %w", err)
	}

	// A page past the end returns no rows, so the window count is lost;
	// fall back to an explicit count with the same predicates.
	if len(txs) == 0 {
		if total, err = s.countMatching(ctx, ownerID, filter); err != nil {
			return nil, 0, err
		}
	}

	return txs, total, nil
}

func (s *Store) countMatching(ctx context.Context, ownerID uuid.UUID, filter transaction.Filter) (int, error) {
	query := `SELECT COUNT(*) FROM transactions t WHERE t.user_id = $1`

	args := []any{ownerID}

	query, args = appendPredicates(query, args, filterPredicates(filter))

	var total int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}

	return total, nil
}

func (s *Store) ListRange(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.user_id = $1`

	args := []any{ownerID}

	var ps []predicate

	if from != nil {
		ps = append(ps, predicate{"t.created_at >= $%d", *from})
	}

	if to != nil {
		ps = append(ps, predicate{"t.created_at <= $%d", *to})
	}

	query, args = appendPredicates(query, args, ps)
	query += " ORDER BY t.created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing range: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating range rows: %w", err)
	}

	return txs, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET value = $1, type_id = $2, category_id = NULLIF($3, 0), description = $4,
		    receipt_url = NULLIF($5, ''), updated_at = NOW()
		WHERE id = $6 AND user_id = $7
	`

	res, err := s.db.ExecContext(ctx, query,
		tx.Value,
		int(tx.Type),
		tx.CategoryID,
		tx.Description,
		tx.ReceiptURL,
		tx.ID,
		tx.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

// DeleteTransaction removes the row outright. The deleted_at column exists
// for schema parity with older clients but is never set.
func (s *Store) DeleteTransaction(ctx context.Context, ownerID uuid.UUID, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM transactions WHERE id = $1 AND user_id = $2", id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

func (s *Store) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning batch tx: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO transactions (value, type_id, category_id, description, receipt_url, user_id, created_at)
		VALUES ($1, $2, NULLIF($3, 0), $4, NULLIF($5, ''), $6, $7)
		RETURNING id, created_at
	`

	for _, tx := range txs {
		err := dbTx.QueryRowContext(ctx, query,
			tx.Value,
			int(tx.Type),
			tx.CategoryID,
			tx.Description,
			tx.ReceiptURL,
			tx.UserID,
			tx.CreatedAt,
		).Scan(&tx.ID, &tx.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating transaction: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}

	return nil
}
