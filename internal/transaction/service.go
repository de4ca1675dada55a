package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, ownerID uuid.UUID, id int64) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, ownerID uuid.UUID, id int64) error

	// ListTransactions returns one page of matching rows plus the exact count
	// of the full matching set.
	ListTransactions(ctx context.Context, ownerID uuid.UUID, filter Filter) ([]*Transaction, int, error)

	// ListRange returns every transaction of the owner whose created_at falls
	// inside the inclusive bounds. Nil bounds are open.
	ListRange(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*Transaction, error)

	CreateTransactions(ctx context.Context, txs []*Transaction) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Value       int64
	Type        Type
	CategoryID  int64
	Description string
	ReceiptURL  string
	CreatedAt   time.Time
}

func (p CreateParams) validate() error {
	if p.Value <= 0 {
		return fmt.Errorf("%w: value must be positive", ErrInvalidParams)
	}

	if !p.Type.Valid() {
		return fmt.Errorf("%w: unknown type %d", ErrInvalidParams, p.Type)
	}

	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidParams)
	}

	return nil
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Transaction, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	createdAt := params.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tx := &Transaction{
		Value:       params.Value,
		Type:        params.Type,
		CategoryID:  params.CategoryID,
		Description: params.Description,
		ReceiptURL:  params.ReceiptURL,
		UserID:      ownerID,
		CreatedAt:   createdAt,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, ownerID uuid.UUID, id int64) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, ownerID, id)
}

// UpdateParams carries an explicit patch; nil fields are left untouched.
type UpdateParams struct {
	Value       *int64
	Type        *Type
	CategoryID  *int64
	Description *string
	ReceiptURL  *string
}

func (s *Service) Update(ctx context.Context, ownerID uuid.UUID, id int64, params UpdateParams) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if params.Value != nil {
		if *params.Value <= 0 {
			return nil, fmt.Errorf("%w: value must be positive", ErrInvalidParams)
		}

		tx.Value = *params.Value
	}

	if params.Type != nil {
		if !params.Type.Valid() {
			return nil, fmt.Errorf("%w: unknown type %d", ErrInvalidParams, *params.Type)
		}

		tx.Type = *params.Type
	}

	if params.CategoryID != nil {
		tx.CategoryID = *params.CategoryID
	}

	if params.Description != nil {
		if strings.TrimSpace(*params.Description) == "" {
			return nil, fmt.Errorf("%w: description is required", ErrInvalidParams)
		}

		tx.Description = *params.Description
	}

	if params.ReceiptURL != nil {
		tx.ReceiptURL = *params.ReceiptURL
	}

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	return s.repo.DeleteTransaction(ctx, ownerID, id)
}

// Page is one window of a filtered listing together with the exact size of
// the full matching set.
type Page struct {
	Items []*Transaction
	Total int
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, filter Filter) (Page, error) {
	items, total, err := s.repo.ListTransactions(ctx, ownerID, filter)
	if err != nil {
		return Page{}, err
	}

	return Page{Items: items, Total: total}, nil
}

func (s *Service) ListRange(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*Transaction, error) {
	return s.repo.ListRange(ctx, ownerID, from, to)
}

// ImportBatch persists a parsed statement in a single store transaction.
// Rows that duplicate an existing transaction (same day, value, type and
// description) are skipped; the created rows are returned.
func (s *Service) ImportBatch(ctx context.Context, ownerID uuid.UUID, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	minDate, maxDate := paramsDateRange(params)

	existing, err := s.repo.ListRange(ctx, ownerID, &minDate, &maxDate)
	if err != nil {
		return nil, fmt.Errorf("listing date range: %w", err)
	}

	type dupKey struct {
		Day         string
		Value       int64
		Type        Type
		Description string
	}

	seen := make(map[dupKey]struct{}, len(existing))
	for _, tx := range existing {
		seen[dupKey{
			Day:         tx.CreatedAt.Format(time.DateOnly),
			Value:       tx.Value,
			Type:        tx.Type,
			Description: tx.Description,
		}] = struct{}{}
	}

	var txs []*Transaction

	for _, p := range params {
		if err := p.validate(); err != nil {
			return nil, err
		}

		k := dupKey{
			Day:         p.CreatedAt.Format(time.DateOnly),
			Value:       p.Value,
			Type:        p.Type,
			Description: p.Description,
		}
		if _, found := seen[k]; found {
			continue
		}

		seen[k] = struct{}{}

		txs = append(txs, &Transaction{
			Value:       p.Value,
			Type:        p.Type,
			CategoryID:  p.CategoryID,
			Description: p.Description,
			UserID:      ownerID,
			CreatedAt:   p.CreatedAt,
		})
	}

	if len(txs) == 0 {
		return nil, nil
	}

	if err := s.repo.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("creating transactions: %w", err)
	}

	return txs, nil
}

func paramsDateRange(params []CreateParams) (time.Time, time.Time) {
	minDate := params[0].CreatedAt
	maxDate := params[0].CreatedAt

	for _, p := range params[1:] {
		if p.CreatedAt.Before(minDate) {
			minDate = p.CreatedAt
		}

		if p.CreatedAt.After(maxDate) {
			maxDate = p.CreatedAt
		}
	}

	return minDate, maxDate
}
