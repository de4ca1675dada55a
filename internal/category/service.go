package category

import (
	"context"
	"sync"

	"github.com/jfarias-dev/carteira/internal/transaction"
)

// FallbackName labels transactions whose category id has no match in the
// reference set. Such transactions are never dropped from breakdowns.
const FallbackName = "Outros"

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	ListCategories(ctx context.Context) ([]transaction.Category, error)
}

// Service caches the static transaction_categories reference set for the
// lifetime of the process. The set is fetched on first use, by List or
// Resolve alike, and only refreshed on demand; it is not mutated by this
// service.
type Service struct {
	repo Repository

	mu    sync.RWMutex
	byID  map[int64]string
	cache []transaction.Category
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the cached reference set, fetching it on first use.
func (s *Service) List(ctx context.Context) ([]transaction.Category, error) {
	s.mu.RLock()
	cached := s.cache
	s.mu.RUnlock()

	if cached != nil {
		return cached, nil
	}

	return s.Refresh(ctx)
}

// Refresh re-fetches the reference set. On failure the previous cache is
// kept untouched.
func (s *Service) Refresh(ctx context.Context) ([]transaction.Category, error) {
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]string, len(cats))
	for _, c := range cats {
		byID[c.ID] = c.Name
	}

	s.mu.Lock()
	s.cache = cats
	s.byID = byID
	s.mu.Unlock()

	return cats, nil
}

// Resolve maps a category id to its display name, or the fallback label when
// the id is unknown. The reference set is fetched on first use so lookups
// work before any List call; when it cannot be loaded the fallback is
// returned rather than an error.
func (s *Service) Resolve(id int64) string {
	s.mu.RLock()
	byID := s.byID
	s.mu.RUnlock()

	if byID == nil {
		if _, err := s.Refresh(context.Background()); err != nil {
			return FallbackName
		}

		s.mu.RLock()
		byID = s.byID
		s.mu.RUnlock()
	}

	if name, ok := byID[id]; ok && name != "" {
		return name
	}

	return FallbackName
}
