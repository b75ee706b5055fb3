package memory

import (
	"context"
	"sync"

	"github.com/teamroster/employee-directory/internal/core/domain"
)

// PromotionRepository keeps the promotion log in a slice.
type PromotionRepository struct {
	mu    sync.RWMutex
	items []domain.Promotion
}

func NewPromotionRepository() *PromotionRepository {
	return &PromotionRepository{}
}

func (r *PromotionRepository) Insert(_ context.Context, p *domain.Promotion) error {
	r.mu.Lock()
	r.items = append(r.items, *p)
	r.mu.Unlock()
	return nil
}

// List returns up to limit promotions, newest first.
func (r *PromotionRepository) List(_ context.Context, limit int) ([]domain.Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.items)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.Promotion, 0, n)
	for i := len(r.items) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.items[i])
	}
	return out, nil
}
