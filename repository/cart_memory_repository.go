package repository

import (
	"context"
	"sync"

	"nube-alta-cafe/models"
)

// CartMemoryRepository keeps carts in process memory; carts are lost on restart
type CartMemoryRepository struct {
	mu    sync.RWMutex
	carts map[string][]models.CartLineItem
}

// Ensure CartMemoryRepository implements CartRepositoryInterface
var _ CartRepositoryInterface = (*CartMemoryRepository)(nil)

// NewCartMemoryRepository creates an empty in-memory cart repository
func NewCartMemoryRepository() *CartMemoryRepository {
	return &CartMemoryRepository{carts: make(map[string][]models.CartLineItem)}
}

func (r *CartMemoryRepository) Load(ctx context.Context, sessionID string) ([]models.CartLineItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.CartLineItem{}, r.carts[sessionID]...), nil
}

func (r *CartMemoryRepository) Save(ctx context.Context, sessionID string, items []models.CartLineItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[sessionID] = append([]models.CartLineItem{}, items...)
	return nil
}

func (r *CartMemoryRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	return nil
}
