// Package memory provides in-process repositories backed by maps.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/repository"
)

type productRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Product
	order []string
}

var _ repository.ProductRepository = (*productRepository)(nil)

func NewProductRepository() *productRepository {
	return &productRepository{items: make(map[string]domain.Product)}
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *productRepository) Get(ctx context.Context, id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.NewNotFoundError("product", id)
	}
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, p domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[p.ID]; ok {
		return fmt.Errorf("product %s: %w", p.ID, domain.ErrAlreadyExists)
	}
	r.items[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *productRepository) Update(ctx context.Context, p domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[p.ID]; !ok {
		return domain.NewNotFoundError("product", p.ID)
	}
	r.items[p.ID] = p
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.NewNotFoundError("product", id)
	}
	delete(r.items, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}
