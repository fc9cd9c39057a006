package repository

import (
	"context"
	"fmt"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
)

// ProductRepository stores the product catalogue. List returns products in
// insertion order.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Create(ctx context.Context, p domain.Product) error
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// AlertRepository keeps alerts identity-stable across recomputation. Listings
// are ordered by creation time, newest first, ties broken by ascending id
// (domain.SortAlertsForListing).
type AlertRepository interface {
	// Reconcile replaces the stored set with computed. Alerts whose id is
	// already stored keep their creation time and their read flag, unless
	// their severity escalated, which makes them unread again. Stored alerts
	// missing from computed are dropped.
	Reconcile(ctx context.Context, computed []domain.Alert) ([]domain.Alert, error)
	List(ctx context.Context) ([]domain.Alert, error)
	// MarkRead sets read on an alert.
	MarkRead(ctx context.Context, id string) (domain.Alert, error)
}

// SeedIfEmpty inserts products only when the repository holds none. It
// returns the number of products inserted.
func SeedIfEmpty(ctx context.Context, repo ProductRepository, products []domain.Product) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	for i, p := range products {
		if err := repo.Create(ctx, p); err != nil {
			return i, fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}
	return len(products), nil
}
