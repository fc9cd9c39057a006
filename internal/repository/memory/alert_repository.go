package memory

import (
	"context"
	"sync"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/repository"
)

type alertRepository struct {
	mu     sync.RWMutex
	alerts []domain.Alert
}

var _ repository.AlertRepository = (*alertRepository)(nil)

func NewAlertRepository() *alertRepository {
	return &alertRepository{}
}

func (r *alertRepository) Reconcile(ctx context.Context, computed []domain.Alert) ([]domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := make(map[string]domain.Alert, len(r.alerts))
	for _, a := range r.alerts {
		existing[a.ID] = a
	}

	next := make([]domain.Alert, 0, len(computed))
	seen := make(map[string]bool, len(computed))
	for _, a := range computed {
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true

		if prev, ok := existing[a.ID]; ok {
			a.Read = prev.Read && !prev.Severity.Escalates(a.Severity)
			a.CreatedAt = prev.CreatedAt
		}
		next = append(next, a)
	}
	domain.SortAlertsForListing(next)
	r.alerts = next

	return r.snapshot(), nil
}

func (r *alertRepository) List(ctx context.Context) ([]domain.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(), nil
}

func (r *alertRepository) MarkRead(ctx context.Context, id string) (domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.alerts {
		if r.alerts[i].ID == id {
			r.alerts[i].Read = true
			return r.alerts[i], nil
		}
	}
	return domain.Alert{}, domain.NewNotFoundError("alert", id)
}

func (r *alertRepository) snapshot() []domain.Alert {
	out := make([]domain.Alert, len(r.alerts))
	copy(out, r.alerts)
	return out
}
