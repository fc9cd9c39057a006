package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/repository"
)

const alertColumns = `id, type, product_id, message, severity, created_at, read`

type alertRepository struct {
	db *DB
}

var _ repository.AlertRepository = (*alertRepository)(nil)

func NewAlertRepository(db *DB) *alertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Reconcile(ctx context.Context, computed []domain.Alert) ([]domain.Alert, error) {
	ids := make([]string, 0, len(computed))
	for _, a := range computed {
		ids = append(ids, a.ID)
	}

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		// 1. Drop alerts that no longer apply
		if _, err := tx.ExecContext(ctx, `DELETE FROM alerts WHERE NOT (id = ANY($1))`, pq.Array(ids)); err != nil {
			return fmt.Errorf("failed to prune alerts: %w", err)
		}

		// 2. Upsert, keeping created_at of known ids and read unless escalated
		query := `
			INSERT INTO alerts (` + alertColumns + `)
			VALUES (:id, :type, :product_id, :message, :severity, :created_at, :read)
			ON CONFLICT (id)
			DO UPDATE SET
				message = EXCLUDED.message,
				severity = EXCLUDED.severity,
				read = alerts.read AND ` + severityRankSQL("EXCLUDED.severity") + ` <= ` + severityRankSQL("alerts.severity") + `
		`
		for _, a := range computed {
			if _, err := tx.NamedExecContext(ctx, query, a); err != nil {
				return fmt.Errorf("failed to upsert alert %s: %w", a.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.List(ctx)
}

// severityRankSQL renders domain.Severity.Rank as a CASE expression over col.
func severityRankSQL(col string) string {
	var b strings.Builder
	b.WriteString("(CASE " + col)
	for _, s := range domain.Severities {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", s, s.Rank())
	}
	b.WriteString(" ELSE 0 END)")
	return b.String()
}

func (r *alertRepository) List(ctx context.Context) ([]domain.Alert, error) {
	alerts := []domain.Alert{}
	query := `SELECT ` + alertColumns + ` FROM alerts ORDER BY created_at DESC, id COLLATE "C"`
	if err := r.db.SelectContext(ctx, &alerts, query); err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

func (r *alertRepository) MarkRead(ctx context.Context, id string) (domain.Alert, error) {
	var a domain.Alert
	query := `UPDATE alerts SET read = TRUE WHERE id = $1 RETURNING ` + alertColumns
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Alert{}, domain.NewNotFoundError("alert", id)
		}
		return domain.Alert{}, fmt.Errorf("failed to mark alert %s read: %w", id, err)
	}
	return a, nil
}
