package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/repository"
)

const productColumns = `id, sku, name, category, supplier, location_id, price, stock_level,
	min_stock_level, max_stock_level, reorder_point, lead_time, sales_velocity, last_reordered`

type productRepository struct {
	db *DB
}

var _ repository.ProductRepository = (*productRepository)(nil)

func NewProductRepository(db *DB) *productRepository {
	return &productRepository{db: db}
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	query := `SELECT ` + productColumns + ` FROM products ORDER BY seq`
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *productRepository) Get(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.NewNotFoundError("product", id)
		}
		return domain.Product{}, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, p domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO products (` + productColumns + `)
			VALUES (:id, :sku, :name, :category, :supplier, :location_id, :price, :stock_level,
				:min_stock_level, :max_stock_level, :reorder_point, :lead_time, :sales_velocity, :last_reordered)
		`
		if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("product %s: %w", p.ID, domain.ErrAlreadyExists)
			}
			return fmt.Errorf("failed to insert product: %w", err)
		}
		return nil
	})
}

func (r *productRepository) Update(ctx context.Context, p domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE products SET
				sku = :sku,
				name = :name,
				category = :category,
				supplier = :supplier,
				location_id = :location_id,
				price = :price,
				stock_level = :stock_level,
				min_stock_level = :min_stock_level,
				max_stock_level = :max_stock_level,
				reorder_point = :reorder_point,
				lead_time = :lead_time,
				sales_velocity = :sales_velocity,
				last_reordered = :last_reordered,
				updated_at = NOW()
			WHERE id = :id
		`
		res, err := tx.NamedExecContext(ctx, query, p)
		if err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		return requireAffected(res, "product", p.ID)
	})
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		if err := requireAffected(res, "product", id); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM alerts WHERE product_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete product alerts: %w", err)
		}
		return nil
	})
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

const uniqueViolation = "23505"

// isUniqueViolation recognises the error of both drivers: lib/pq for the
// server, pgx stdlib for the seeder.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}

func requireAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return domain.NewNotFoundError(entity, id)
	}
	return nil
}
