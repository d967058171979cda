package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	models "github.com/chihabend/gestion-stock/internal/models"
)

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

// listQuery is the single place a listing query is built from a ProductQuery.
func listQuery(q ProductQuery) (string, []any) {
	query := `SELECT id, name, quantity, description, created_at FROM products`
	args := []any{}

	if q.Search != "" {
		query += ` WHERE name ILIKE $1 OR description ILIKE $1`
		args = append(args, "%"+q.Search+"%")
	}

	switch q.Sort {
	case SortNameAsc:
		query += ` ORDER BY name ASC`
	case SortQuantityDesc:
		query += ` ORDER BY quantity DESC`
	default:
		query += ` ORDER BY created_at DESC, id DESC`
	}

	return query, args
}

func (r *PostgresProductRepository) List(q ProductQuery) ([]models.Product, error) {
	query, args := listQuery(q)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresProductRepository) GetByID(id int) (models.Product, error) {
	query := `SELECT id, name, quantity, description, created_at FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Quantity, &p.Description, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Create(p models.Product) (models.Product, error) {
	query := `INSERT INTO products (name, quantity, description) VALUES ($1, $2, $3) RETURNING id, created_at`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, p.Name, p.Quantity, p.Description).Scan(&p.ID, &p.CreatedAt)
	return p, err
}

func (r *PostgresProductRepository) Update(id int, patch ProductPatch) (models.Product, error) {
	assignments := []string{}
	args := []any{}
	argIdx := 1

	if patch.Name != nil {
		assignments = append(assignments, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *patch.Name)
		argIdx++
	}
	if patch.Quantity != nil {
		assignments = append(assignments, fmt.Sprintf("quantity = $%d", argIdx))
		args = append(args, *patch.Quantity)
		argIdx++
	}
	if patch.Description != nil {
		assignments = append(assignments, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *patch.Description)
		argIdx++
	}

	// Nothing to change: behave like a read so the caller still gets the
	// row or a not-found.
	if len(assignments) == 0 {
		return r.GetByID(id)
	}

	query := fmt.Sprintf(
		`UPDATE products SET %s WHERE id = $%d RETURNING id, name, quantity, description, created_at`,
		strings.Join(assignments, ", "), argIdx,
	)
	args = append(args, id)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.Name, &p.Quantity, &p.Description, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Delete(id int) error {
	query := `DELETE FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *PostgresProductRepository) Stats() (ProductStats, error) {
	query := fmt.Sprintf(
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE quantity <= %d), COALESCE(SUM(quantity), 0) * %d FROM products`,
		LowStockThreshold, UnitValue,
	)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var s ProductStats
	err := r.db.QueryRowContext(ctx, query).Scan(&s.TotalProducts, &s.LowStockCount, &s.TotalValue)
	return s, err
}
