package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stockroom/internal/models"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(p *models.Product) (int, error) {
	const q = `
		INSERT INTO products (name, expiration_date, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	var id int
	if err := r.db.QueryRow(q, p.Name, p.ExpirationDate, p.CreatedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("create product: %w", err)
	}
	return id, nil
}

func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	const q = `
		SELECT id, name, expiration_date, created_at
		FROM products
		WHERE id = $1
	`
	return scanProduct(r.db.QueryRow(q, id))
}

// GetByName returns the oldest product with exactly this name.
func (r *ProductRepository) GetByName(name string) (*models.Product, error) {
	const q = `
		SELECT id, name, expiration_date, created_at
		FROM products
		WHERE name = $1
		ORDER BY id
		LIMIT 1
	`
	return scanProduct(r.db.QueryRow(q, name))
}

func (r *ProductRepository) List() ([]*models.Product, error) {
	const q = `
		SELECT id, name, expiration_date, created_at
		FROM products
		ORDER BY id
	`
	rows, err := r.db.Query(q)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	res := []*models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.ExpirationDate, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		res = append(res, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return res, nil
}

func (r *ProductRepository) Delete(id int) error {
	const q = `DELETE FROM products WHERE id = $1`
	res, err := r.db.Exec(q, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row *sql.Row) (*models.Product, error) {
	var p models.Product
	if err := row.Scan(&p.ID, &p.Name, &p.ExpirationDate, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}
