package database

import (
	"context"
	"database/sql"

	"github.com/jatinenterprises/site-backend/internal/entity"
)

type ProductRepository struct {
	DB *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, slug, category, description, image_link, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.Name, p.Slug, p.Category,
		nullString(p.Description), nullString(p.ImageLink), p.CreatedAt,
	)
	return wrapError("create", err)
}

func (r *ProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	query := `
		SELECT id, name, slug, category, COALESCE(description, ''), COALESCE(image_link, ''), created_at
		FROM products
		ORDER BY category, name
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapError("list", err)
	}
	defer rows.Close()

	products := []entity.Product{}
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Category, &p.Description, &p.ImageLink, &p.CreatedAt); err != nil {
			return nil, wrapError("list", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapError("list", err)
	}

	return products, nil
}
