package database

import (
	"context"
	"database/sql"

	"github.com/jatinenterprises/site-backend/internal/entity"
)

type TestimonialRepository struct {
	DB *sql.DB
}

func NewTestimonialRepository(db *sql.DB) *TestimonialRepository {
	return &TestimonialRepository{DB: db}
}

func (r *TestimonialRepository) List(ctx context.Context) ([]entity.Testimonial, error) {
	query := `
		SELECT id, author, COALESCE(company, ''), quote, rating, COALESCE(photo_link, ''), created_at
		FROM testimonials
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapError("list", err)
	}
	defer rows.Close()

	testimonials := []entity.Testimonial{}
	for rows.Next() {
		var t entity.Testimonial
		if err := rows.Scan(&t.ID, &t.Author, &t.Company, &t.Quote, &t.Rating, &t.PhotoLink, &t.CreatedAt); err != nil {
			return nil, wrapError("list", err)
		}
		testimonials = append(testimonials, t)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapError("list", err)
	}

	return testimonials, nil
}
