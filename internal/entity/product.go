package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	ImageLink   string    `json:"image_link,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewProduct(name, slug, category string) *Product {
	return &Product{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug,
		Category:  category,
		CreatedAt: time.Now(),
	}
}

type ProductRepositoryInterface interface {
	List(ctx context.Context) ([]Product, error)
}
