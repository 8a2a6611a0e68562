package entity

import (
	"context"
	"time"
)

type Testimonial struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Company   string    `json:"company,omitempty"`
	Quote     string    `json:"quote"`
	Rating    int       `json:"rating"`
	PhotoLink string    `json:"photo_link,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type TestimonialRepositoryInterface interface {
	List(ctx context.Context) ([]Testimonial, error)
}
