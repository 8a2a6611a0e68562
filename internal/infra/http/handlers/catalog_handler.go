package handlers

import (
	"net/http"

	"github.com/jatinenterprises/site-backend/internal/entity"
	"github.com/jatinenterprises/site-backend/internal/infra/images"
)

// CatalogHandler serves the read-only content behind the catalog and
// testimonial pages. Image links are rewritten into displayable URLs on
// the way out; records whose links cannot be resolved get the
// placeholder instead of a broken image.
type CatalogHandler struct {
	Products     entity.ProductRepositoryInterface
	Testimonials entity.TestimonialRepositoryInterface
	CDN          *images.CDN
}

func NewCatalogHandler(
	products entity.ProductRepositoryInterface,
	testimonials entity.TestimonialRepositoryInterface,
	cdn *images.CDN,
) *CatalogHandler {
	return &CatalogHandler{
		Products:     products,
		Testimonials: testimonials,
		CDN:          cdn,
	}
}

// ListProducts handles GET /catalog/products.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, crmErrorResponse{
			Error:   "STORE_ERROR",
			Message: "Failed to load products. Please try again.",
		})
		return
	}

	for i := range products {
		products[i].ImageURL = h.CDN.Resolve(products[i].ImageLink, products[i].Slug, 800, 600)
	}

	writeJSON(w, http.StatusOK, products)
}

// ListTestimonials handles GET /testimonials.
func (h *CatalogHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.Testimonials.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, crmErrorResponse{
			Error:   "STORE_ERROR",
			Message: "Failed to load testimonials. Please try again.",
		})
		return
	}

	for i := range testimonials {
		testimonials[i].PhotoURL = h.CDN.Resolve(testimonials[i].PhotoLink, "", 200, 200)
	}

	writeJSON(w, http.StatusOK, testimonials)
}
