// Package response defines the JSON bodies returned by the HTTP delivery.
package response

import (
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// Identity is the public identity record returned by /register and /profile/:id.
type Identity struct {
	ID     uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Joined time.Time `json:"joined"`
}

// NewIdentity maps an identity entity.
func NewIdentity(identity *entity.Identity) Identity {
	return Identity{
		ID:     identity.ID,
		Email:  identity.Email,
		Name:   identity.Name,
		Joined: identity.Joined,
	}
}

// Login is deliberately minimal: the session cookie carries the rest.
type Login struct {
	UserID uuid.UUID `json:"userId"`
	Name   string    `json:"name"`
}

// ProductSummary is one element of a catalog listing.
type ProductSummary struct {
	ID       int64    `json:"id"`
	Type     string   `json:"type"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	OldPrice *float64 `json:"oldprice"`
	InStock  bool     `json:"instock"`
	ImgSrc   string   `json:"imgsrc"`
}

// NewProductSummaries maps a listing. An empty listing encodes as [].
func NewProductSummaries(products []*entity.Product) []ProductSummary {
	out := make([]ProductSummary, 0, len(products))
	for _, p := range products {
		out = append(out, ProductSummary{
			ID:       p.ID,
			Type:     p.Type,
			Name:     p.Name,
			Price:    p.Price,
			OldPrice: p.OldPrice,
			InStock:  p.InStock,
			ImgSrc:   p.ImgSrc,
		})
	}

	return out
}

// Product is the single-product projection.
type Product struct {
	ID      int64   `json:"id"`
	Type    string  `json:"type"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	InStock bool    `json:"instock"`
	ImgSrc  string  `json:"imgsrc"`
}

// NewProduct maps a product entity.
func NewProduct(p *entity.Product) Product {
	return Product{
		ID:      p.ID,
		Type:    p.Type,
		Name:    p.Name,
		Price:   p.Price,
		InStock: p.InStock,
		ImgSrc:  p.ImgSrc,
	}
}

// CreatedReview is returned by POST /reviews.
type CreatedReview struct {
	Content  string `json:"content"`
	UserName string `json:"userName"`
}

// Review is one element of GET /reviews.
type Review struct {
	Content  string    `json:"content"`
	UserID   uuid.UUID `json:"userId"`
	UserName string    `json:"userName"`
}

// Reviews wraps the review listing.
type Reviews struct {
	Reviews []Review `json:"reviews"`
}

// NewReviews maps a review listing. An empty listing encodes as {"reviews": []}.
func NewReviews(reviews []*entity.ReviewWithAuthor) Reviews {
	out := Reviews{Reviews: make([]Review, 0, len(reviews))}
	for _, r := range reviews {
		out.Reviews = append(out.Reviews, Review{
			Content:  r.Content,
			UserID:   r.UserID,
			UserName: r.UserName,
		})
	}

	return out
}

// Health is returned by GET /health.
type Health struct {
	Status string `json:"status"`
}
