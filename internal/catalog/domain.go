// Package catalog proxies the Products and Auctions modules plus their
// supporting categories and banners.
package catalog

import "time"

// Product is a listing awaiting or holding an auction.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CategoryID  string    `json:"categoryId"`
	CompanyID   string    `json:"companyId,omitempty"`
	StartPrice  float64   `json:"startPrice"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Auction is a live or finished bidding round on a product.
type Auction struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"productId"`
	CurrentBid float64   `json:"currentBid"`
	BidCount   int       `json:"bidCount"`
	Status     string    `json:"status"`
	EndsAt     time.Time `json:"endsAt"`
}

// Category groups products.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// Banner is a promotional slot on the storefront. Listing banners is public.
type Banner struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
	LinkURL  string `json:"linkUrl,omitempty"`
	Active   bool   `json:"active"`
	Position int    `json:"position"`
}

// ProductRequest is the create/update payload for products.
type ProductRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	CategoryID  string  `json:"categoryId" validate:"required"`
	StartPrice  float64 `json:"startPrice" validate:"gte=0"`
}

// CategoryRequest is the create/update payload for categories.
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// BannerRequest is the create/update payload for banners.
type BannerRequest struct {
	Title    string `json:"title" validate:"required"`
	ImageURL string `json:"imageUrl" validate:"required,url"`
	LinkURL  string `json:"linkUrl" validate:"omitempty,url"`
	Active   bool   `json:"active"`
	Position int    `json:"position" validate:"gte=0"`
}
