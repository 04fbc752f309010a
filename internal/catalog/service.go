package catalog

import (
	"context"
	"net/url"

	"github.com/mazaadati/bidmaster-admin/internal/shared"
	"github.com/mazaadati/bidmaster-admin/internal/upstream"
)

// Service forwards catalog calls to the auction backend.
type Service struct {
	client *upstream.Client
}

// NewService builds a Service instance.
func NewService(client *upstream.Client) *Service {
	return &Service{client: client}
}

type productsResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

type auctionsResponse struct {
	Auctions []Auction `json:"auctions"`
	Total    int       `json:"total"`
}

// ListProducts returns one page of products. companyID restricts the page to
// one company's listings, which is how employee accounts are scoped.
func (s *Service) ListProducts(ctx context.Context, query shared.ListQuery, companyID string) ([]Product, shared.Pagination, error) {
	values := query.Values()
	if companyID != "" {
		values.Set("companyId", companyID)
	}
	var resp productsResponse
	if err := s.client.GetJSON(ctx, "/admin/products", values, &resp); err != nil {
		return nil, shared.Pagination{}, err
	}
	return resp.Products, shared.NewPagination(query.Page, query.PerPage, resp.Total), nil
}

// GetProduct fetches one product.
func (s *Service) GetProduct(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := s.client.GetJSON(ctx, "/admin/products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct registers a listing.
func (s *Service) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	var product Product
	if err := s.client.PostJSON(ctx, "/admin/products", req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct modifies a listing.
func (s *Service) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error) {
	var product Product
	if err := s.client.PutJSON(ctx, "/admin/products/"+url.PathEscape(id), req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// SetProductStatus approves or rejects a listing.
func (s *Service) SetProductStatus(ctx context.Context, id, status string) error {
	return s.client.PatchJSON(ctx, "/admin/products/"+url.PathEscape(id)+"/status",
		map[string]string{"status": status}, nil)
}

// DeleteProduct removes a listing.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/admin/products/"+url.PathEscape(id))
}

// ListAuctions returns one page of auctions.
func (s *Service) ListAuctions(ctx context.Context, query shared.ListQuery, companyID string) ([]Auction, shared.Pagination, error) {
	values := query.Values()
	if companyID != "" {
		values.Set("companyId", companyID)
	}
	var resp auctionsResponse
	if err := s.client.GetJSON(ctx, "/admin/auctions", values, &resp); err != nil {
		return nil, shared.Pagination{}, err
	}
	return resp.Auctions, shared.NewPagination(query.Page, query.PerPage, resp.Total), nil
}

// CloseAuction ends a bidding round early.
func (s *Service) CloseAuction(ctx context.Context, id string) error {
	return s.client.PostJSON(ctx, "/admin/auctions/"+url.PathEscape(id)+"/close", nil, nil)
}

// ListCategories returns every category.
func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.client.GetJSON(ctx, "/admin/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory adds a category.
func (s *Service) CreateCategory(ctx context.Context, req CategoryRequest) (*Category, error) {
	var category Category
	if err := s.client.PostJSON(ctx, "/admin/categories", req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/admin/categories/"+url.PathEscape(id))
}

// ListBanners returns the storefront banners. This endpoint requires no
// credential; the guard passes anonymous traffic through untouched.
func (s *Service) ListBanners(ctx context.Context) ([]Banner, error) {
	var banners []Banner
	if err := s.client.GetJSON(ctx, "/banners", nil, &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

// CreateBanner adds a banner.
func (s *Service) CreateBanner(ctx context.Context, req BannerRequest) (*Banner, error) {
	var banner Banner
	if err := s.client.PostJSON(ctx, "/admin/banners", req, &banner); err != nil {
		return nil, err
	}
	return &banner, nil
}

// UpdateBanner modifies a banner.
func (s *Service) UpdateBanner(ctx context.Context, id string, req BannerRequest) (*Banner, error) {
	var banner Banner
	if err := s.client.PutJSON(ctx, "/admin/banners/"+url.PathEscape(id), req, &banner); err != nil {
		return nil, err
	}
	return &banner, nil
}

// DeleteBanner removes a banner.
func (s *Service) DeleteBanner(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/admin/banners/"+url.PathEscape(id))
}
