package documents

import (
	"context"
	"net/url"

	"github.com/mazaadati/bidmaster-admin/internal/shared"
	"github.com/mazaadati/bidmaster-admin/internal/upstream"
)

// Service forwards document review calls to the auction backend.
type Service struct {
	client *upstream.Client
}

// NewService builds a Service instance.
func NewService(client *upstream.Client) *Service {
	return &Service{client: client}
}

type documentsResponse struct {
	Documents []Document `json:"documents"`
	Total     int        `json:"total"`
}

// List returns one page of submitted documents.
func (s *Service) List(ctx context.Context, query shared.ListQuery) ([]Document, shared.Pagination, error) {
	var resp documentsResponse
	if err := s.client.GetJSON(ctx, "/admin/documents", query.Values(), &resp); err != nil {
		return nil, shared.Pagination{}, err
	}
	return resp.Documents, shared.NewPagination(query.Page, query.PerPage, resp.Total), nil
}

// Get fetches one document.
func (s *Service) Get(ctx context.Context, id string) (*Document, error) {
	var doc Document
	if err := s.client.GetJSON(ctx, "/admin/documents/"+url.PathEscape(id), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Review records an approve or reject decision.
func (s *Service) Review(ctx context.Context, id string, req ReviewRequest) error {
	return s.client.PatchJSON(ctx, "/admin/documents/"+url.PathEscape(id)+"/review", req, nil)
}
