package users

import (
	"context"
	"net/url"

	"github.com/mazaadati/bidmaster-admin/internal/shared"
	"github.com/mazaadati/bidmaster-admin/internal/upstream"
)

// Service forwards user management calls to the auction backend.
type Service struct {
	client *upstream.Client
}

// NewService builds a Service instance.
func NewService(client *upstream.Client) *Service {
	return &Service{client: client}
}

type listResponse struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

// List returns one page of users.
func (s *Service) List(ctx context.Context, query shared.ListQuery, roleFilter string) ([]User, shared.Pagination, error) {
	values := query.Values()
	if roleFilter != "" {
		values.Set("role", roleFilter)
	}
	var resp listResponse
	if err := s.client.GetJSON(ctx, "/admin/users", values, &resp); err != nil {
		return nil, shared.Pagination{}, err
	}
	return resp.Users, shared.NewPagination(query.Page, query.PerPage, resp.Total), nil
}

// Get fetches a single user.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	var user User
	if err := s.client.GetJSON(ctx, "/admin/users/"+url.PathEscape(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create registers a new account.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	var user User
	if err := s.client.PostJSON(ctx, "/admin/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update modifies an account.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*User, error) {
	var user User
	if err := s.client.PutJSON(ctx, "/admin/users/"+url.PathEscape(id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetBlocked blocks or unblocks an account.
func (s *Service) SetBlocked(ctx context.Context, id string, blocked bool) error {
	return s.client.PatchJSON(ctx, "/admin/users/"+url.PathEscape(id)+"/block",
		map[string]bool{"blocked": blocked}, nil)
}
