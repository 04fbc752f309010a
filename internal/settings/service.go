package settings

import (
	"context"
	"io"

	"github.com/mazaadati/bidmaster-admin/internal/upstream"
)

// Service forwards settings calls to the auction backend.
type Service struct {
	client *upstream.Client
}

// NewService builds a Service instance.
func NewService(client *upstream.Client) *Service {
	return &Service{client: client}
}

// Get fetches the current platform settings.
func (s *Service) Get(ctx context.Context) (*Settings, error) {
	var settings Settings
	if err := s.client.GetJSON(ctx, "/admin/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update replaces the platform settings.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Settings, error) {
	var settings Settings
	if err := s.client.PutJSON(ctx, "/admin/settings", req, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UploadLogo replaces the platform logo and returns the stored URL.
func (s *Service) UploadLogo(ctx context.Context, filename string, file io.Reader) (string, error) {
	var resp struct {
		LogoURL string `json:"logoUrl"`
	}
	if err := s.client.Upload(ctx, "/admin/settings/logo", "logo", filename, file, nil, &resp); err != nil {
		return "", err
	}
	return resp.LogoURL, nil
}
