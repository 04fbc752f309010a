package dashboard

import (
	"context"
	"net/url"

	"github.com/mazaadati/bidmaster-admin/internal/upstream"
)

// Service fetches dashboard aggregates from the auction backend.
type Service struct {
	client *upstream.Client
}

// NewService builds a Service instance.
func NewService(client *upstream.Client) *Service {
	return &Service{client: client}
}

// Stats returns the landing-page snapshot.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := s.client.GetJSON(ctx, "/admin/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Report returns the snapshot plus the sales trend for a period.
func (s *Service) Report(ctx context.Context, period string) (*Report, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	values := url.Values{}
	if period != "" {
		values.Set("period", period)
	}
	var sales []SalesPoint
	if err := s.client.GetJSON(ctx, "/admin/dashboard/sales-trend", values, &sales); err != nil {
		return nil, err
	}
	return &Report{Period: period, Stats: *stats, Sales: sales}, nil
}
