package orders

import (
	"context"
	"net/url"

	"github.com/mazaadati/bidmaster-admin/internal/shared"
	"github.com/mazaadati/bidmaster-admin/internal/upstream"
)

// Service forwards order and payment calls to the auction backend.
type Service struct {
	client *upstream.Client
}

// NewService builds a Service instance.
func NewService(client *upstream.Client) *Service {
	return &Service{client: client}
}

type ordersResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}

type walletResponse struct {
	Entries []WalletEntry `json:"entries"`
	Total   int           `json:"total"`
}

type referralsResponse struct {
	Referrals []Referral `json:"referrals"`
	Total     int        `json:"total"`
}

// ListOrders returns one page of orders.
func (s *Service) ListOrders(ctx context.Context, query shared.ListQuery) ([]Order, shared.Pagination, error) {
	var resp ordersResponse
	if err := s.client.GetJSON(ctx, "/admin/orders", query.Values(), &resp); err != nil {
		return nil, shared.Pagination{}, err
	}
	return resp.Orders, shared.NewPagination(query.Page, query.PerPage, resp.Total), nil
}

// GetOrder fetches one order.
func (s *Service) GetOrder(ctx context.Context, id string) (*Order, error) {
	var order Order
	if err := s.client.GetJSON(ctx, "/admin/orders/"+url.PathEscape(id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// SetOrderStatus advances an order through fulfilment.
func (s *Service) SetOrderStatus(ctx context.Context, id, status string) error {
	return s.client.PatchJSON(ctx, "/admin/orders/"+url.PathEscape(id)+"/status",
		map[string]string{"status": status}, nil)
}

// ListWallet returns one page of wallet movements.
func (s *Service) ListWallet(ctx context.Context, query shared.ListQuery, userID string) ([]WalletEntry, shared.Pagination, error) {
	values := query.Values()
	if userID != "" {
		values.Set("userId", userID)
	}
	var resp walletResponse
	if err := s.client.GetJSON(ctx, "/admin/wallet-logs", values, &resp); err != nil {
		return nil, shared.Pagination{}, err
	}
	return resp.Entries, shared.NewPagination(query.Page, query.PerPage, resp.Total), nil
}

// ListReferrals returns one page of referral rewards.
func (s *Service) ListReferrals(ctx context.Context, query shared.ListQuery) ([]Referral, shared.Pagination, error) {
	var resp referralsResponse
	if err := s.client.GetJSON(ctx, "/admin/referrals", query.Values(), &resp); err != nil {
		return nil, shared.Pagination{}, err
	}
	return resp.Referrals, shared.NewPagination(query.Page, query.PerPage, resp.Total), nil
}

// PayoutReferral marks a referral reward as paid.
func (s *Service) PayoutReferral(ctx context.Context, id string) error {
	return s.client.PostJSON(ctx, "/admin/referrals/"+url.PathEscape(id)+"/payout", nil, nil)
}
