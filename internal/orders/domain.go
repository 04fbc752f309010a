// Package orders proxies the Orders and Payments modules: completed
// auctions, wallet transaction logs and referral payouts.
package orders

import "time"

// Order is a won auction awaiting fulfilment.
type Order struct {
	ID        string    `json:"id"`
	AuctionID string    `json:"auctionId"`
	BuyerID   string    `json:"buyerId"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// WalletEntry is one movement on a user wallet.
type WalletEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Kind      string    `json:"kind"`
	Amount    float64   `json:"amount"`
	Balance   float64   `json:"balance"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Referral tracks a referral reward.
type Referral struct {
	ID         string    `json:"id"`
	ReferrerID string    `json:"referrerId"`
	ReferredID string    `json:"referredId"`
	Reward     float64   `json:"reward"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}
