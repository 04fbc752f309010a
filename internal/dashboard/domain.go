// Package dashboard proxies the landing-page statistics and serves the
// CSV and PDF exports built from them.
package dashboard

// Stats is the aggregate snapshot shown on the dashboard landing page.
type Stats struct {
	TotalUsers     int     `json:"totalUsers"`
	ActiveAuctions int     `json:"activeAuctions"`
	PendingReviews int     `json:"pendingReviews"`
	OrdersToday    int     `json:"ordersToday"`
	RevenueToday   float64 `json:"revenueToday"`
	RevenueMonth   float64 `json:"revenueMonth"`
	WalletVolume   float64 `json:"walletVolume"`
}

// SalesPoint is one day of sales activity for the trend chart.
type SalesPoint struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// Report bundles everything the export formats render.
type Report struct {
	Period string       `json:"period"`
	Stats  Stats        `json:"stats"`
	Sales  []SalesPoint `json:"sales"`
}
