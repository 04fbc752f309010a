// Package settings proxies the Settings module: platform configuration
// and branding assets.
package settings

// Settings is the platform configuration editable from the dashboard.
type Settings struct {
	SiteName          string  `json:"siteName"`
	SupportEmail      string  `json:"supportEmail"`
	SupportPhone      string  `json:"supportPhone,omitempty"`
	CommissionPercent float64 `json:"commissionPercent"`
	MinBidIncrement   float64 `json:"minBidIncrement"`
	MaintenanceMode   bool    `json:"maintenanceMode"`
	LogoURL           string  `json:"logoUrl,omitempty"`
}

// UpdateRequest is the settings update payload.
type UpdateRequest struct {
	SiteName          string  `json:"siteName" validate:"required"`
	SupportEmail      string  `json:"supportEmail" validate:"required,email"`
	SupportPhone      string  `json:"supportPhone" validate:"omitempty,e164"`
	CommissionPercent float64 `json:"commissionPercent" validate:"gte=0,lte=100"`
	MinBidIncrement   float64 `json:"minBidIncrement" validate:"gte=0"`
	MaintenanceMode   bool    `json:"maintenanceMode"`
}
