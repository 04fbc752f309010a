// Package documents proxies the Documents module: KYC submissions and
// their review decisions.
package documents

import "time"

// Document is a verification document submitted by a user or company.
type Document struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"ownerId"`
	OwnerType  string    `json:"ownerType"`
	Kind       string    `json:"kind"`
	FileURL    string    `json:"fileUrl"`
	Status     string    `json:"status"`
	ReviewNote string    `json:"reviewNote,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// ReviewRequest carries a review decision.
type ReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Note   string `json:"note" validate:"required_if=Status rejected"`
}
