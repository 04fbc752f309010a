// Package notifications proxies the Notifications module and keeps the
// unread counter in Redis so the badge poll does not hammer the backend.
package notifications

import "time"

// Notification is one message shown in the admin inbox.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Kind      string    `json:"kind"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// BroadcastRequest pushes a message to app users.
type BroadcastRequest struct {
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body" validate:"required"`
	Audience string `json:"audience" validate:"required,oneof=all buyers sellers"`
}
