// Package audit keeps an append-only trail of admin actions in PostgreSQL.
// The auction backend owns the business data; the gateway still records who
// did what through it.
package audit

import "time"

// Entry is one recorded admin action.
type Entry struct {
	ID       int64          `json:"id"`
	ActorID  string         `json:"actorId"`
	Role     string         `json:"role"`
	Action   string         `json:"action"`
	Module   string         `json:"module"`
	TargetID string         `json:"targetId"`
	Meta     map[string]any `json:"meta,omitempty"`
	At       time.Time      `json:"at"`
}
