// Package auth wires the admin login flow against the auction backend and
// exposes the session/navigation endpoints the panel boots from.
package auth

// LoginRequest is the panel's login payload. Phone is E.164-ish; role is the
// tier the admin selects on the login screen.
type LoginRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	Role  string `json:"role" validate:"required"`
}

// loginUpstreamResponse mirrors the backend's admin-login reply.
type loginUpstreamResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Role    string `json:"role"`
	Message string `json:"message"`
	User    struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	} `json:"user"`
}

// SessionInfo describes the authenticated admin to the panel.
type SessionInfo struct {
	Role            string   `json:"role"`
	CanWrite        bool     `json:"canWrite"`
	ReadOnly        bool     `json:"readOnly"`
	Modules         []string `json:"modules"`
	AccessiblePages []string `json:"accessiblePages"`
}
