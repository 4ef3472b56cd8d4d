// Package types defines the shared data model for the employee portal.
package types

// Role values recognized in the user registry.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Vacation request lifecycle states. Requests are created as pending;
// approval and rejection happen through the admin surface.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// User is one registry entry. Usernames are compared case-insensitively
// everywhere and stored lowercased.
type User struct {
	Username string `yaml:"username" json:"username"`
	Role     string `yaml:"role" json:"role"`
}

// HRPolicy is one read-only policy document keyed by topic.
type HRPolicy struct {
	Topic string `json:"topic"`
	Text  string `json:"text"`
}

// VacationBalance is the number of vacation days available to one user.
type VacationBalance struct {
	Username     string `json:"username"`
	VacationDays int    `json:"vacation_days"`
}

// VacationRequest is one submitted vacation request. IDs are assigned
// monotonically (max existing + 1) by the request store.
type VacationRequest struct {
	ID           int    `yaml:"id" json:"id"`
	EmployeeName string `yaml:"employeeName" json:"employeeName"`
	StartDate    string `yaml:"startDate" json:"startDate"`
	EndDate      string `yaml:"endDate" json:"endDate"`
	Status       string `yaml:"status" json:"status"`
}

// LoginRequest is the POST /api/login payload. The portal trusts the
// client-supplied username; there are no credentials.
type LoginRequest struct {
	Username string `json:"username"`
}

// LoginResponse is the POST /api/login reply.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ChatRequest is the POST /api/chat payload.
type ChatRequest struct {
	Message  string `json:"message"`
	Username string `json:"username,omitempty"`
}

// ChatResponse carries the sanitized HTML-bearing chatbot reply.
type ChatResponse struct {
	Message string `json:"message"`
}

// AddUserRequest is the POST /api/users payload.
type AddUserRequest struct {
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
}

// VacationRequestList is the GET /api/vacation-requests reply.
type VacationRequestList struct {
	Requests []VacationRequest `json:"requests"`
}
