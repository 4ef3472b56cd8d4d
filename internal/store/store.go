// Package store provides flat-file backed stores for the portal data model.
//
// Every store re-reads its backing file on each call (reload-on-read), so
// out-of-band edits to the data files become visible without a restart.
// Writes are whole-file last-writer-wins with no cross-process locking; in
// particular the vacation-request ID assignment (max existing + 1) can lose
// an update if two writers race. That is an accepted property of the
// flat-file design, not something the stores try to hide.
package store

import "github.com/openportal/portald/pkg/types"

// Users is the user registry.
type Users interface {
	// GetUserByUsername returns the user matching name case-insensitively.
	GetUserByUsername(name string) (types.User, bool, error)
	// GetAllUsers returns every registry entry in file order.
	GetAllUsers() ([]types.User, error)
	// AddUser appends a new user. It returns false without writing when a
	// user with the same name (case-insensitively) already exists.
	AddUser(name, role string) (bool, error)
}

// VacationRequests is the vacation-request store.
type VacationRequests interface {
	// GetAllVacationRequests returns every request in file order.
	GetAllVacationRequests() ([]types.VacationRequest, error)
	// CreateNewVacationRequest appends a pending request with the next free
	// ID and persists the store.
	CreateNewVacationRequest(employeeName, startDate, endDate string) error
}

// VacationDays is the per-user vacation balance store.
type VacationDays interface {
	// GetUserVacationDays returns the balance for name, matched
	// case-insensitively. ok is false when the user has no record; an
	// absent user is not a zero balance.
	GetUserVacationDays(name string) (days int, ok bool, err error)
}

// Policies is the read-only HR policy document store.
type Policies interface {
	// GetAllPolicies returns every policy record.
	GetAllPolicies() ([]types.HRPolicy, error)
}
