// Package authz defines the authorization rules gating chatbot tools.
//
// The rules are pure predicates over the user registry and are the single
// enforcement point: every tool that exposes another user's data or acts
// on another user's behalf must call them. Lookup failures (unregistered
// actor, unreadable registry) read as denied, never as an error.
package authz

import (
	"strings"

	"github.com/openportal/portald/pkg/types"
)

// UserDirectory is the subset of the user registry the rules need.
type UserDirectory interface {
	GetUserByUsername(name string) (types.User, bool, error)
}

// IsAdmin reports whether name is registered with the admin role.
func IsAdmin(users UserDirectory, name string) bool {
	user, ok, err := users.GetUserByUsername(name)
	if err != nil || !ok {
		return false
	}
	return user.Role == types.RoleAdmin
}

// IsAuthorizedToView reports whether actor may view target's information.
// Self-access is always allowed; otherwise the actor must be an admin.
func IsAuthorizedToView(users UserDirectory, actor, target string) bool {
	if strings.EqualFold(actor, target) {
		return true
	}
	return IsAdmin(users, actor)
}

// IsAuthorizedToSubmit reports whether actor may submit a vacation request
// on target's behalf. Self-submission is always allowed; otherwise the
// actor must be an admin.
func IsAuthorizedToSubmit(users UserDirectory, actor, target string) bool {
	if strings.EqualFold(actor, target) {
		return true
	}
	return IsAdmin(users, actor)
}
