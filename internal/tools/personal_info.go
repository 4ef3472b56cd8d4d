package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/openportal/portald/internal/authz"
	"github.com/openportal/portald/internal/store"
)

// ToolPersonalInfo is the contract name of the personal information tool.
const ToolPersonalInfo = "personal_info_query"

// PersonalInfoLookup answers questions about a user's own data. The view
// authorization gate runs before any lookup so a denied request can never
// leak the target's data.
type PersonalInfoLookup struct {
	users    store.Users
	balances store.VacationDays
}

// NewPersonalInfoLookup creates the personal information tool.
func NewPersonalInfoLookup(users store.Users, balances store.VacationDays) *PersonalInfoLookup {
	return &PersonalInfoLookup{users: users, balances: balances}
}

// Name implements Handler.
func (t *PersonalInfoLookup) Name() string {
	return ToolPersonalInfo
}

// Handle implements Handler. An absent target username defaults to the
// actor, so "how many vacation days do I have" works without the model
// naming anyone.
func (t *PersonalInfoLookup) Handle(_ context.Context, args map[string]any, actor string) (string, error) {
	var req struct {
		Username string `json:"username"`
		InfoType string `json:"infoType"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return "", err
	}

	target := strings.TrimSpace(req.Username)
	if target == "" {
		target = actor
	}

	if !authz.IsAuthorizedToView(t.users, actor, target) {
		return fmt.Sprintf("Access denied. You do not have permission to view information about %s.", target), nil
	}

	if !isVacationDaysInfoType(req.InfoType) {
		return fmt.Sprintf("Sorry, I don't have information about %s for user %s.", req.InfoType, target), nil
	}

	days, ok, err := t.balances.GetUserVacationDays(target)
	if err != nil {
		return "", fmt.Errorf("looking up vacation balance: %w", err)
	}
	if !ok {
		return fmt.Sprintf("Sorry, I couldn't find vacation information for user %s.", target), nil
	}

	if strings.EqualFold(target, actor) {
		return fmt.Sprintf("You have %d vacation days available.", days), nil
	}
	return fmt.Sprintf("%s has %d vacation days available.", target, days), nil
}

func isVacationDaysInfoType(infoType string) bool {
	switch strings.ToLower(strings.TrimSpace(infoType)) {
	case "vacation_days", "vacation days", "vacationdays":
		return true
	default:
		return false
	}
}
