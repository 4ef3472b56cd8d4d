package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/openportal/portald/internal/authz"
	"github.com/openportal/portald/internal/store"
)

// ToolVacationRequest is the contract name of the vacation submission tool.
const ToolVacationRequest = "submit_vacation_request"

const (
	invalidStartDateMessage = "Invalid start date format. Please use YYYY-MM-DD format (e.g., 2023-06-15)."
	invalidEndDateMessage   = "Invalid end date format. Please use YYYY-MM-DD format (e.g., 2023-06-22)."
	missingEndDateMessage   = "Either end date or duration with unit must be provided."
	dateRangeMessage        = "The end date must be after the start date."
	saveFailedMessage       = "Failed to save the vacation request. Please try again later."
)

// VacationSubmission validates and persists new vacation requests. The
// checks run in a fixed order and fail fast; every failure is a plain
// descriptive string shown directly to the end user.
type VacationSubmission struct {
	users    store.Users
	requests store.VacationRequests
	logger   zerolog.Logger
}

// NewVacationSubmission creates the vacation request tool.
func NewVacationSubmission(users store.Users, requests store.VacationRequests, logger zerolog.Logger) *VacationSubmission {
	return &VacationSubmission{
		users:    users,
		requests: requests,
		logger:   logger.With().Str("component", "vacation-request-tool").Logger(),
	}
}

// Name implements Handler.
func (t *VacationSubmission) Name() string {
	return ToolVacationRequest
}

// Handle implements Handler.
func (t *VacationSubmission) Handle(_ context.Context, args map[string]any, actor string) (string, error) {
	var req struct {
		Username     string   `json:"username"`
		StartDate    string   `json:"startDate"`
		EndDate      string   `json:"endDate"`
		Duration     *float64 `json:"duration"`
		DurationUnit string   `json:"durationUnit"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return "", err
	}

	target := strings.TrimSpace(req.Username)
	if target == "" {
		target = actor
	}

	if !isDateFormat(req.StartDate) {
		return invalidStartDateMessage, nil
	}

	endDate := req.EndDate
	if endDate == "" {
		if req.Duration == nil || strings.TrimSpace(req.DurationUnit) == "" {
			return missingEndDateMessage, nil
		}
		endDate = calculateEndDate(req.StartDate, int(*req.Duration), req.DurationUnit)
	}

	if !isDateFormat(endDate) {
		return invalidEndDateMessage, nil
	}

	if endBeforeStart(req.StartDate, endDate) {
		return dateRangeMessage, nil
	}

	if !authz.IsAuthorizedToSubmit(t.users, actor, target) {
		return fmt.Sprintf("Access denied. You do not have permission to submit vacation requests for %s.", target), nil
	}

	// The registry carries no richer profile than the username, so the
	// display name falls back to the target string for unregistered users.
	employeeName := target
	if user, ok, err := t.users.GetUserByUsername(target); err == nil && ok {
		employeeName = user.Username
	}

	if err := t.requests.CreateNewVacationRequest(employeeName, req.StartDate, endDate); err != nil {
		t.logger.Error().Err(err).Str("target", target).Msg("persisting vacation request failed")
		return saveFailedMessage, nil
	}

	return fmt.Sprintf("Vacation request for %s from %s to %s has been submitted successfully. Status: pending",
		target, req.StartDate, endDate), nil
}
