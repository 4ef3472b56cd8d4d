package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/openportal/portald/internal/store"
	"github.com/openportal/portald/pkg/types"
)

// ToolHRPolicy is the contract name of the HR policy lookup tool.
const ToolHRPolicy = "hr_policy_query"

const (
	policyUnavailableMessage = "Sorry, HR policy data is currently unavailable."
	policyNotFoundMessage    = "I couldn't find specific information about that in our HR policies. " +
		"Please try asking in a different way or contact HR for more information."
)

// HRPolicyLookup answers free-text HR policy questions from the policy
// store using a deterministic matching waterfall: exact topic, substring
// in topic, substring in body text, fixed not-found message.
type HRPolicyLookup struct {
	policies store.Policies
}

// NewHRPolicyLookup creates the HR policy lookup tool.
func NewHRPolicyLookup(policies store.Policies) *HRPolicyLookup {
	return &HRPolicyLookup{policies: policies}
}

// Name implements Handler.
func (t *HRPolicyLookup) Name() string {
	return ToolHRPolicy
}

// Handle implements Handler. The returned excerpts are raw reference
// material; the orchestrator feeds them through an answer-synthesis model
// call before they reach the user.
func (t *HRPolicyLookup) Handle(_ context.Context, args map[string]any, _ string) (string, error) {
	var req struct {
		Query string `json:"query"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return "", err
	}

	policies, err := t.policies.GetAllPolicies()
	if err != nil {
		return "", fmt.Errorf("loading HR policies: %w", err)
	}
	return findRelevantPolicies(policies, req.Query), nil
}

func findRelevantPolicies(policies []types.HRPolicy, query string) string {
	if len(policies) == 0 {
		return policyUnavailableMessage
	}

	lowerQuery := strings.ToLower(query)

	for _, policy := range policies {
		if strings.ToLower(policy.Topic) == lowerQuery {
			return renderPolicy(policy)
		}
	}

	var topicMatches []string
	for _, policy := range policies {
		if strings.Contains(strings.ToLower(policy.Topic), lowerQuery) {
			topicMatches = append(topicMatches, renderPolicy(policy))
		}
	}
	if len(topicMatches) > 0 {
		return strings.Join(topicMatches, "\n\n")
	}

	var textMatches []string
	for _, policy := range policies {
		if strings.Contains(strings.ToLower(policy.Text), lowerQuery) {
			textMatches = append(textMatches, renderPolicy(policy))
		}
	}
	if len(textMatches) > 0 {
		return strings.Join(textMatches, "\n\n")
	}

	return policyNotFoundMessage
}

func renderPolicy(policy types.HRPolicy) string {
	return fmt.Sprintf("%s: %s", strings.ToUpper(policy.Topic), policy.Text)
}
