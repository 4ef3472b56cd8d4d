package store

import (
	"fmt"
	"strings"

	"github.com/openportal/portald/pkg/types"
)

// PolicyFile is a CSV-backed HR policy store. The file has a header row
// with topic and text columns.
type PolicyFile struct {
	path string
}

// NewPolicyFile creates a policy store backed by a CSV file.
func NewPolicyFile(path string) *PolicyFile {
	return &PolicyFile{path: path}
}

// GetAllPolicies implements Policies.
func (s *PolicyFile) GetAllPolicies() ([]types.HRPolicy, error) {
	rows, err := readCSV(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading HR policies: %w", err)
	}

	policies := make([]types.HRPolicy, 0, len(rows))
	for _, row := range rows {
		policies = append(policies, types.HRPolicy{
			Topic: strings.TrimSpace(row["topic"]),
			Text:  row["text"],
		})
	}
	return policies, nil
}
