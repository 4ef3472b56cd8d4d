package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/openportal/portald/pkg/types"
)

// VacationRequestFile is a YAML-backed vacation-request store.
type VacationRequestFile struct {
	path string
}

type vacationRequestDocument struct {
	VacationRequests []types.VacationRequest `yaml:"vacation_requests"`
}

// NewVacationRequestFile creates a store backed by a vacation-requests
// YAML file. A missing file reads as an empty store.
func NewVacationRequestFile(path string) *VacationRequestFile {
	return &VacationRequestFile{path: path}
}

// GetAllVacationRequests implements VacationRequests.
func (s *VacationRequestFile) GetAllVacationRequests() ([]types.VacationRequest, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.VacationRequests, nil
}

// CreateNewVacationRequest implements VacationRequests. The new request
// gets ID max(existing)+1 (1 for an empty store) and status pending.
func (s *VacationRequestFile) CreateNewVacationRequest(employeeName, startDate, endDate string) error {
	doc, err := s.load()
	if err != nil {
		return err
	}

	doc.VacationRequests = append(doc.VacationRequests, types.VacationRequest{
		ID:           nextRequestID(doc.VacationRequests),
		EmployeeName: employeeName,
		StartDate:    startDate,
		EndDate:      endDate,
		Status:       types.StatusPending,
	})

	return s.save(doc)
}

func nextRequestID(requests []types.VacationRequest) int {
	next := 1
	for _, request := range requests {
		if request.ID >= next {
			next = request.ID + 1
		}
	}
	return next
}

func (s *VacationRequestFile) load() (vacationRequestDocument, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return vacationRequestDocument{}, nil
	}
	if err != nil {
		return vacationRequestDocument{}, fmt.Errorf("reading vacation requests: %w", err)
	}
	var doc vacationRequestDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return vacationRequestDocument{}, fmt.Errorf("decoding vacation requests: %w", err)
	}
	return doc, nil
}

func (s *VacationRequestFile) save(doc vacationRequestDocument) error {
	encoded, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding vacation requests: %w", err)
	}
	if err := os.WriteFile(s.path, encoded, 0o644); err != nil {
		return fmt.Errorf("writing vacation requests: %w", err)
	}
	return nil
}
