package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/openportal/portald/pkg/types"
)

// VacationDaysFile is a CSV-backed vacation balance store. The file has a
// header row with username and vacation_days columns.
type VacationDaysFile struct {
	path string
}

// NewVacationDaysFile creates a balance store backed by a CSV file.
func NewVacationDaysFile(path string) *VacationDaysFile {
	return &VacationDaysFile{path: path}
}

// GetUserVacationDays implements VacationDays.
func (s *VacationDaysFile) GetUserVacationDays(name string) (int, bool, error) {
	balances, err := s.load()
	if err != nil {
		return 0, false, err
	}
	for _, balance := range balances {
		if strings.EqualFold(balance.Username, name) {
			return balance.VacationDays, true, nil
		}
	}
	return 0, false, nil
}

func (s *VacationDaysFile) load() ([]types.VacationBalance, error) {
	rows, err := readCSV(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading vacation balances: %w", err)
	}

	balances := make([]types.VacationBalance, 0, len(rows))
	for _, row := range rows {
		days, err := strconv.Atoi(strings.TrimSpace(row["vacation_days"]))
		if err != nil {
			return nil, fmt.Errorf("decoding vacation balances: bad vacation_days for %q: %w", row["username"], err)
		}
		balances = append(balances, types.VacationBalance{
			Username:     strings.TrimSpace(row["username"]),
			VacationDays: days,
		})
	}
	return balances, nil
}

// readCSV reads a header-row CSV file into one map per record.
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(record) {
				row[strings.TrimSpace(column)] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
