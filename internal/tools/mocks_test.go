package tools

import (
	"github.com/openportal/portald/pkg/types"
)

type mockUsers struct {
	getUserFn func(name string) (types.User, bool, error)
	getAllFn  func() ([]types.User, error)
	addUserFn func(name, role string) (bool, error)
}

func (m *mockUsers) GetUserByUsername(name string) (types.User, bool, error) {
	if m.getUserFn != nil {
		return m.getUserFn(name)
	}
	return types.User{}, false, nil
}

func (m *mockUsers) GetAllUsers() ([]types.User, error) {
	if m.getAllFn != nil {
		return m.getAllFn()
	}
	return nil, nil
}

func (m *mockUsers) AddUser(name, role string) (bool, error) {
	if m.addUserFn != nil {
		return m.addUserFn(name, role)
	}
	return false, nil
}

func registryOf(users ...types.User) *mockUsers {
	return &mockUsers{getUserFn: func(name string) (types.User, bool, error) {
		for _, user := range users {
			if user.Username == name {
				return user, true, nil
			}
		}
		return types.User{}, false, nil
	}}
}

type mockVacationRequests struct {
	getAllFn func() ([]types.VacationRequest, error)
	createFn func(employeeName, startDate, endDate string) error
}

func (m *mockVacationRequests) GetAllVacationRequests() ([]types.VacationRequest, error) {
	if m.getAllFn != nil {
		return m.getAllFn()
	}
	return nil, nil
}

func (m *mockVacationRequests) CreateNewVacationRequest(employeeName, startDate, endDate string) error {
	if m.createFn != nil {
		return m.createFn(employeeName, startDate, endDate)
	}
	return nil
}

type mockVacationDays struct {
	getFn func(name string) (int, bool, error)
}

func (m *mockVacationDays) GetUserVacationDays(name string) (int, bool, error) {
	if m.getFn != nil {
		return m.getFn(name)
	}
	return 0, false, nil
}

type mockPolicies struct {
	getAllFn func() ([]types.HRPolicy, error)
}

func (m *mockPolicies) GetAllPolicies() ([]types.HRPolicy, error) {
	if m.getAllFn != nil {
		return m.getAllFn()
	}
	return nil, nil
}
