package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openportal/portald/pkg/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const usersYAML = `users:
  - username: john
    role: user
  - username: admin
    role: admin
`

func TestUserFile_GetUserByUsernameIsCaseInsensitive(t *testing.T) {
	users := NewUserFile(writeFile(t, "users.yaml", usersYAML))

	user, ok, err := users.GetUserByUsername("JOHN")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "john", user.Username)
	require.Equal(t, types.RoleUser, user.Role)
}

func TestUserFile_GetUserByUsernameMissing(t *testing.T) {
	users := NewUserFile(writeFile(t, "users.yaml", usersYAML))

	_, ok, err := users.GetUserByUsername("nobody")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestUserFile_AddUserPersistsLowercased(t *testing.T) {
	users := NewUserFile(writeFile(t, "users.yaml", usersYAML))

	added, err := users.AddUser("Alice", "")
	require.NoError(t, err)
	require.True(t, added)

	user, ok, err := users.GetUserByUsername("alice")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, types.RoleUser, user.Role)
}

func TestUserFile_AddUserRejectsCaseInsensitiveDuplicate(t *testing.T) {
	users := NewUserFile(writeFile(t, "users.yaml", usersYAML))

	added, err := users.AddUser("JOHN", "admin")
	require.NoError(t, err)
	require.False(t, added)

	all, err := users.GetAllUsers()
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestVacationRequestFile_MissingFileReadsEmpty(t *testing.T) {
	requests := NewVacationRequestFile(filepath.Join(t.TempDir(), "absent.yaml"))

	all, err := requests.GetAllVacationRequests()
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestVacationRequestFile_CreateAssignsNextID(t *testing.T) {
	path := writeFile(t, "vacation-requests.yaml", `vacation_requests:
  - id: 3
    employeeName: John Doe
    startDate: "2023-06-15"
    endDate: "2023-06-22"
    status: approved
  - id: 7
    employeeName: Alice Smith
    startDate: "2023-07-10"
    endDate: "2023-07-15"
    status: pending
  - id: 2
    employeeName: Bob Johnson
    startDate: "2023-08-01"
    endDate: "2023-08-14"
    status: rejected
`)
	requests := NewVacationRequestFile(path)

	require.NoError(t, requests.CreateNewVacationRequest("alice", "2024-01-02", "2024-01-05"))

	all, err := requests.GetAllVacationRequests()
	require.NoError(t, err)
	require.Len(t, all, 4)
	created := all[3]
	require.Equal(t, 8, created.ID)
	require.Equal(t, "alice", created.EmployeeName)
	require.Equal(t, types.StatusPending, created.Status)
}

func TestVacationRequestFile_CreateIntoEmptyStoreStartsAtOne(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vacation-requests.yaml")
	requests := NewVacationRequestFile(path)

	require.NoError(t, requests.CreateNewVacationRequest("john", "2024-03-01", "2024-03-03"))

	all, err := requests.GetAllVacationRequests()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, 1, all[0].ID)
}

func TestVacationDaysFile_LookupIsCaseInsensitive(t *testing.T) {
	days := NewVacationDaysFile(writeFile(t, "vacation-days.csv", "username,vacation_days\njohn,15\nalice,22\n"))

	got, ok, err := days.GetUserVacationDays("Alice")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 22, got)
}

func TestVacationDaysFile_AbsentUserIsNotZero(t *testing.T) {
	days := NewVacationDaysFile(writeFile(t, "vacation-days.csv", "username,vacation_days\njohn,15\n"))

	_, ok, err := days.GetUserVacationDays("ghost")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVacationDaysFile_BadNumberIsAnError(t *testing.T) {
	days := NewVacationDaysFile(writeFile(t, "vacation-days.csv", "username,vacation_days\njohn,many\n"))

	_, _, err := days.GetUserVacationDays("john")
	require.Error(t, err)
}

func TestPolicyFile_ReadsTopicAndText(t *testing.T) {
	policies := NewPolicyFile(writeFile(t, "hr-policies.csv",
		"topic,text\nvacation,\"Employees receive 25 days, accrued monthly.\"\nsick leave,Notify your manager before 10am.\n"))

	all, err := policies.GetAllPolicies()
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "vacation", all[0].Topic)
	require.Contains(t, all[0].Text, "25 days")
	require.Equal(t, "sick leave", all[1].Topic)
}

func TestPolicyFile_MissingFileIsAnError(t *testing.T) {
	policies := NewPolicyFile(filepath.Join(t.TempDir(), "absent.csv"))

	_, err := policies.GetAllPolicies()
	require.Error(t, err)
}
