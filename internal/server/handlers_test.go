package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/openportal/portald/internal/config"
	"github.com/openportal/portald/pkg/types"
)

type mockUsers struct {
	getUserFn func(name string) (types.User, bool, error)
	allFn     func() ([]types.User, error)
	addFn     func(name, role string) (bool, error)
}

func (m *mockUsers) GetUserByUsername(name string) (types.User, bool, error) {
	return m.getUserFn(name)
}

func (m *mockUsers) GetAllUsers() ([]types.User, error) {
	return m.allFn()
}

func (m *mockUsers) AddUser(name, role string) (bool, error) {
	return m.addFn(name, role)
}

type mockRequests struct {
	allFn    func() ([]types.VacationRequest, error)
	createFn func(employeeName, startDate, endDate string) error
}

func (m *mockRequests) GetAllVacationRequests() ([]types.VacationRequest, error) {
	return m.allFn()
}

func (m *mockRequests) CreateNewVacationRequest(employeeName, startDate, endDate string) error {
	return m.createFn(employeeName, startDate, endDate)
}

type mockChatter struct {
	processFn func(ctx context.Context, message, username string) (string, error)
}

func (m *mockChatter) ProcessMessage(ctx context.Context, message, username string) (string, error) {
	return m.processFn(ctx, message, username)
}

func registryUsers() *mockUsers {
	registered := map[string]types.User{
		"john":  {Username: "john", Role: types.RoleUser},
		"admin": {Username: "admin", Role: types.RoleAdmin},
	}
	return &mockUsers{
		getUserFn: func(name string) (types.User, bool, error) {
			user, ok := registered[strings.ToLower(name)]
			return user, ok, nil
		},
		allFn: func() ([]types.User, error) { return nil, nil },
		addFn: func(name, role string) (bool, error) { return true, nil },
	}
}

func testConfig() config.Config {
	return config.Config{ChatRatePerMinute: 600, ChatRateBurst: 100}
}

func newTestServer(t *testing.T, users *mockUsers, requests *mockRequests, chatbot *mockChatter) *Server {
	t.Helper()

	if users == nil {
		users = registryUsers()
	}
	if requests == nil {
		requests = &mockRequests{
			allFn:    func() ([]types.VacationRequest, error) { return nil, nil },
			createFn: func(string, string, string) error { return nil },
		}
	}
	if chatbot == nil {
		chatbot = &mockChatter{
			processFn: func(context.Context, string, string) (string, error) {
				return "<div class=\"markdown-content\"><p>ok</p></div>", nil
			},
		}
	}
	return New(users, requests, chatbot, testConfig(), zerolog.Nop(), "test", "none", "today")
}

func doJSON(t *testing.T, server *Server, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range header {
		req.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	server.Router().ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestLogin_MissingUsernameIsBadRequest(t *testing.T) {
	server := newTestServer(t, nil, nil, nil)

	recorder := doJSON(t, server, http.MethodPost, "/api/login", `{}`, nil)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "Username is required", decodeBody(t, recorder)["error"])
}

func TestLogin_UnknownUserIsUnauthorized(t *testing.T) {
	server := newTestServer(t, nil, nil, nil)

	recorder := doJSON(t, server, http.MethodPost, "/api/login", `{"username":"mallory"}`, nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	body := decodeBody(t, recorder)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Username does not exist", body["message"])
}

func TestLogin_KnownUserSucceedsCaseInsensitively(t *testing.T) {
	server := newTestServer(t, nil, nil, nil)

	recorder := doJSON(t, server, http.MethodPost, "/api/login", `{"username":"John"}`, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	require.Equal(t, true, body["success"])
	require.Equal(t, "Login successful", body["message"])
}

func TestChat_MissingMessageIsBadRequest(t *testing.T) {
	server := newTestServer(t, nil, nil, nil)

	recorder := doJSON(t, server, http.MethodPost, "/api/chat", `{"message":"  "}`, nil)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "Message is required", decodeBody(t, recorder)["error"])
}

func TestChat_AbsentUsernameDefaultsToAnonymous(t *testing.T) {
	var gotUser string
	chatbot := &mockChatter{
		processFn: func(_ context.Context, message, username string) (string, error) {
			gotUser = username
			return "reply", nil
		},
	}
	server := newTestServer(t, nil, nil, chatbot)

	recorder := doJSON(t, server, http.MethodPost, "/api/chat", `{"message":"hi"}`, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "anonymous", gotUser)
	require.Equal(t, "reply", decodeBody(t, recorder)["message"])
}

func TestChat_ProcessingFaultIsInternalError(t *testing.T) {
	chatbot := &mockChatter{
		processFn: func(context.Context, string, string) (string, error) {
			return "", errors.New("model unavailable")
		},
	}
	server := newTestServer(t, nil, nil, chatbot)

	recorder := doJSON(t, server, http.MethodPost, "/api/chat", `{"message":"hi","username":"john"}`, nil)
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	require.Equal(t, "Failed to process message", decodeBody(t, recorder)["error"])
}

func TestChat_RateLimitKicksIn(t *testing.T) {
	users := registryUsers()
	chatbot := &mockChatter{
		processFn: func(context.Context, string, string) (string, error) { return "ok", nil },
	}
	requests := &mockRequests{
		allFn:    func() ([]types.VacationRequest, error) { return nil, nil },
		createFn: func(string, string, string) error { return nil },
	}
	cfg := config.Config{ChatRatePerMinute: 1, ChatRateBurst: 1}
	server := New(users, requests, chatbot, cfg, zerolog.Nop(), "test", "none", "today")

	first := doJSON(t, server, http.MethodPost, "/api/chat", `{"message":"hi"}`, nil)
	require.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, server, http.MethodPost, "/api/chat", `{"message":"hi again"}`, nil)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestVacationRequests_RequiresIdentity(t *testing.T) {
	server := newTestServer(t, nil, nil, nil)

	recorder := doJSON(t, server, http.MethodGet, "/api/vacation-requests", "", nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestVacationRequests_DeniedForNonAdmin(t *testing.T) {
	server := newTestServer(t, nil, nil, nil)

	recorder := doJSON(t, server, http.MethodGet, "/api/vacation-requests", "",
		map[string]string{portalUserHeader: "john"})
	require.Equal(t, http.StatusForbidden, recorder.Code)
	require.Equal(t, "Admin access required", decodeBody(t, recorder)["error"])
}

func TestVacationRequests_AdminSeesAllRequests(t *testing.T) {
	requests := &mockRequests{
		allFn: func() ([]types.VacationRequest, error) {
			return []types.VacationRequest{
				{ID: 1, EmployeeName: "John Doe", StartDate: "2023-06-15", EndDate: "2023-06-22", Status: types.StatusApproved},
				{ID: 2, EmployeeName: "Alice Smith", StartDate: "2023-07-10", EndDate: "2023-07-15", Status: types.StatusPending},
			}, nil
		},
		createFn: func(string, string, string) error { return nil },
	}
	server := newTestServer(t, nil, requests, nil)

	recorder := doJSON(t, server, http.MethodGet, "/api/vacation-requests", "",
		map[string]string{portalUserHeader: "admin"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var body types.VacationRequestList
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Requests, 2)
	require.Equal(t, "John Doe", body.Requests[0].EmployeeName)
}

func TestAddUser_DuplicateIsConflict(t *testing.T) {
	users := registryUsers()
	users.addFn = func(name, role string) (bool, error) { return false, nil }
	server := newTestServer(t, users, nil, nil)

	recorder := doJSON(t, server, http.MethodPost, "/api/users", `{"username":"John"}`,
		map[string]string{portalUserHeader: "admin"})
	require.Equal(t, http.StatusConflict, recorder.Code)
	require.Equal(t, "User john already exists", decodeBody(t, recorder)["error"])
}

func TestAddUser_CreatedReturnsTheNewUser(t *testing.T) {
	users := registryUsers()
	users.addFn = func(name, role string) (bool, error) {
		require.Equal(t, "carol", name)
		return true, nil
	}
	baseLookup := users.getUserFn
	users.getUserFn = func(name string) (types.User, bool, error) {
		if strings.EqualFold(name, "carol") {
			return types.User{Username: "carol", Role: types.RoleUser}, true, nil
		}
		return baseLookup(name)
	}
	server := newTestServer(t, users, nil, nil)

	recorder := doJSON(t, server, http.MethodPost, "/api/users", `{"username":"carol"}`,
		map[string]string{portalUserHeader: "admin"})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created types.User
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	require.Equal(t, "carol", created.Username)
	require.Equal(t, types.RoleUser, created.Role)
}

func TestHello_ReturnsGreeting(t *testing.T) {
	server := newTestServer(t, nil, nil, nil)

	recorder := doJSON(t, server, http.MethodGet, "/api/hello", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "Hello from the backend!", decodeBody(t, recorder)["message"])
}

func TestHealthAndVersion(t *testing.T) {
	server := newTestServer(t, nil, nil, nil)

	health := doJSON(t, server, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, health.Code)
	require.Equal(t, "ok", decodeBody(t, health)["status"])

	version := doJSON(t, server, http.MethodGet, "/version", "", nil)
	require.Equal(t, http.StatusOK, version.Code)
	require.Equal(t, "test", decodeBody(t, version)["version"])
}
