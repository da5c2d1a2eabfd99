package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/config"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-portal-backend/internal/repository/memory"
	absenceService "github.com/cmlabs-hris/hr-portal-backend/internal/service/absence"
	authService "github.com/cmlabs-hris/hr-portal-backend/internal/service/auth"
	employeeService "github.com/cmlabs-hris/hr-portal-backend/internal/service/employee"
	feedbackService "github.com/cmlabs-hris/hr-portal-backend/internal/service/feedback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestAccessExp = "1h"
	handlerTestSecret    = "test-secret-key-for-jwt"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	employees := memory.NewEmployeeRepository(store)
	jwtService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, "hr-portal", "hr-portal-clients", jwt.NewMemoryRevocationStore())

	cfg := &config.Config{App: config.AppConfig{Env: "test", AllowedOrigins: []string{"http://localhost:3000"}}}
	router := NewRouter(cfg, jwtService, employees, Handlers{
		Auth:     NewAuthHandler(authService.NewAuthService(employees, jwtService)),
		Employee: NewEmployeeHandler(employeeService.NewEmployeeService(employees)),
		Absence: NewAbsenceHandler(absenceService.NewAbsenceService(
			memory.NewTxManager(store), memory.NewAbsenceRequestRepository(store), employees,
		)),
		Feedback: NewFeedbackHandler(feedbackService.NewFeedbackService(memory.NewFeedbackRepository(store), employees)),
	})
	return &testServer{t: t, handler: router}
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)

	var env envelope
	if rr.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	}
	return rr.Code, env
}

type session struct {
	ID    int64
	Token string
}

func (s *testServer) register(first, last, role string) session {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"first_name":       first,
		"last_name":        last,
		"email":            fmt.Sprintf("%s.%s@company.com", first, last),
		"password":         "password123",
		"confirm_password": "password123",
		"role":             role,
	})
	require.Equal(s.t, http.StatusCreated, code, env.Message)

	var data struct {
		Token string `json:"token"`
		User  struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	return session{ID: data.User.ID, Token: data.Token}
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func TestAuthHandler_LoginValidateLogout(t *testing.T) {
	s := newTestServer(t)
	jane := s.register("Jane", "Smith", "")

	code, env := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "JANE.SMITH@company.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)

	code, env = s.do(http.MethodPost, "/api/v1/auth/validate", "", map[string]string{"token": login.Token})
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"is_valid":true}`, string(env.Data))

	code, _ = s.do(http.MethodPost, "/api/v1/auth/logout", login.Token, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, "/api/v1/employee", login.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	code, env = s.do(http.MethodPost, "/api/v1/auth/validate", "", map[string]string{"token": login.Token})
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"is_valid":false}`, string(env.Data))

	// The registration token is independent of the revoked one.
	code, _ = s.do(http.MethodGet, "/api/v1/employee", jane.Token, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestAuthHandler_Errors(t *testing.T) {
	s := newTestServer(t)
	s.register("Jane", "Smith", "")

	code, env := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "jane.smith@company.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid email or password", env.Error.Message)

	code, _ = s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"first_name": "Jane", "last_name": "Smith", "email": "jane.smith@company.com",
		"password": "password123", "confirm_password": "password123",
	})
	assert.Equal(t, http.StatusConflict, code)

	code, env = s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"first_name": "Bob", "email": "not-an-email", "password": "pw",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Error.Details, "email")
	assert.Contains(t, env.Error.Details, "last_name")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/v1/employee", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Authorization token is required", env.Error.Message)

	code, env = s.do(http.MethodGet, "/api/v1/employee", "not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid or expired token", env.Error.Message)
}

func TestEmployeeHandler_ProfileViews(t *testing.T) {
	s := newTestServer(t)
	jane := s.register("Jane", "Smith", "")
	john := s.register("John", "Doe", "manager")
	mike := s.register("Mike", "Johnson", "")

	// A co-worker gets the limited view.
	code, env := s.do(http.MethodGet, fmt.Sprintf("/api/v1/employee/%d", jane.ID), mike.Token, nil)
	require.Equal(t, http.StatusOK, code)
	var profile map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, true, profile["is_limited_view"])
	assert.NotContains(t, profile, "email")
	assert.Equal(t, "Not Assigned", profile["department"])

	// A manager gets the full view.
	code, env = s.do(http.MethodGet, fmt.Sprintf("/api/v1/employee/%d", jane.ID), john.Token, nil)
	require.Equal(t, http.StatusOK, code)
	profile = nil
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, false, profile["is_limited_view"])
	assert.Equal(t, "jane.smith@company.com", profile["email"])

	update := map[string]any{"first_name": "Jane", "last_name": "Smith", "email": "jane.smith@company.com", "team": "Platform"}
	code, _ = s.do(http.MethodPut, fmt.Sprintf("/api/v1/employee/%d", jane.ID), mike.Token, update)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(http.MethodPut, fmt.Sprintf("/api/v1/employee/%d", jane.ID), jane.Token, update)
	require.Equal(t, http.StatusOK, code)
	profile = nil
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "Platform", profile["team"])

	code, _ = s.do(http.MethodGet, "/api/v1/employee/9999", jane.Token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodGet, "/api/v1/employee/abc", jane.Token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodGet, "/api/v1/employee", jane.Token, nil)
	require.Equal(t, http.StatusOK, code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 3)
}

func TestAbsenceHandler_Lifecycle(t *testing.T) {
	s := newTestServer(t)
	jane := s.register("Jane", "Smith", "")
	john := s.register("John", "Doe", "manager")

	body := map[string]string{
		"type":       "vacation",
		"start_date": futureDate(10),
		"end_date":   futureDate(12),
		"reason":     "Family trip to the coast",
	}
	code, env := s.do(http.MethodPost, "/api/v1/absence", jane.Token, body)
	require.Equal(t, http.StatusCreated, code, env.Message)
	var created struct {
		ID             int64  `json:"id"`
		Status         string `json:"status"`
		DurationInDays int    `json:"duration_in_days"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, 3, created.DurationInDays)

	// Overlapping dates are rejected.
	overlap := map[string]string{
		"type": "personal_leave", "start_date": futureDate(12), "end_date": futureDate(14), "reason": "Moving to a new flat",
	}
	code, env = s.do(http.MethodPost, "/api/v1/absence", jane.Token, overlap)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Error.Message, "an active absence request already covers these dates")

	// Only managers see the approval queue or decide.
	code, _ = s.do(http.MethodGet, "/api/v1/absence/pending-approvals", jane.Token, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(http.MethodPut, fmt.Sprintf("/api/v1/absence/%d/approve", created.ID), jane.Token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(http.MethodGet, "/api/v1/absence/pending-approvals", john.Token, nil)
	require.Equal(t, http.StatusOK, code)
	var pending []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &pending))
	assert.Len(t, pending, 1)

	code, env = s.do(http.MethodPut, fmt.Sprintf("/api/v1/absence/%d/approve", created.ID), john.Token,
		map[string]string{"approval_notes": "Enjoy"})
	require.Equal(t, http.StatusOK, code)
	var approved struct {
		Status         string `json:"status"`
		ApprovedByName string `json:"approved_by_name"`
		ApprovalNotes  string `json:"approval_notes"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &approved))
	assert.Equal(t, "approved", approved.Status)
	assert.Equal(t, "John Doe", approved.ApprovedByName)
	assert.Equal(t, "Enjoy", approved.ApprovalNotes)

	// A decided request cannot be decided again or cancelled.
	code, _ = s.do(http.MethodPut, fmt.Sprintf("/api/v1/absence/%d/decline", created.ID), john.Token, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/absence/%d", created.ID), jane.Token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// The approved calendar carries no reasons.
	code, env = s.do(http.MethodGet, "/api/v1/absence/approved", jane.Token, nil)
	require.Equal(t, http.StatusOK, code)
	var calendar []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &calendar))
	require.Len(t, calendar, 1)
	assert.NotContains(t, calendar[0], "reason")

	code, _ = s.do(http.MethodGet, fmt.Sprintf("/api/v1/absence/%d", created.ID), jane.Token, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodGet, "/api/v1/absence/9999", jane.Token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAbsenceHandler_Cancel(t *testing.T) {
	s := newTestServer(t)
	jane := s.register("Jane", "Smith", "")
	mike := s.register("Mike", "Johnson", "")

	code, env := s.do(http.MethodPost, "/api/v1/absence", jane.Token, map[string]string{
		"type": "sick_leave", "start_date": futureDate(1), "end_date": futureDate(1), "reason": "Dentist appointment",
	})
	require.Equal(t, http.StatusCreated, code)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	// Someone else's request looks like a missing one.
	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/absence/%d", created.ID), mike.Token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/absence/%d", created.ID), jane.Token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, "/api/v1/absence/my-requests", jane.Token, nil)
	require.Equal(t, http.StatusOK, code)
	var mine []struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, "cancelled", mine[0].Status)

	code, _ = s.do(http.MethodDelete, "/api/v1/absence/9999", jane.Token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAbsenceHandler_InvalidInput(t *testing.T) {
	s := newTestServer(t)
	jane := s.register("Jane", "Smith", "")

	code, env := s.do(http.MethodPost, "/api/v1/absence", jane.Token, map[string]string{
		"type": "bereavement", "start_date": futureDate(3), "end_date": futureDate(4), "reason": "Family matters",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Error.Details, "type")

	code, _ = s.do(http.MethodPost, "/api/v1/absence", jane.Token, map[string]string{
		"type": "vacation", "start_date": futureDate(5), "end_date": futureDate(3), "reason": "Family trip to the coast",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/api/v1/absence", jane.Token, map[string]string{
		"type": "vacation", "start_date": futureDate(-3), "end_date": futureDate(3), "reason": "Family trip to the coast",
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestFeedbackHandler(t *testing.T) {
	s := newTestServer(t)
	jane := s.register("Jane", "Smith", "")
	john := s.register("John", "Doe", "manager")
	mike := s.register("Mike", "Johnson", "")

	code, _ := s.do(http.MethodPost, "/api/v1/feedback", jane.Token, map[string]any{
		"to_employee_id": jane.ID, "content": "Great work",
	})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodPost, "/api/v1/feedback", jane.Token, map[string]any{
		"to_employee_id": 9999, "content": "Great work",
	})
	assert.Equal(t, http.StatusNotFound, code)

	code, env := s.do(http.MethodPost, "/api/v1/feedback", mike.Token, map[string]any{
		"to_employee_id": jane.ID, "content": "Thanks for the code review", "is_anonymous": true, "type": "collaboration",
	})
	require.Equal(t, http.StatusCreated, code)
	var created struct {
		ID             int64  `json:"id"`
		Rating         int    `json:"rating"`
		FromEmployeeID *int64 `json:"from_employee_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, 5, created.Rating)
	require.NotNil(t, created.FromEmployeeID)
	assert.Equal(t, mike.ID, *created.FromEmployeeID)

	// The recipient does not learn the sender.
	code, env = s.do(http.MethodGet, fmt.Sprintf("/api/v1/feedback/%d", created.ID), jane.Token, nil)
	require.Equal(t, http.StatusOK, code)
	var detail map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "Anonymous", detail["from_employee_name"])
	assert.NotContains(t, detail, "from_employee_id")

	code, env = s.do(http.MethodGet, fmt.Sprintf("/api/v1/feedback/received/%d", jane.ID), jane.Token, nil)
	require.Equal(t, http.StatusOK, code)
	var received []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &received))
	require.Len(t, received, 1)
	assert.Equal(t, "Anonymous", received[0]["counterpart_name"])

	code, _ = s.do(http.MethodGet, fmt.Sprintf("/api/v1/feedback/received/%d", jane.ID), mike.Token, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(http.MethodGet, fmt.Sprintf("/api/v1/feedback/received/%d", jane.ID), john.Token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, fmt.Sprintf("/api/v1/feedback/given/%d", mike.ID), mike.Token, nil)
	require.Equal(t, http.StatusOK, code)
	var given []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &given))
	require.Len(t, given, 1)
	assert.Equal(t, "Jane Smith", given[0]["counterpart_name"])

	code, env = s.do(http.MethodGet, fmt.Sprintf("/api/v1/feedback/can-give/%d", jane.ID), jane.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"allowed":false}`, string(env.Data))

	code, env = s.do(http.MethodGet, fmt.Sprintf("/api/v1/feedback/can-view/%d", jane.ID), john.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"allowed":true}`, string(env.Data))
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	s.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "hr_portal_http_requests_total")
}
