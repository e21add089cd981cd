package http

import (
	"bytes"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/user-service/internal/users/adapters/identity"
	"github.com/Apurer/user-service/internal/users/adapters/memory"
	"github.com/Apurer/user-service/internal/users/application"
	"github.com/Apurer/user-service/internal/users/domain"
)

type fieldError struct {
	Message string   `json:"message"`
	Path    []any    `json:"path"`
	Keys    []string `json:"keys"`
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []fieldError    `json:"errors"`
}

const seededID = "0b2f7b6c-7a70-4c4f-8e6b-2d58a2b0a3a1"

func setup(t *testing.T) (*gin.Engine, *memory.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := memory.NewRepository()
	svc := application.NewService(repo, identity.Generator{})
	return NewRouter(NewUserAPI(svc)), repo
}

func seedUser(t *testing.T, repo *memory.Repository, emails ...string) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:        seededID,
		FirstName: "John",
		LastName:  "Doe",
		Emails:    emails,
		DOB:       "1990-01-01",
	}
	require.NoError(t, repo.Create(t.Context(), user))
	return user
}

func perform(t *testing.T, router *gin.Engine, method, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *nethttp.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, target, bytes.NewReader(encoded))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func decodeUser(t *testing.T, data json.RawMessage) domain.User {
	t.Helper()
	var user domain.User
	require.NoError(t, json.Unmarshal(data, &user))
	return user
}

func TestCreateUser_GeneratesID(t *testing.T) {
	router, _ := setup(t)

	rec, env := perform(t, router, nethttp.MethodPost, "/users", map[string]any{
		"firstName": "John",
		"lastName":  "Doe",
		"emails":    []string{"john@x.com"},
		"dob":       "1990-01-01",
	})

	require.Equal(t, nethttp.StatusCreated, rec.Code)
	assert.Equal(t, "success", env.Status)
	user := decodeUser(t, env.Data)
	assert.NoError(t, uuid.Validate(user.ID))
	assert.Equal(t, "John", user.FirstName)
}

func TestCreateThenGet_RoundTrip(t *testing.T) {
	router, _ := setup(t)

	payload := map[string]any{
		"id":        seededID,
		"firstName": "John",
		"lastName":  "Doe",
		"emails":    []string{"john@x.com"},
		"dob":       "1990-01-01",
	}
	rec, _ := perform(t, router, nethttp.MethodPost, "/users", payload)
	require.Equal(t, nethttp.StatusCreated, rec.Code)

	rec, env := perform(t, router, nethttp.MethodGet, "/users/"+seededID, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	user := decodeUser(t, env.Data)
	assert.Equal(t, seededID, user.ID)
	assert.Equal(t, []string{"john@x.com"}, user.Emails)
	assert.Equal(t, "1990-01-01", user.DOB)
}

func TestCreateUser_DuplicateID(t *testing.T) {
	router, repo := setup(t)
	seedUser(t, repo, "john@x.com")

	rec, env := perform(t, router, nethttp.MethodPost, "/users", map[string]any{
		"id":        seededID,
		"firstName": "John",
		"lastName":  "Doe",
		"emails":    []string{"john@x.com"},
		"dob":       "1990-01-01",
	})

	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "A user with the same id already exists", env.Message)
}

func TestCreateUser_MalformedJSON(t *testing.T) {
	router, _ := setup(t)

	req := httptest.NewRequest(nethttp.MethodPost, "/users", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "Invalid payload", env.Message)
}

func TestGetUser_NotFound(t *testing.T) {
	router, _ := setup(t)

	rec, env := perform(t, router, nethttp.MethodGet, "/users/unknown", nil)
	require.Equal(t, nethttp.StatusNotFound, rec.Code)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "User not found", env.Message)
}

func TestUpdateUser_InvalidEmail(t *testing.T) {
	router, repo := setup(t)
	seedUser(t, repo, "john@x.com")

	rec, env := perform(t, router, nethttp.MethodPut, "/users/"+seededID, map[string]any{
		"id":        seededID,
		"firstName": "John",
		"lastName":  "Doe",
		"emails":    []string{"invalid-email"},
		"dob":       "1990-01-01",
	})

	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid payload", env.Message)
	require.NotEmpty(t, env.Errors)
	assert.Contains(t, env.Errors, fieldError{
		Message: "Invalid email format",
		Path:    []any{"emails", float64(0)},
	})
}

func TestUpdateUser_EmailRemovalRejected(t *testing.T) {
	router, repo := setup(t)
	seedUser(t, repo, "a@x.com", "b@x.com")

	rec, env := perform(t, router, nethttp.MethodPut, "/users/"+seededID, map[string]any{
		"id":        seededID,
		"firstName": "John",
		"lastName":  "Doe",
		"emails":    []string{"a@x.com"},
		"dob":       "1990-01-01",
	})

	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Equal(t, "Deleting an email address is not allowed", env.Message)
}

func TestUpdateUser_EmailAdditionAllowed(t *testing.T) {
	router, repo := setup(t)
	seedUser(t, repo, "a@x.com", "b@x.com")

	rec, env := perform(t, router, nethttp.MethodPut, "/users/"+seededID, map[string]any{
		"id":        seededID,
		"firstName": "John",
		"lastName":  "Doe",
		"emails":    []string{"a@x.com", "b@x.com", "c@x.com"},
		"dob":       "1990-01-01",
	})

	require.Equal(t, nethttp.StatusOK, rec.Code)
	user := decodeUser(t, env.Data)
	assert.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com"}, user.Emails)
}

func TestUpdateUser_IDMismatch(t *testing.T) {
	router, repo := setup(t)
	seedUser(t, repo, "john@x.com")

	rec, env := perform(t, router, nethttp.MethodPut, "/users/"+seededID, map[string]any{
		"id":        "9f3a1f48-6c38-4f11-9a34-07a4a2f1c6de",
		"firstName": "John",
		"lastName":  "Doe",
		"emails":    []string{"john@x.com"},
		"dob":       "1990-01-01",
	})

	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Equal(t, "User ID in payload does not match ID in URL", env.Message)
}

func TestUpdateUser_NotFound(t *testing.T) {
	router, _ := setup(t)

	rec, env := perform(t, router, nethttp.MethodPut, "/users/"+seededID, map[string]any{
		"id":        seededID,
		"firstName": "John",
		"lastName":  "Doe",
		"emails":    []string{"john@x.com"},
		"dob":       "1990-01-01",
	})

	require.Equal(t, nethttp.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", env.Message)
}

func TestDeleteUser_Idempotent(t *testing.T) {
	router, repo := setup(t)
	seedUser(t, repo, "john@x.com")

	rec, _ := perform(t, router, nethttp.MethodDelete, "/users/"+seededID, nil)
	require.Equal(t, nethttp.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())

	rec, _ = perform(t, router, nethttp.MethodDelete, "/users/"+seededID, nil)
	require.Equal(t, nethttp.StatusNoContent, rec.Code)
}

func TestRouteNotFound(t *testing.T) {
	router, _ := setup(t)

	rec, env := perform(t, router, nethttp.MethodGet, "/nope", nil)
	require.Equal(t, nethttp.StatusNotFound, rec.Code)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "Route not found", env.Message)
}
