package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/animeinsights/blog/utils"
)

func postJSON(t *testing.T, r http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterIssuesTokenAndUser(t *testing.T) {
	users := newFakeUserRepo()
	r := newTestRouter(users, newFakePostRepo(), t.TempDir())

	w := postJSON(t, r, "/api/auth/register", map[string]string{
		"name":     "Rin",
		"email":    "Rin@Example.COM",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "User created successfully", resp.Message)
	require.Equal(t, "rin@example.com", resp.User.Email, "email must be normalized")

	claims, err := utils.ParseToken(resp.Token, testSecret)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, claims.UserID)
	require.Equal(t, "Rin", claims.Name)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	r := newTestRouter(users, newFakePostRepo(), t.TempDir())

	body := map[string]string{"name": "Rin", "email": "rin@example.com", "password": "secret123"}
	require.Equal(t, http.StatusCreated, postJSON(t, r, "/api/auth/register", body).Code)

	w := postJSON(t, r, "/api/auth/register", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "User already exists")
}

func TestRegisterValidation(t *testing.T) {
	r := newTestRouter(newFakeUserRepo(), newFakePostRepo(), t.TempDir())

	tests := []map[string]string{
		{"name": "R", "email": "rin@example.com", "password": "secret123"},
		{"name": "Rin", "email": "not-an-email", "password": "secret123"},
		{"name": "Rin", "email": "rin@example.com", "password": "short"},
		{"email": "rin@example.com", "password": "secret123"},
	}
	for _, body := range tests {
		w := postJSON(t, r, "/api/auth/register", body)
		require.Equal(t, http.StatusBadRequest, w.Code, "body: %v", body)
		require.Contains(t, w.Body.String(), "Validation failed")
	}
}

func TestLoginUniformInvalidCredentials(t *testing.T) {
	users := newFakeUserRepo()
	r := newTestRouter(users, newFakePostRepo(), t.TempDir())

	require.Equal(t, http.StatusCreated, postJSON(t, r, "/api/auth/register", map[string]string{
		"name": "Rin", "email": "rin@example.com", "password": "secret123",
	}).Code)

	unknown := postJSON(t, r, "/api/auth/login", map[string]string{
		"email": "nobody@example.com", "password": "secret123",
	})
	wrongPassword := postJSON(t, r, "/api/auth/login", map[string]string{
		"email": "rin@example.com", "password": "wrong-password",
	})

	require.Equal(t, http.StatusBadRequest, unknown.Code)
	require.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	// Identical body regardless of which check failed, to avoid enumeration.
	require.JSONEq(t, unknown.Body.String(), wrongPassword.Body.String())
	require.Contains(t, unknown.Body.String(), "Invalid credentials")
}

func TestLoginSuccess(t *testing.T) {
	users := newFakeUserRepo()
	r := newTestRouter(users, newFakePostRepo(), t.TempDir())

	require.Equal(t, http.StatusCreated, postJSON(t, r, "/api/auth/register", map[string]string{
		"name": "Rin", "email": "rin@example.com", "password": "secret123",
	}).Code)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"email": "RIN@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Contains(t, w.Body.String(), "Login successful")
}
