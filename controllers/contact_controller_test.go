package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newContactRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/contact", NewContactController().Submit)
	return r
}

func TestContactSubmit(t *testing.T) {
	r := newContactRouter()
	w := postJSON(t, r, "/api/contact", map[string]string{
		"name":    "Rin",
		"email":   "rin@example.com",
		"subject": "hi",
		"message": "great blog",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"success":true`)
}

func TestContactSubmitValidation(t *testing.T) {
	r := newContactRouter()
	tests := []map[string]string{
		{"email": "rin@example.com", "message": "m"},
		{"name": "Rin", "message": "m"},
		{"name": "Rin", "email": "not-an-email", "message": "m"},
		{"name": "Rin", "email": "rin@example.com"},
	}
	for _, body := range tests {
		w := postJSON(t, r, "/api/contact", body)
		require.Equal(t, http.StatusBadRequest, w.Code, "body: %v", body)
	}
}
