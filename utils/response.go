package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error writes the uniform JSON error body used by every handler.
func Error(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"message": message})
}

// ValidationFailed writes a 400 with field-level detail.
func ValidationFailed(ctx *gin.Context, errs []gin.H) {
	ctx.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": errs})
}

// ServerError masks unexpected failures behind a generic message while still
// surfacing the detail string, matching the public API contract.
func ServerError(ctx *gin.Context, err error) {
	if Sugar != nil {
		Sugar.Errorf("internal error on %s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
	}
	ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
}
