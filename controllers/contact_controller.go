package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/animeinsights/blog/utils"
)

// ContactController accepts contact form submissions.
type ContactController struct{}

// NewContactController creates a ContactController.
func NewContactController() *ContactController {
	return &ContactController{}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// Submit validates and records a contact form submission. Delivery is left to
// operators tailing the log; no mail transport is configured.
func (c *ContactController) Submit(ctx *gin.Context) {
	var req contactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Name, email, and message are required",
		})
		return
	}

	if utils.Sugar != nil {
		utils.Sugar.Infow("contact form submission",
			"name", req.Name,
			"email", req.Email,
			"subject", req.Subject,
			"message", req.Message,
		)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Thank you for your message! We'll get back to you soon.",
	})
}
