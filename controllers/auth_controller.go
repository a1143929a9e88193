package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/animeinsights/blog/models"
	"github.com/animeinsights/blog/repository"
	"github.com/animeinsights/blog/utils"
)

// AuthController handles registration and login.
type AuthController struct {
	users     repository.UserRepository
	jwtSecret string
}

// NewAuthController creates an AuthController.
func NewAuthController(users repository.UserRepository, jwtSecret string) *AuthController {
	return &AuthController{users: users, jwtSecret: jwtSecret}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account and issues a bearer token.
func (a *AuthController) Register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationFailed(ctx, utils.FieldErrors(err))
		return
	}

	email := normalizeEmail(req.Email)

	if _, err := a.users.FindByEmail(ctx.Request.Context(), email); err == nil {
		utils.Error(ctx, http.StatusBadRequest, "User already exists")
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		utils.ServerError(ctx, err)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.ServerError(ctx, err)
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := a.users.Create(ctx.Request.Context(), &user); err != nil {
		// The unique index may still reject a concurrent registration.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			utils.Error(ctx, http.StatusBadRequest, "User already exists")
			return
		}
		utils.ServerError(ctx, err)
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Name, a.jwtSecret)
	if err != nil {
		utils.ServerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"token":   token,
		"user":    userResponse(user),
	})
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password answer identically to avoid account enumeration.
func (a *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationFailed(ctx, utils.FieldErrors(err))
		return
	}

	user, err := a.users.FindByEmail(ctx.Request.Context(), normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Error(ctx, http.StatusBadRequest, "Invalid credentials")
			return
		}
		utils.ServerError(ctx, err)
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Name, a.jwtSecret)
	if err != nil {
		utils.ServerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    userResponse(*user),
	})
}

func userResponse(user models.User) gin.H {
	return gin.H{
		"id":    user.ID.Hex(),
		"name":  user.Name,
		"email": user.Email,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
