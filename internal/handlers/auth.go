package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	iauth "github.com/fellowshipconnect/server/internal/auth"
	"github.com/fellowshipconnect/server/internal/middleware"
	"github.com/fellowshipconnect/server/internal/services"
	"github.com/fellowshipconnect/server/pkg/errors"
	"github.com/fellowshipconnect/server/pkg/response"
)

// AuthHandler exposes registration, login and identity endpoints.
type AuthHandler struct {
	service *services.AuthService
}

// NewAuthHandler constructs an AuthHandler with its service dependencies.
func NewAuthHandler(db *gorm.DB, jwt *iauth.JWTService) (*AuthHandler, error) {
	invites, err := services.NewInviteService(db)
	if err != nil {
		return nil, err
	}
	service, err := services.NewAuthService(db, jwt, invites)
	if err != nil {
		return nil, err
	}
	return &AuthHandler{service: service}, nil
}

type registerRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	FellowshipRole string `json:"fellowship_role" validate:"omitempty,max=64"`
	InviteCode     string `json:"invite_code" validate:"omitempty,max=32"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates an account, consuming an invite code when one is supplied.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.service.Register(requestContext(c), services.RegisterInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		FellowshipRole: req.FellowshipRole,
		InviteCode:     req.InviteCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   result.Token,
		"user":    result.User,
	})
}

// Login authenticates credentials and returns a signed token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.service.Login(requestContext(c), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   result.Token,
		"user":    result.User,
	})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	user, err := h.service.GetUser(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
