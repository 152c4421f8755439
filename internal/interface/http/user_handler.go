package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/seva-samiti/connect-backend/internal/application"
	"github.com/seva-samiti/connect-backend/pkg/response"
	"github.com/seva-samiti/connect-backend/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,pwd"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	tok, user, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"token": tok, "user": user}, "registered", nil)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	tok, user, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": tok, "user": user}, "login successful", nil)
}

// Logout is a stateless acknowledgement: tokens are bearer credentials the
// client discards, nothing is tracked server-side.
func (h *UserHandler) Logout(c *gin.Context) {
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.Svc.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, user, "profile", nil)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	user, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString("userID"), application.UpdateProfileInput{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, user, "profile updated", nil)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	if err := h.Svc.ChangePassword(c.Request.Context(), c.GetString("userID"), req.CurrentPassword, req.NewPassword); err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"changed": true}, "password changed", nil)
}
