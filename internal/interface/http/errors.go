package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/seva-samiti/connect-backend/internal/application"
	"github.com/seva-samiti/connect-backend/pkg/response"
)

// serviceError maps application failures onto HTTP statuses. Anything not in
// the taxonomy is a 500 with a generic message; the detail goes to the log.
func serviceError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case application.IsValidation(err):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrUserExists):
		response.Error[any](c, http.StatusConflict, "User already exists", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrInvalidCurrentPassword):
		response.Error[any](c, http.StatusBadRequest, "current password is incorrect", nil)
	case errors.Is(err, application.ErrUserNotFound), errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, application.ErrSearchUnavailable):
		response.Error[any](c, http.StatusServiceUnavailable, "search is not available", nil)
	default:
		logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
