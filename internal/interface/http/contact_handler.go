package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/seva-samiti/connect-backend/pkg/mailer"
	"github.com/seva-samiti/connect-backend/pkg/response"
	"github.com/seva-samiti/connect-backend/pkg/validation"
)

// JobPublisher enqueues email jobs for the worker to deliver.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type ContactHandler struct {
	Publisher JobPublisher
	To        string
	Logger    *logrus.Logger
}

func NewContactHandler(pub JobPublisher, to string, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{Publisher: pub, To: to, Logger: logger}
}

type contactRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"omitempty"`
	Subject     string `json:"subject" binding:"required"`
	Message     string `json:"message" binding:"required"`
	InquiryType string `json:"inquiryType"`
}

// Submit renders the contact form into an email job and enqueues it. The
// submission is acknowledged as soon as the job is on the queue; delivery
// happens in the worker.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	job := mailer.BuildContactJob(h.To, mailer.ContactMessage{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Subject:     req.Subject,
		Message:     req.Message,
		InquiryType: req.InquiryType,
	}, time.Now())

	if err := h.Publisher.PublishJSON(c.Request.Context(), job); err != nil {
		h.Logger.WithError(err).Error("enqueue contact email failed")
		response.Error[any](c, http.StatusInternalServerError, "could not submit message", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"submitted": true}, "message received", nil)
}
