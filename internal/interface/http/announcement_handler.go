package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/seva-samiti/connect-backend/internal/application"
	"github.com/seva-samiti/connect-backend/pkg/response"
	"github.com/seva-samiti/connect-backend/pkg/validation"
)

type AnnouncementHandler struct {
	Svc    *application.AnnouncementService
	Logger *logrus.Logger
}

func NewAnnouncementHandler(svc *application.AnnouncementService, logger *logrus.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{Svc: svc, Logger: logger}
}

type createAnnouncementRequest struct {
	Title     string `json:"title" binding:"required"`
	Message   string `json:"message" binding:"required"`
	IsPublic  *bool  `json:"isPublic"`
	EventDate string `json:"eventDate" binding:"omitempty,datetime=2006-01-02"`
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req createAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	in := application.CreateAnnouncementInput{
		Title:     req.Title,
		Message:   req.Message,
		IsPublic:  true,
		CreatedBy: c.GetString("userID"),
	}
	if req.IsPublic != nil {
		in.IsPublic = *req.IsPublic
	}
	if req.EventDate != "" {
		d, _ := time.Parse("2006-01-02", req.EventDate)
		in.EventDate = &d
	}

	a, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, a, "announcement created", nil)
}

func (h *AnnouncementHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	announcements, err := h.Svc.List(c.Request.Context(), limit, isAdmin(c))
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, announcements, "announcements", gin.H{"count": len(announcements)})
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "announcement deleted", nil)
}
