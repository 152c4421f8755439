package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/seva-samiti/connect-backend/internal/application"
	"github.com/seva-samiti/connect-backend/pkg/response"
)

// Media types accepted for activity uploads.
var allowedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"video/mp4":  true,
	"video/webm": true,
	"video/ogg":  true,
}

const maxMediaBytes = 50 << 20

type ActivityHandler struct {
	Svc    *application.ActivityService
	Logger *logrus.Logger
}

func NewActivityHandler(svc *application.ActivityService, logger *logrus.Logger) *ActivityHandler {
	return &ActivityHandler{Svc: svc, Logger: logger}
}

// Create accepts a multipart form: title, description, isPublic, eventDate
// (2006-01-02) and an optional "media" file.
func (h *ActivityHandler) Create(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		response.Error[any](c, http.StatusBadRequest, "title is required", nil)
		return
	}

	in := application.CreateActivityInput{
		Title:       title,
		Description: c.PostForm("description"),
		IsPublic:    c.DefaultPostForm("isPublic", "true") != "false",
		CreatedBy:   c.GetString("userID"),
	}
	if raw := c.PostForm("eventDate"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "eventDate must be YYYY-MM-DD", nil)
			return
		}
		in.EventDate = &d
	}

	if fh, err := c.FormFile("media"); err == nil {
		if fh.Size > maxMediaBytes {
			response.Error[any](c, http.StatusBadRequest, "media file too large", nil)
			return
		}
		contentType := fh.Header.Get("Content-Type")
		if !allowedMediaTypes[contentType] {
			response.Error[any](c, http.StatusBadRequest, "unsupported media type "+contentType, nil)
			return
		}
		f, err := fh.Open()
		if err != nil {
			serviceError(c, h.Logger, err)
			return
		}
		defer f.Close()
		in.Media = &application.MediaUpload{
			Reader:      f,
			Filename:    fh.Filename,
			ContentType: contentType,
		}
	}

	a, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, a, "activity created", nil)
}

func (h *ActivityHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	activities, err := h.Svc.List(c.Request.Context(), limit, isAdmin(c))
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, activities, "activities", gin.H{"count": len(activities)})
}

func (h *ActivityHandler) Get(c *gin.Context) {
	a, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, a, "activity", nil)
}

func (h *ActivityHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "activity deleted", nil)
}

func (h *ActivityHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	activities, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size, isAdmin(c))
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, activities, "search results", gin.H{"count": len(activities)})
}
