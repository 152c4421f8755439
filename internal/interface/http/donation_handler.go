package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/seva-samiti/connect-backend/internal/application"
	"github.com/seva-samiti/connect-backend/internal/domain/entity"
	"github.com/seva-samiti/connect-backend/internal/interface/middleware"
	"github.com/seva-samiti/connect-backend/pkg/response"
	"github.com/seva-samiti/connect-backend/pkg/validation"
)

type DonationHandler struct {
	Svc    *application.DonationService
	Logger *logrus.Logger
}

func NewDonationHandler(svc *application.DonationService, logger *logrus.Logger) *DonationHandler {
	return &DonationHandler{Svc: svc, Logger: logger}
}

type checkoutRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency"`
	Email    string  `json:"email" binding:"omitempty,email"`
}

type updateDonationRequest struct {
	Donor    *string  `json:"donor"`
	Amount   *float64 `json:"amount"`
	Type     *string  `json:"type"`
	Date     *string  `json:"date"`
	Status   *string  `json:"status"`
	Receipt  *string  `json:"receipt"`
	UserID   *string  `json:"userId"`
	Email    *string  `json:"email" binding:"omitempty,email"`
	IsPublic *bool    `json:"isPublic"`
	Note     *string  `json:"note"`
}

func isAdmin(c *gin.Context) bool {
	claims, ok := middleware.Identity(c)
	return ok && claims.IsAdmin
}

func floatQuery(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// List returns donations, filterable by type/status/amount range. Only
// admins see non-public records.
func (h *DonationHandler) List(c *gin.Context) {
	filter := entity.DonationFilter{
		Type:       c.Query("type"),
		Status:     c.Query("status"),
		PublicOnly: c.Query("publicOnly") == "true",
		MinAmount:  floatQuery(c, "minAmount"),
		MaxAmount:  floatQuery(c, "maxAmount"),
	}
	donations, err := h.Svc.List(c.Request.Context(), filter, isAdmin(c))
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, donations, "donations", gin.H{"count": len(donations)})
}

func (h *DonationHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	donations, err := h.Svc.RecentPublic(c.Request.Context(), limit)
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, donations, "recent donations", nil)
}

func (h *DonationHandler) ByUser(c *gin.Context) {
	donations, err := h.Svc.ByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, donations, "donations", nil)
}

func (h *DonationHandler) ByEmail(c *gin.Context) {
	donations, err := h.Svc.ByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, donations, "donations", nil)
}

func (h *DonationHandler) Get(c *gin.Context) {
	d, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, d, "donation", nil)
}

func (h *DonationHandler) Update(c *gin.Context) {
	var req updateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	d, err := h.Svc.Update(c.Request.Context(), c.Param("id"), application.UpdateDonationInput{
		Donor:    req.Donor,
		Amount:   req.Amount,
		Type:     req.Type,
		Date:     req.Date,
		Status:   req.Status,
		Receipt:  req.Receipt,
		UserID:   req.UserID,
		Email:    req.Email,
		IsPublic: req.IsPublic,
		Note:     req.Note,
	})
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, d, "donation updated", nil)
}

func (h *DonationHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "donation deleted", nil)
}

// CreateCheckout opens a hosted payment session and returns its URL.
func (h *DonationHandler) CreateCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	url, err := h.Svc.CreateCheckout(c.Request.Context(), req.Amount, req.Currency, req.Email)
	if err != nil {
		serviceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": url}, "checkout session created", nil)
}

// Webhook receives payment events. The raw body is needed for signature
// verification, so this route must not run through any body-parsing
// middleware.
func (h *DonationHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable payload", nil)
		return
	}
	if err := h.Svc.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		h.Logger.WithError(err).Warn("webhook rejected")
		response.Error[any](c, http.StatusBadRequest, "webhook verification failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"received": true}, "ok", nil)
}
