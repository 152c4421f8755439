package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seva-samiti/connect-backend/internal/container"
	handlers "github.com/seva-samiti/connect-backend/internal/interface/http"
	"github.com/seva-samiti/connect-backend/internal/interface/middleware"
	"github.com/seva-samiti/connect-backend/pkg/token"
)

// DonationModule wires donation routes.
// Public: GET /api/donations (public records unless admin),
// GET /api/donations/recent, POST /api/donations (checkout),
// POST /api/donations/stripe/webhook
// Protected: per-user listings, get/update/delete by donation ID

type DonationModule struct {
	Handler *handlers.DonationHandler
	Codec   *token.Codec
}

func NewDonationModule(h *handlers.DonationHandler, codec *token.Codec) *DonationModule {
	return &DonationModule{Handler: h, Codec: codec}
}

func (m *DonationModule) Register(rg *gin.RouterGroup) {
	checkoutLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	donations := rg.Group("/donations")
	donations.GET("", middleware.OptionalAuth(m.Codec), m.Handler.List)
	donations.GET("/recent", m.Handler.Recent)
	donations.POST("", checkoutLimiter, m.Handler.CreateCheckout)
	// Signature verification needs the raw body; no auth middleware here.
	donations.POST("/stripe/webhook", m.Handler.Webhook)

	donations.GET("/user/:userId", middleware.RequireSelfByParam(m.Codec, "userId", "id"), m.Handler.ByUser)
	donations.GET("/email/:email", middleware.RequireSelfByParam(m.Codec, "email", "email"), m.Handler.ByEmail)

	auth := donations.Group("/")
	auth.Use(middleware.RequireAuth(m.Codec))
	{
		auth.GET("/:id", m.Handler.Get)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
