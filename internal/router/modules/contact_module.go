package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seva-samiti/connect-backend/internal/container"
	handlers "github.com/seva-samiti/connect-backend/internal/interface/http"
	"github.com/seva-samiti/connect-backend/internal/interface/middleware"
)

// ContactModule wires POST /api/contact, rate limited per IP so the inbox
// cannot be flooded from a single source.

type ContactModule struct {
	Handler *handlers.ContactHandler
}

func NewContactModule(h *handlers.ContactHandler) *ContactModule {
	return &ContactModule{Handler: h}
}

func (m *ContactModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/contact", limiter, m.Handler.Submit)
}
