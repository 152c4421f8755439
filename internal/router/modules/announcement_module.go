package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/seva-samiti/connect-backend/internal/interface/http"
	"github.com/seva-samiti/connect-backend/internal/interface/middleware"
	"github.com/seva-samiti/connect-backend/pkg/token"
)

// AnnouncementModule wires announcements.
// Public: GET /api/announcements
// Admin: POST /api/announcements, DELETE /api/announcements/:id

type AnnouncementModule struct {
	Handler *handlers.AnnouncementHandler
	Codec   *token.Codec
}

func NewAnnouncementModule(h *handlers.AnnouncementHandler, codec *token.Codec) *AnnouncementModule {
	return &AnnouncementModule{Handler: h, Codec: codec}
}

func (m *AnnouncementModule) Register(rg *gin.RouterGroup) {
	announcements := rg.Group("/announcements")
	announcements.GET("", middleware.OptionalAuth(m.Codec), m.Handler.List)
	announcements.POST("", middleware.RequireAdmin(m.Codec), m.Handler.Create)
	announcements.DELETE("/:id", middleware.RequireAdmin(m.Codec), m.Handler.Delete)
}
