package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/seva-samiti/connect-backend/internal/interface/http"
	"github.com/seva-samiti/connect-backend/internal/interface/middleware"
	"github.com/seva-samiti/connect-backend/pkg/token"
)

// ActivityModule wires the activity feed.
// Public: GET /api/activities, GET /api/activities/search, GET /api/activities/:id
// Admin: POST /api/activities (multipart), DELETE /api/activities/:id

type ActivityModule struct {
	Handler *handlers.ActivityHandler
	Codec   *token.Codec
}

func NewActivityModule(h *handlers.ActivityHandler, codec *token.Codec) *ActivityModule {
	return &ActivityModule{Handler: h, Codec: codec}
}

func (m *ActivityModule) Register(rg *gin.RouterGroup) {
	activities := rg.Group("/activities")
	activities.GET("", middleware.OptionalAuth(m.Codec), m.Handler.List)
	activities.GET("/search", middleware.OptionalAuth(m.Codec), m.Handler.Search)
	activities.GET("/:id", m.Handler.Get)

	activities.POST("", middleware.RequireAdmin(m.Codec), m.Handler.Create)
	activities.DELETE("/:id", middleware.RequireAdmin(m.Codec), m.Handler.Delete)
}
