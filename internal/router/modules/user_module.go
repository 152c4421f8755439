package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seva-samiti/connect-backend/internal/container"
	handlers "github.com/seva-samiti/connect-backend/internal/interface/http"
	"github.com/seva-samiti/connect-backend/internal/interface/middleware"
	"github.com/seva-samiti/connect-backend/pkg/token"
)

// UserModule wires identity routes.
// Public: POST /api/users/register, POST /api/users/login
// Protected: POST /api/users/logout, GET/PUT /api/users/me,
// PUT /api/users/change-password

type UserModule struct {
	Handler *handlers.UserHandler
	Codec   *token.Codec
}

func NewUserModule(h *handlers.UserHandler, codec *token.Codec) *UserModule {
	return &UserModule{Handler: h, Codec: codec}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Credential endpoints get tight per-IP limits
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	users := rg.Group("/users")
	users.POST("/register", registerLimiter, m.Handler.Register)
	users.POST("/login", loginLimiter, m.Handler.Login)

	auth := users.Group("/")
	auth.Use(middleware.RequireAuth(m.Codec))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/me", m.Handler.Me)
		auth.PUT("/me", m.Handler.UpdateMe)
		auth.PUT("/change-password", m.Handler.ChangePassword)
	}
}
