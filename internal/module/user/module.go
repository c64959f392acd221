package user

import (
	"github.com/gin-gonic/gin"

	"github.com/zharkyn/carmarket/internal/middleware"
)

// UserModule implements the app.Module interface for the user domain.
type UserModule struct {
	handler *UserHandler
}

// NewModule creates a new UserModule with the given handler.
// Panics if h is nil.
func NewModule(h *UserHandler) *UserModule {
	if h == nil {
		panic("user.NewModule: handler must not be nil")
	}
	return &UserModule{handler: h}
}

// RegisterRoutes registers user API routes.
func (m *UserModule) RegisterRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	users.GET("", middleware.RequireAdmin(), m.handler.List)
	users.GET("/:id", middleware.RequireAuth(), m.handler.Get)
	users.PUT("/:id", middleware.RequireAuth(), m.handler.Update)
	users.DELETE("/:id", middleware.RequireAuth(), m.handler.Delete)

	favorites := api.Group("/users/me/favorites", middleware.RequireAuth())
	favorites.GET("", m.handler.ListFavorites)
	favorites.POST("/:carId", m.handler.AddFavorite)
	favorites.DELETE("/:carId", m.handler.RemoveFavorite)
}
