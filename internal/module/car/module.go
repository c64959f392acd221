package car

import (
	"github.com/gin-gonic/gin"

	"github.com/zharkyn/carmarket/internal/middleware"
)

// CarModule implements the app.Module interface for the car catalog.
type CarModule struct {
	handler *CarHandler
}

// NewModule creates a new CarModule with the given handler.
// Panics if h is nil.
func NewModule(h *CarHandler) *CarModule {
	if h == nil {
		panic("car.NewModule: handler must not be nil")
	}
	return &CarModule{handler: h}
}

// RegisterRoutes registers car API routes. Reads are public; catalog writes
// are admin only.
func (m *CarModule) RegisterRoutes(api *gin.RouterGroup) {
	cars := api.Group("/cars")
	cars.GET("", m.handler.List)
	cars.GET("/:id", m.handler.Get)
	cars.POST("/search", m.handler.Search)
	cars.POST("", middleware.RequireAdmin(), m.handler.Create)
	cars.PUT("/:id", middleware.RequireAdmin(), m.handler.Update)
	cars.DELETE("/:id", middleware.RequireAdmin(), m.handler.Delete)
}
