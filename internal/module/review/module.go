package review

import (
	"github.com/gin-gonic/gin"

	"github.com/zharkyn/carmarket/internal/middleware"
)

// ReviewModule implements the app.Module interface for car reviews.
type ReviewModule struct {
	handler *ReviewHandler
}

// NewModule creates a new ReviewModule with the given handler.
// Panics if h is nil.
func NewModule(h *ReviewHandler) *ReviewModule {
	if h == nil {
		panic("review.NewModule: handler must not be nil")
	}
	return &ReviewModule{handler: h}
}

// RegisterRoutes registers review API routes. Reads are public.
func (m *ReviewModule) RegisterRoutes(api *gin.RouterGroup) {
	cars := api.Group("/cars")
	cars.GET("/:id/reviews", m.handler.ListByCar)
	cars.GET("/:id/rating", m.handler.Rating)
	cars.POST("/:id/reviews", middleware.RequireAuth(), m.handler.Create)

	reviews := api.Group("/reviews", middleware.RequireAuth())
	reviews.PUT("/:id", m.handler.Update)
	reviews.DELETE("/:id", m.handler.Delete)
}
