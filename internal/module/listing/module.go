package listing

import (
	"github.com/gin-gonic/gin"

	"github.com/zharkyn/carmarket/internal/middleware"
)

// ListingModule implements the app.Module interface for user listings.
type ListingModule struct {
	handler *ListingHandler
}

// NewModule creates a new ListingModule with the given handler.
// Panics if h is nil.
func NewModule(h *ListingHandler) *ListingModule {
	if h == nil {
		panic("listing.NewModule: handler must not be nil")
	}
	return &ListingModule{handler: h}
}

// RegisterRoutes registers listing API routes. Everything requires a user;
// the moderation queue and decisions additionally require admin.
func (m *ListingModule) RegisterRoutes(api *gin.RouterGroup) {
	listings := api.Group("/listings", middleware.RequireAuth())
	listings.POST("", m.handler.Create)
	listings.GET("", middleware.RequireAdmin(), m.handler.List)
	listings.GET("/my", m.handler.ListMine)
	listings.GET("/:id", m.handler.Get)
	listings.PUT("/:id", m.handler.Update)
	listings.DELETE("/:id", m.handler.Delete)
	listings.PUT("/:id/moderate", middleware.RequireAdmin(), m.handler.Moderate)
}
