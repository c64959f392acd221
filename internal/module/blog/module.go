package blog

import (
	"github.com/gin-gonic/gin"

	"github.com/zharkyn/carmarket/internal/middleware"
)

// BlogModule implements the app.Module interface for blog posts.
type BlogModule struct {
	handler *BlogHandler
}

// NewModule creates a new BlogModule with the given handler.
// Panics if h is nil.
func NewModule(h *BlogHandler) *BlogModule {
	if h == nil {
		panic("blog.NewModule: handler must not be nil")
	}
	return &BlogModule{handler: h}
}

// RegisterRoutes registers blog API routes. Reads are public; writes require
// a user; moderation and featuring require admin.
func (m *BlogModule) RegisterRoutes(api *gin.RouterGroup) {
	blogs := api.Group("/blogs")
	blogs.GET("", m.handler.List)
	blogs.GET("/featured", m.handler.ListFeatured)
	blogs.GET("/my", middleware.RequireAuth(), m.handler.ListMine)
	blogs.GET("/:id", m.handler.Get)
	blogs.GET("/:id/comments", m.handler.ListComments)

	blogs.POST("/:id/view", m.handler.View)

	blogs.POST("", middleware.RequireAuth(), m.handler.Create)
	blogs.PUT("/:id", middleware.RequireAuth(), m.handler.Update)
	blogs.DELETE("/:id", middleware.RequireAuth(), m.handler.Delete)
	blogs.POST("/:id/like", middleware.RequireAuth(), m.handler.ToggleLike)
	blogs.POST("/:id/comments", middleware.RequireAuth(), m.handler.AddComment)
	blogs.DELETE("/comments/:commentId", middleware.RequireAuth(), m.handler.DeleteComment)

	blogs.PUT("/:id/moderate", middleware.RequireAdmin(), m.handler.Moderate)
	blogs.POST("/:id/feature", middleware.RequireAdmin(), m.handler.Feature)
}
