package upload

import (
	"github.com/gin-gonic/gin"

	"github.com/zharkyn/carmarket/internal/middleware"
)

// UploadModule implements the app.Module interface for image uploads.
type UploadModule struct {
	handler *UploadHandler
}

// NewModule creates a new UploadModule with the given handler.
// Panics if h is nil.
func NewModule(h *UploadHandler) *UploadModule {
	if h == nil {
		panic("upload.NewModule: handler must not be nil")
	}
	return &UploadModule{handler: h}
}

// RegisterRoutes registers upload routes. Uploads require a signed-in user;
// deletes are restricted to admins.
func (m *UploadModule) RegisterRoutes(api *gin.RouterGroup) {
	uploads := api.Group("/uploads", middleware.RequireAuth())
	uploads.POST("/image", m.handler.Upload)
	uploads.DELETE("/image", middleware.RequireAdmin(), m.handler.Delete)
}
