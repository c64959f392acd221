package upload

import (
	"github.com/gin-gonic/gin"

	"github.com/zharkyn/carmarket/internal/domain"
	"github.com/zharkyn/carmarket/internal/pkg"
)

type UploadHandler struct {
	service Service
}

func NewHandler(service Service) *UploadHandler {
	return &UploadHandler{service: service}
}

// Upload accepts a multipart form with a "file" field and stores it.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "missing file field", err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "failed to read file", err))
		return
	}
	defer file.Close()

	uploaded, err := h.service.Upload(c.Request.Context(), fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, uploaded)
}

// Delete removes a previously uploaded object.
func (h *UploadHandler) Delete(c *gin.Context) {
	var req struct {
		ObjectName string `json:"object_name" binding:"required"`
	}
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ObjectName); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}
