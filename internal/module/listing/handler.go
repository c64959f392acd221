package listing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zharkyn/carmarket/internal/domain"
	"github.com/zharkyn/carmarket/internal/middleware"
	"github.com/zharkyn/carmarket/internal/pkg"
)

// ListingHandler handles REST API requests for listings.
type ListingHandler struct {
	svc domain.ListingService
}

// NewHandler creates a new ListingHandler with the given service.
func NewHandler(svc domain.ListingService) *ListingHandler {
	return &ListingHandler{svc: svc}
}

// Create handles POST /api/v1/listings.
func (h *ListingHandler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	var req ListingRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	listing, err := h.svc.SubmitListing(c.Request.Context(), actor, req.toDomain())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, pkg.Response{
		Code:    http.StatusCreated,
		Message: "listing submitted for moderation",
		Data:    listing,
	})
}

// Get handles GET /api/v1/listings/:id.
func (h *ListingHandler) Get(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	id, err := pkg.ParseIDParam(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	listing, err := h.svc.GetListing(c.Request.Context(), actor, id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, listing)
}

// List handles GET /api/v1/listings. Admin only: the moderation queue.
// Filter by status with ?status=pending.
func (h *ListingHandler) List(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListListings(c.Request.Context(), actor, req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// ListMine handles GET /api/v1/listings/my.
func (h *ListingHandler) ListMine(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListMyListings(c.Request.Context(), actor, req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Update handles PUT /api/v1/listings/:id.
func (h *ListingHandler) Update(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	id, err := pkg.ParseIDParam(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req ListingRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	listing, err := h.svc.UpdateListing(c.Request.Context(), actor, id, req.toDomain())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, listing)
}

// Delete handles DELETE /api/v1/listings/:id.
func (h *ListingHandler) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	id, err := pkg.ParseIDParam(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.DeleteListing(c.Request.Context(), actor, id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// Moderate handles PUT /api/v1/listings/:id/moderate. Admin only.
func (h *ListingHandler) Moderate(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	id, err := pkg.ParseIDParam(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req ModerateRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	listing, err := h.svc.Moderate(c.Request.Context(), actor, id, domain.ModerationStatus(req.Status), req.Comment)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, listing)
}
