package review

import (
	"github.com/gin-gonic/gin"

	"github.com/zharkyn/carmarket/internal/domain"
	"github.com/zharkyn/carmarket/internal/middleware"
	"github.com/zharkyn/carmarket/internal/pkg"
)

// ReviewHandler handles REST API requests for car reviews.
type ReviewHandler struct {
	svc domain.ReviewService
}

// NewHandler creates a new ReviewHandler with the given service.
func NewHandler(svc domain.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// Create handles POST /api/v1/cars/:id/reviews.
func (h *ReviewHandler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	carID, err := pkg.ParseIDParam(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req ReviewRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	review, err := h.svc.CreateReview(c.Request.Context(), actor, carID, req.Rating, req.Comment)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, review)
}

// ListByCar handles GET /api/v1/cars/:id/reviews.
func (h *ReviewHandler) ListByCar(c *gin.Context) {
	carID, err := pkg.ParseIDParam(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListByCar(c.Request.Context(), carID, req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Rating handles GET /api/v1/cars/:id/rating.
func (h *ReviewHandler) Rating(c *gin.Context) {
	carID, err := pkg.ParseIDParam(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	avg, count, err := h.svc.CarRating(c.Request.Context(), carID)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, RatingResponse{Average: avg, Count: count})
}

// Update handles PUT /api/v1/reviews/:id.
func (h *ReviewHandler) Update(c *gin.Context) {
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

	var req ReviewRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	review, err := h.svc.UpdateReview(c.Request.Context(), actor, id, req.Rating, req.Comment)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, review)
}

// Delete handles DELETE /api/v1/reviews/:id.
func (h *ReviewHandler) Delete(c *gin.Context) {
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

	if err := h.svc.DeleteReview(c.Request.Context(), actor, id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}
