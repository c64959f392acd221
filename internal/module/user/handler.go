package user

import (
	"github.com/gin-gonic/gin"

	"github.com/zharkyn/carmarket/internal/domain"
	"github.com/zharkyn/carmarket/internal/middleware"
	"github.com/zharkyn/carmarket/internal/pkg"
)

// UserHandler handles REST API requests for the user resource.
type UserHandler struct {
	svc domain.UserService
}

// NewHandler creates a new UserHandler with the given service.
func NewHandler(svc domain.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Get handles GET /api/v1/users/:id. Self or admin only.
func (h *UserHandler) Get(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), actor, id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, toResponse(user))
}

// List handles GET /api/v1/users. Admin only.
func (h *UserHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListUsers(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, pkg.NewPageResult(toResponses(result.Items), result.Total, req))
}

// Update handles PUT /api/v1/users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdateUserRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.UpdateUser(c.Request.Context(), actor, id, req.toUpdate())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, toResponse(user))
}

// Delete handles DELETE /api/v1/users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.DeleteUser(c.Request.Context(), actor, id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// ListFavorites handles GET /api/v1/users/me/favorites.
func (h *UserHandler) ListFavorites(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	cars, err := h.svc.ListFavorites(c.Request.Context(), actor.ID)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, cars)
}

// AddFavorite handles POST /api/v1/users/me/favorites/:carId.
func (h *UserHandler) AddFavorite(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	carID, err := pkg.ParseIDParam(c, "carId")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.AddFavorite(c.Request.Context(), actor.ID, carID); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// RemoveFavorite handles DELETE /api/v1/users/me/favorites/:carId.
func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	carID, err := pkg.ParseIDParam(c, "carId")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.RemoveFavorite(c.Request.Context(), actor.ID, carID); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// parseID extracts and validates the :id path parameter.
func parseID(c *gin.Context) (uint, error) {
	return pkg.ParseIDParam(c, "id")
}
