package car

import (
	"github.com/gin-gonic/gin"

	"github.com/zharkyn/carmarket/internal/domain"
	"github.com/zharkyn/carmarket/internal/filterquery"
	"github.com/zharkyn/carmarket/internal/pkg"
)

// CarHandler handles REST API requests for the car catalog.
type CarHandler struct {
	svc domain.CarService
}

// NewHandler creates a new CarHandler with the given service.
func NewHandler(svc domain.CarService) *CarHandler {
	return &CarHandler{svc: svc}
}

// Create handles POST /api/v1/cars. Admin only.
func (h *CarHandler) Create(c *gin.Context) {
	var req CarRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	car, err := h.svc.CreateCar(c.Request.Context(), req.toDomain())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, car)
}

// Get handles GET /api/v1/cars/:id.
func (h *CarHandler) Get(c *gin.Context) {
	id, err := pkg.ParseIDParam(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	car, err := h.svc.GetCar(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, car)
}

// List handles GET /api/v1/cars.
func (h *CarHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListCars(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Search handles POST /api/v1/cars/search. The body is the filter form as
// submitted; the response carries the matching page together with display
// tags for the active criteria.
func (h *CarHandler) Search(c *gin.Context) {
	var form filterquery.Form
	if !pkg.BindAndValidate(c, &form) {
		return
	}
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.Search(c.Request.Context(), form, req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, result)
}

// Update handles PUT /api/v1/cars/:id. Admin only.
func (h *CarHandler) Update(c *gin.Context) {
	id, err := pkg.ParseIDParam(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req CarRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	car, err := h.svc.UpdateCar(c.Request.Context(), id, req.toDomain())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, car)
}

// Delete handles DELETE /api/v1/cars/:id. Admin only.
func (h *CarHandler) Delete(c *gin.Context) {
	id, err := pkg.ParseIDParam(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.DeleteCar(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}
