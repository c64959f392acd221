package pkg

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zharkyn/carmarket/internal/domain"
)

// ParseIDParam extracts and validates a positive integer path parameter.
func ParseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, domain.NewAppError(domain.CodeValidation, "invalid "+name, nil)
	}
	return uint(id), nil
}
