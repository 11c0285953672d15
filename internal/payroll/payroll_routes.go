package payroll

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-hrms/internal/middleware"
)

// RegisterRoutes mounts the payroll endpoints behind guard. Approval of a
// calculated version goes through the shared approval routes.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	guard gin.HandlerFunc,
	rdb ...*redis.Client,
) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(guard)
	{
		if len(rdb) > 0 && rdb[0] != nil {
			payrolls.POST("/calculate", middleware.Idempotency(rdb[0]), handler.Calculate)
		} else {
			payrolls.POST("/calculate", handler.Calculate)
		}
		payrolls.POST("/recalculate", handler.Recalculate)
		payrolls.GET("/:employeeNo/:month", handler.Latest)
		payrolls.GET("/:employeeNo/:month/history", handler.History)
	}
}
