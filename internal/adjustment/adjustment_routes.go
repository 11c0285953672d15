package adjustment

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the allowance and deduction endpoints behind guard
// (HR or finance).
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard gin.HandlerFunc) {
	adjustments := r.Group("/adjustments", guard)
	{
		adjustments.POST("", handler.Create)
		adjustments.GET("/:id", handler.GetByID)
		adjustments.DELETE("/:id", handler.Delete)
	}
}
