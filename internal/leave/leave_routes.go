package leave

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts leave endpoints. Approval runs through the shared
// approval routes; guard (HR) protects entitlements.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	guard gin.HandlerFunc,
) {
	leaves := r.Group("/leaves")
	{
		leaves.GET("", handler.ListMine)
		leaves.GET("/balances", handler.Balances)
		leaves.PUT("/balances", guard, handler.SetEntitlement)
		leaves.GET("/:id", handler.GetByID)
		leaves.POST("", handler.Create)
		leaves.POST("/:id/cancel", handler.Cancel)
	}
}
