package approvalchain

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts chain administration; guard restricts it to HR.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard gin.HandlerFunc) {
	chains := r.Group("/approval-chains")
	chains.Use(guard)
	{
		chains.GET("/:type", handler.Get)
		chains.PUT("/:type", handler.Replace)
	}
}
