package loan

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the loan endpoints. guard protects the payment
// endpoint, which only finance may call.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard gin.HandlerFunc) {
	loans := r.Group("/loans")
	{
		loans.POST("", handler.Create)
		loans.GET("/:id", handler.GetByID)
		loans.POST("/:id/payments", guard, handler.DeductPayment)
		loans.POST("/postponements", handler.Postpone)
	}
}
