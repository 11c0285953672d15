package project

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	projects := r.Group("/projects")
	{
		projects.GET("/payments", handler.ListPayments)
		projects.POST("/payments", handler.CreatePayment)
		projects.GET("/payments/:id", handler.GetPayment)
		projects.POST("/transfers", handler.CreateTransfer)
		projects.GET("/transfers/:id", handler.GetTransfer)
		projects.POST("/labor-requests", handler.CreateLabor)
		projects.GET("/labor-requests/:id", handler.GetLabor)
	}
}
