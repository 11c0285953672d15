package employee

import (
	"github.com/gin-gonic/gin"

	"go-hrms/internal/middleware"
)

// RegisterRoutes mounts HR master data maintenance. Reads are open to any
// authenticated employee; writes need guard (HR).
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard gin.HandlerFunc) {
	employees := r.Group("/employees")
	{
		employees.GET("", middleware.RateLimitByEmployee(3, 10), handler.GetAll)
		employees.GET("/options", middleware.RateLimitByEmployee(5, 20), handler.GetOptions)
		employees.GET("/:employeeNo", handler.GetByNo)
		employees.POST("", guard, handler.Create)
		employees.PUT("/:employeeNo", guard, handler.Update)
		employees.POST("/:employeeNo/terminate", guard, handler.Terminate)
	}

	r.PUT("/departments", guard, handler.SaveDepartment)
	r.PUT("/projects", guard, handler.SaveProject)
}
