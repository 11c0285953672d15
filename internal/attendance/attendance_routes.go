package attendance

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts attendance endpoints. guard (HR) protects absence
// recording and other employees' summaries.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard gin.HandlerFunc) {
	attendances := r.Group("/attendances")
	{
		attendances.GET("", h.List)
		attendances.POST("/clock-in", h.ClockIn)
		attendances.POST("/clock-out", h.ClockOut)
		attendances.POST("/manual-requests", h.RequestManual)
		attendances.POST("/absences", guard, h.RecordAbsence)
		attendances.GET("/summary/:employeeNo", guard, h.Summary)
	}
}
