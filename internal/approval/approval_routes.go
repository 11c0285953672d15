package approval

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-hrms/internal/middleware"
)

// RegisterRoutes mounts the approver inbox. Approve and reject are
// idempotent per Idempotency-Key when rdb is given.
func RegisterRoutes(r *gin.RouterGroup, handler *HTTPHandler, rdb ...*redis.Client) {
	approvals := r.Group("/approvals/:type")
	{
		approvals.GET("/pending", handler.Pending)
		if len(rdb) > 0 && rdb[0] != nil {
			approvals.POST("/:id/approve", middleware.Idempotency(rdb[0]), handler.Approve)
			approvals.POST("/:id/reject", middleware.Idempotency(rdb[0]), handler.Reject)
			return
		}
		approvals.POST("/:id/approve", handler.Approve)
		approvals.POST("/:id/reject", handler.Reject)
	}
}
