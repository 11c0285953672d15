package middleware

import (
	"github.com/gin-gonic/gin"
)

const ContextEmployeeNo = "employee_no"

// ActorNo returns the authenticated employee number set by AuthMiddleware.
func ActorNo(c *gin.Context) (int64, bool) {
	no := c.GetInt64(ContextEmployeeNo)
	return no, no > 0
}
