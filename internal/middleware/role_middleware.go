package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/sysconfig"
)

type RoleSource interface {
	Snapshot(ctx context.Context) (sysconfig.Snapshot, error)
}

// RequireSystemRole lets the request through only when the actor currently
// holds one of roles.
func RequireSystemRole(source RoleSource, roles ...sysconfig.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorNo(c)
		if !ok {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		snapshot, err := source.Snapshot(c.Request.Context())
		if err != nil {
			contextutil.GetLogger(c.Request.Context(), nil).Error("load role snapshot failed", zap.Error(err))
			abortWith(c, apperror.ErrInternal)
			return
		}

		for _, role := range roles {
			if holder, ok := snapshot.Holder(role); ok && holder == actor {
				c.Next()
				return
			}
		}
		abortWith(c, apperror.ErrForbidden)
	}
}
