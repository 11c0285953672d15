package approval

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	approvalerrors "go-hrms/internal/approval/errors"
	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"
)

// HTTPHandler exposes the approver inbox. Requests are created by their
// owning packages; only approve, reject and pending live here.
type HTTPHandler struct {
	service Service
	logger  *zap.Logger
}

func NewHTTPHandler(service Service, logger ...*zap.Logger) *HTTPHandler {
	l := zap.L().Named("approval.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.handler")
	}
	return &HTTPHandler{service: service, logger: l}
}

func (h *HTTPHandler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("approval request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *HTTPHandler) target(c *gin.Context) (RequestType, uuid.UUID, bool) {
	t := RequestType(strings.ToUpper(c.Param("type")))
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.writeServiceError(c, approvalerrors.ErrRequestNotFound)
		return "", uuid.Nil, false
	}
	return t, id, true
}

func (h *HTTPHandler) Approve(c *gin.Context) {
	actor, ok := middleware.ActorNo(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}
	t, id, ok := h.target(c)
	if !ok {
		return
	}
	h.logger.Debug("http approve", zap.String("request_type", string(t)), zap.String("id", id.String()), zap.Int64("actor_no", actor))

	st, err := h.service.Approve(c.Request.Context(), t, id, actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, mapState(t, id.String(), st), nil)
}

func (h *HTTPHandler) Reject(c *gin.Context) {
	actor, ok := middleware.ActorNo(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}
	t, id, ok := h.target(c)
	if !ok {
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http reject validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", apperror.MapValidationError(err).Error())
		return
	}

	st, err := h.service.Reject(c.Request.Context(), t, id, actor, req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, mapState(t, id.String(), st), nil)
}

// Pending lists what waits for the caller, paginated in memory.
func (h *HTTPHandler) Pending(c *gin.Context) {
	actor, ok := middleware.ActorNo(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}
	t := RequestType(strings.ToUpper(c.Param("type")))

	rows, err := h.service.Pending(c.Request.Context(), t, actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp := mapPending(t, rows)

	response.Page(c, http.StatusOK, resp, 10)
}
