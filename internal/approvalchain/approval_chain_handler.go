package approvalchain

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"
)

type Handler struct {
	repo   Repository
	logger *zap.Logger
}

func NewHandler(repo Repository, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("approvalchain.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approvalchain.handler")
	}
	return &Handler{repo: repo, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("approval chain request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Any("details", httpErr.Details),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Get(c *gin.Context) {
	requestType := strings.ToUpper(c.Param("type"))

	rows, err := h.repo.Rows(c.Request.Context(), requestType)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, mapLevels(rows), nil)
}

// Replace validates and swaps the full chain of one request type.
func (h *Handler) Replace(c *gin.Context) {
	requestType := strings.ToUpper(c.Param("type"))

	var req ReplaceChainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", apperror.MapValidationError(err).Error())
		return
	}

	rows := req.rows()
	if err := h.repo.Replace(c.Request.Context(), requestType, rows); err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.logger.Info("approval chain replaced",
		zap.String("request_type", requestType),
		zap.Int("levels", len(rows)),
	)
	response.Success(c, http.StatusOK, mapLevels(rows), nil)
}
