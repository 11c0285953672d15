package project

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-hrms/internal/middleware"
	projecterrors "go-hrms/internal/project/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("project.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("project.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("project request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// create binds T and hands it to submit with the acting employee.
func create[T any](h *Handler, c *gin.Context, submit func(ctx context.Context, actorNo int64, req T) (RequestResponse, error)) {
	actor, ok := middleware.ActorNo(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", apperror.MapValidationError(err).Error())
		return
	}

	resp, err := submit(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) get(c *gin.Context, load func(ctx context.Context, id uuid.UUID) (RequestResponse, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.writeServiceError(c, projecterrors.ErrRequestNotFound)
		return
	}
	resp, err := load(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreatePayment(c *gin.Context)  { create(h, c, h.service.RequestPayment) }
func (h *Handler) CreateTransfer(c *gin.Context) { create(h, c, h.service.RequestTransfer) }
func (h *Handler) CreateLabor(c *gin.Context)    { create(h, c, h.service.RequestLabor) }

func (h *Handler) GetPayment(c *gin.Context)  { h.get(c, h.service.GetPayment) }
func (h *Handler) GetTransfer(c *gin.Context) { h.get(c, h.service.GetTransfer) }
func (h *Handler) GetLabor(c *gin.Context)    { h.get(c, h.service.GetLaborRequest) }

func (h *Handler) ListPayments(c *gin.Context) {
	code := c.Query("project_code")
	if code == "" {
		h.writeServiceError(c, apperror.RequiredField("project_code"))
		return
	}
	resp, err := h.service.PaymentsByProject(c.Request.Context(), code)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
