package project

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-hrms/internal/approval"
	"go-hrms/internal/employee"
	projecterrors "go-hrms/internal/project/errors"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=project_service.go -destination=mock/project_service_mock.go -package=mock
type Service interface {
	RequestPayment(ctx context.Context, actorNo int64, req CreatePaymentRequest) (RequestResponse, error)
	RequestTransfer(ctx context.Context, actorNo int64, req CreateTransferRequest) (RequestResponse, error)
	RequestLabor(ctx context.Context, actorNo int64, req CreateLaborRequest) (RequestResponse, error)
	GetPayment(ctx context.Context, id uuid.UUID) (RequestResponse, error)
	GetTransfer(ctx context.Context, id uuid.UUID) (RequestResponse, error)
	GetLaborRequest(ctx context.Context, id uuid.UUID) (RequestResponse, error)
	PaymentsByProject(ctx context.Context, code string) ([]RequestResponse, error)
}

type service struct {
	repo      Repository
	directory employee.Directory
	approvals approval.Submitter
	logger    *zap.Logger
}

func NewService(repo Repository, directory employee.Directory, approvals approval.Submitter, logger ...*zap.Logger) Service {
	l := zap.L().Named("project.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("project.service")
	}
	return &service{repo: repo, directory: directory, approvals: approvals, logger: l}
}

func (s *service) requireProject(ctx context.Context, code string) error {
	ok, err := s.repo.ProjectExists(ctx, code)
	if err != nil {
		return err
	}
	if !ok {
		return projecterrors.ErrProjectNotFound
	}
	return nil
}

func (s *service) RequestPayment(ctx context.Context, actorNo int64, req CreatePaymentRequest) (RequestResponse, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return RequestResponse{}, projecterrors.ErrInvalidAmount
	}
	if err := s.requireProject(ctx, req.ProjectCode); err != nil {
		return RequestResponse{}, err
	}

	p := &ProjectPaymentRequest{
		ID:          uuid.New(),
		ProjectCode: req.ProjectCode,
		RequestedBy: actorNo,
		Payee:       strings.TrimSpace(req.Payee),
		Amount:      amount.Round(4),
		Description: req.Description,
	}
	if err := s.approvals.Submit(ctx, approval.TypeProjectPayment, p); err != nil {
		return RequestResponse{}, err
	}

	s.logger.Info("project payment submitted",
		zap.String("request_id", p.ID.String()),
		zap.String("project_code", p.ProjectCode),
		zap.String("amount", p.Amount.String()),
	)
	return mapPayment(*p), nil
}

func (s *service) RequestTransfer(ctx context.Context, actorNo int64, req CreateTransferRequest) (RequestResponse, error) {
	effective, err := time.Parse(dateLayout, req.EffectiveDate)
	if err != nil {
		return RequestResponse{}, projecterrors.ErrInvalidDateFormat
	}

	emp, err := s.directory.FindByNo(ctx, req.EmployeeNo)
	if err != nil {
		return RequestResponse{}, err
	}
	if emp.ProjectCode == nil || *emp.ProjectCode == "" {
		return RequestResponse{}, projecterrors.ErrNotOnProject
	}
	if *emp.ProjectCode == req.ToProject {
		return RequestResponse{}, projecterrors.ErrSameProject
	}
	if err := s.requireProject(ctx, req.ToProject); err != nil {
		return RequestResponse{}, err
	}

	p := &ProjectTransferRequest{
		ID:            uuid.New(),
		EmployeeNo:    req.EmployeeNo,
		FromProject:   *emp.ProjectCode,
		ToProject:     req.ToProject,
		EffectiveDate: effective,
		RequestedBy:   actorNo,
		Reason:        req.Reason,
	}
	if err := s.approvals.Submit(ctx, approval.TypeProjectTransfer, p); err != nil {
		return RequestResponse{}, err
	}

	s.logger.Info("project transfer submitted",
		zap.String("request_id", p.ID.String()),
		zap.Int64("employee_no", p.EmployeeNo),
		zap.String("from", p.FromProject),
		zap.String("to", p.ToProject),
	)
	return mapTransfer(*p), nil
}

func (s *service) RequestLabor(ctx context.Context, actorNo int64, req CreateLaborRequest) (RequestResponse, error) {
	if len(req.Lines) == 0 {
		return RequestResponse{}, projecterrors.ErrEmptyLaborRequest
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return RequestResponse{}, projecterrors.ErrInvalidDateFormat
	}
	if err := s.requireProject(ctx, req.ProjectCode); err != nil {
		return RequestResponse{}, err
	}

	h := &ProjectLaborRequestHeader{
		ID:          uuid.New(),
		ProjectCode: req.ProjectCode,
		RequestedBy: actorNo,
		StartDate:   start,
		Months:      req.Months,
		Remarks:     req.Remarks,
	}
	for _, l := range req.Lines {
		h.Lines = append(h.Lines, LaborRequestLine{
			ID:       uuid.New(),
			HeaderID: h.ID,
			Trade:    strings.TrimSpace(l.Trade),
			Quantity: l.Quantity,
		})
	}
	if err := s.approvals.Submit(ctx, approval.TypeLaborRequest, h); err != nil {
		return RequestResponse{}, err
	}

	s.logger.Info("labor request submitted",
		zap.String("request_id", h.ID.String()),
		zap.String("project_code", h.ProjectCode),
		zap.Int("headcount", h.Headcount()),
	)
	return mapLabor(*h), nil
}

func (s *service) GetPayment(ctx context.Context, id uuid.UUID) (RequestResponse, error) {
	p, err := s.repo.FindPayment(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}
	return mapPayment(*p), nil
}

func (s *service) GetTransfer(ctx context.Context, id uuid.UUID) (RequestResponse, error) {
	p, err := s.repo.FindTransfer(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}
	return mapTransfer(*p), nil
}

func (s *service) GetLaborRequest(ctx context.Context, id uuid.UUID) (RequestResponse, error) {
	h, err := s.repo.FindLaborRequest(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}
	return mapLabor(*h), nil
}

func (s *service) PaymentsByProject(ctx context.Context, code string) ([]RequestResponse, error) {
	rows, err := s.repo.PaymentsByProject(ctx, code)
	if err != nil {
		return nil, err
	}
	out := make([]RequestResponse, len(rows))
	for i, p := range rows {
		out[i] = mapPayment(p)
	}
	return out, nil
}

func base(kind, project string, requestedBy int64, st approval.State, id uuid.UUID) RequestResponse {
	return RequestResponse{
		ID:           id.String(),
		Kind:         kind,
		ProjectCode:  project,
		RequestedBy:  requestedBy,
		Status:       string(st.Status),
		NextApproval: st.NextApproval,
		NextAppLevel: st.NextAppLevel,
	}
}

func mapPayment(p ProjectPaymentRequest) RequestResponse {
	r := base(string(approval.TypeProjectPayment), p.ProjectCode, p.RequestedBy, p.State, p.ID)
	r.Details = map[string]any{
		"payee":       p.Payee,
		"amount":      p.Amount.StringFixed(2),
		"description": p.Description,
	}
	return r
}

func mapTransfer(p ProjectTransferRequest) RequestResponse {
	r := base(string(approval.TypeProjectTransfer), p.FromProject, p.RequestedBy, p.State, p.ID)
	r.Details = map[string]any{
		"employee_no":    p.EmployeeNo,
		"to_project":     p.ToProject,
		"effective_date": p.EffectiveDate.Format(dateLayout),
		"reason":         p.Reason,
	}
	return r
}

func mapLabor(h ProjectLaborRequestHeader) RequestResponse {
	r := base(string(approval.TypeLaborRequest), h.ProjectCode, h.RequestedBy, h.State, h.ID)
	lines := make([]LaborLine, len(h.Lines))
	for i, l := range h.Lines {
		lines[i] = LaborLine{Trade: l.Trade, Quantity: l.Quantity}
	}
	r.Details = map[string]any{
		"start_date": h.StartDate.Format(dateLayout),
		"months":     h.Months,
		"headcount":  h.Headcount(),
		"lines":      lines,
		"remarks":    h.Remarks,
	}
	return r
}
