package employee

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/shared/dberr"
)

const (
	optionsCacheKey   = "employees:options"
	optionsCacheTTL   = time.Hour
	employeeNoCounter = "EMPLOYEE_NO"
	employeeNoIndex   = "uq_employee_number"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]OptionResponse, error)
	GetByNo(ctx context.Context, employeeNo int64) (EmployeeResponse, error)
	Update(ctx context.Context, employeeNo int64, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Terminate(ctx context.Context, employeeNo int64, req TerminateEmployeeRequest) (EmployeeResponse, error)
	SaveDepartment(ctx context.Context, req UnitRequest) error
	SaveProject(ctx context.Context, req UnitRequest) error
}

type service struct {
	repo    Repository
	counter counter.Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

// NewService builds the HR maintenance service. rdb may be nil, which
// disables the options cache.
func NewService(repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:    repo,
		counter: counter,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.Int64("employee_no", req.EmployeeNo),
	)

	hire, ok := parseDate(req.HireDate)
	if !ok {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDate
	}
	salary, err := decimal.NewFromString(req.MonthlySalary)
	if err != nil || salary.IsNegative() {
		return EmployeeResponse{}, apperror.InvalidField("monthly_salary")
	}

	no := req.EmployeeNo
	if no == 0 {
		next, err := s.counter.GetNextValue(ctx, employeeNoCounter, "global")
		if err != nil {
			s.logger.Error("create employee generate number failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}
		no = next
	}

	e := &Employee{
		EmployeeNo:     no,
		FullName:       strings.TrimSpace(req.FullName),
		DepartmentCode: req.DepartmentCode,
		ProjectCode:    req.ProjectCode,
		ManagerNo:      req.ManagerNo,
		Category:       Category(req.Category),
		MonthlySalary:  salary,
		HireDate:       hire,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		if dberr.IsUniqueViolation(err, employeeNoIndex) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNoTaken
		}
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("employee created", zap.String("request_id", rid), zap.Int64("employee_no", no))
	return mapEmployee(*e), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		out[i] = mapEmployee(e)
	}
	return out, nil
}

// GetOptions serves the picker list from Redis, filling it once per miss.
func (s *service) GetOptions(ctx context.Context) ([]OptionResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, optionsCacheKey).Result(); err == nil {
			var resp []OptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(optionsCacheKey, func() (any, error) {
		rows, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		resp := make([]OptionResponse, 0, len(rows))
		for _, e := range rows {
			if e.TerminationDate != nil {
				continue
			}
			resp = append(resp, OptionResponse{EmployeeNo: e.EmployeeNo, FullName: e.FullName})
		}

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, optionsCacheKey, data, optionsCacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]OptionResponse), nil
}

func (s *service) GetByNo(ctx context.Context, employeeNo int64) (EmployeeResponse, error) {
	e, err := s.repo.FindByNo(ctx, employeeNo)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return mapEmployee(*e), nil
}

func (s *service) Update(ctx context.Context, employeeNo int64, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	e, err := s.repo.FindByNo(ctx, employeeNo)
	if err != nil {
		return EmployeeResponse{}, err
	}
	salary, err := decimal.NewFromString(req.MonthlySalary)
	if err != nil || salary.IsNegative() {
		return EmployeeResponse{}, apperror.InvalidField("monthly_salary")
	}

	e.FullName = strings.TrimSpace(req.FullName)
	e.DepartmentCode = req.DepartmentCode
	e.ProjectCode = req.ProjectCode
	e.ManagerNo = req.ManagerNo
	e.Category = Category(req.Category)
	e.MonthlySalary = salary

	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Error("update employee failed", zap.Int64("employee_no", employeeNo), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("employee updated", zap.Int64("employee_no", employeeNo))
	return mapEmployee(*e), nil
}

// Terminate records the last working day. Payroll for that month becomes a
// final settlement.
func (s *service) Terminate(ctx context.Context, employeeNo int64, req TerminateEmployeeRequest) (EmployeeResponse, error) {
	end, ok := parseDate(req.TerminationDate)
	if !ok {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDate
	}
	e, err := s.repo.FindByNo(ctx, employeeNo)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if end.Before(e.HireDate) {
		return EmployeeResponse{}, employeeerrors.ErrTerminationBeforeHire
	}

	e.TerminationDate = &end
	if err := s.repo.Update(ctx, e); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("employee terminated",
		zap.Int64("employee_no", employeeNo),
		zap.String("termination_date", req.TerminationDate),
	)
	return mapEmployee(*e), nil
}

func (s *service) SaveDepartment(ctx context.Context, req UnitRequest) error {
	return s.repo.SaveDepartment(ctx, &Department{Code: req.Code, Name: req.Name, ManagerNo: req.ManagerNo})
}

func (s *service) SaveProject(ctx context.Context, req UnitRequest) error {
	return s.repo.SaveProject(ctx, &Project{Code: req.Code, Name: req.Name, ManagerNo: req.ManagerNo})
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, optionsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", optionsCacheKey),
		)
	}
}
