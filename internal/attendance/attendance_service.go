package attendance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-hrms/internal/approval"
	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/config"
	"go-hrms/internal/employee"
	"go-hrms/internal/shared/dberr"
	"go-hrms/internal/shared/txmanager"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"

	manualActiveIndex = "uq_manual_attendance_active"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, employeeNo int64, req ClockRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, employeeNo int64, req ClockRequest) (AttendanceResponse, error)
	List(ctx context.Context, employeeNo int64, from, to time.Time) ([]AttendanceResponse, error)
	RecordAbsence(ctx context.Context, req RecordAbsenceRequest) (AttendanceResponse, error)
	Sum(ctx context.Context, metric Metric, employeeNo int64, from, to time.Time) (decimal.Decimal, error)
	Summary(ctx context.Context, employeeNo int64, from, to time.Time) (Summary, error)
	RequestManual(ctx context.Context, employeeNo int64, req ManualAttendanceCreateRequest) (ManualAttendanceResponse, error)
	ApplyApprovedManual(ctx context.Context, m *ManualAttendanceRequest) error
}

type service struct {
	tx        txmanager.Manager
	repo      Repository
	directory employee.Directory
	approvals approval.Submitter
	shift     config.ShiftPolicy
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	tx txmanager.Manager,
	repo Repository,
	directory employee.Directory,
	approvals approval.Submitter,
	shift config.ShiftPolicy,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		tx:        tx,
		repo:      repo,
		directory: directory,
		approvals: approvals,
		shift:     shift,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    l,
	}
}

func (s *service) ClockIn(ctx context.Context, employeeNo int64, req ClockRequest) (AttendanceResponse, error) {
	now := s.now()
	today := dayOf(now)

	var row *Attendance
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.repo.FindByEmployeeAndDate(txCtx, employeeNo, today)
		if err == nil {
			return attendanceerrors.ErrAlreadyClockedIn
		}
		if !errors.Is(err, attendanceerrors.ErrAttendanceNotFound) {
			return err
		}

		m := measure(s.shift, today, now, nil)
		row = &Attendance{
			ID:             uuid.New(),
			EmployeeNo:     employeeNo,
			AttendanceDate: today,
			ClockIn:        &now,
			DelayedHours:   m.delayed,
			OvertimeHours:  decimal.Zero,
			EarlyOutHours:  decimal.Zero,
			Source:         SourceDevice,
			Notes:          req.Notes,
		}
		return s.repo.Create(txCtx, row)
	})
	if err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("clocked in",
		zap.Int64("employee_no", employeeNo),
		zap.String("delayed_hours", row.DelayedHours.String()),
	)
	return mapAttendance(*row), nil
}

func (s *service) ClockOut(ctx context.Context, employeeNo int64, req ClockRequest) (AttendanceResponse, error) {
	now := s.now()
	today := dayOf(now)

	var row *Attendance
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		row, err = s.repo.FindByEmployeeAndDate(txCtx, employeeNo, today)
		if err != nil {
			if errors.Is(err, attendanceerrors.ErrAttendanceNotFound) {
				return attendanceerrors.ErrClockInNotFound
			}
			return err
		}
		if row.ClockIn == nil {
			return attendanceerrors.ErrClockInNotFound
		}
		if row.ClockOut != nil {
			return attendanceerrors.ErrAlreadyClockedOut
		}

		row.ClockOut = &now
		if req.Notes != nil {
			row.Notes = req.Notes
		}
		row.apply(measure(s.shift, today, *row.ClockIn, row.ClockOut))
		return s.repo.Update(txCtx, row)
	})
	if err != nil {
		return AttendanceResponse{}, err
	}
	return mapAttendance(*row), nil
}

func (s *service) List(ctx context.Context, employeeNo int64, from, to time.Time) ([]AttendanceResponse, error) {
	rows, err := s.repo.ListByEmployee(ctx, employeeNo, from, to)
	if err != nil {
		return nil, err
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapAttendance(r)
	}
	return res, nil
}

// RecordAbsence flags the day absent, creating the row when the device
// never saw the employee.
func (s *service) RecordAbsence(ctx context.Context, req RecordAbsenceRequest) (AttendanceResponse, error) {
	day, err := time.Parse(dateLayout, req.AttendanceDate)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	var row *Attendance
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByEmployeeAndDate(txCtx, req.EmployeeNo, day)
		switch {
		case err == nil:
			row = existing
			row.IsAbsent = true
			row.Notes = req.Notes
			return s.repo.Update(txCtx, row)
		case errors.Is(err, attendanceerrors.ErrAttendanceNotFound):
			row = &Attendance{
				ID:             uuid.New(),
				EmployeeNo:     req.EmployeeNo,
				AttendanceDate: day,
				IsAbsent:       true,
				OvertimeHours:  decimal.Zero,
				DelayedHours:   decimal.Zero,
				EarlyOutHours:  decimal.Zero,
				Source:         SourceHR,
				Notes:          req.Notes,
			}
			return s.repo.Create(txCtx, row)
		default:
			return err
		}
	})
	if err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("absence recorded",
		zap.Int64("employee_no", req.EmployeeNo),
		zap.String("date", req.AttendanceDate),
	)
	return mapAttendance(*row), nil
}

func (s *service) Sum(ctx context.Context, metric Metric, employeeNo int64, from, to time.Time) (decimal.Decimal, error) {
	if _, ok := metricColumns[metric]; !ok {
		return decimal.Zero, attendanceerrors.ErrUnknownMetric
	}
	return s.repo.Sum(ctx, metric, employeeNo, from, to)
}

func (s *service) Summary(ctx context.Context, employeeNo int64, from, to time.Time) (Summary, error) {
	var out Summary
	targets := []struct {
		metric Metric
		dst    *decimal.Decimal
	}{
		{MetricOvertime, &out.OvertimeHours},
		{MetricDelayed, &out.DelayedHours},
		{MetricEarlyOut, &out.EarlyOutHours},
		{MetricAbsence, &out.AbsentDays},
	}
	for _, t := range targets {
		v, err := s.repo.Sum(ctx, t.metric, employeeNo, from, to)
		if err != nil {
			return Summary{}, err
		}
		*t.dst = v
	}
	return out, nil
}

func (s *service) RequestManual(ctx context.Context, employeeNo int64, req ManualAttendanceCreateRequest) (ManualAttendanceResponse, error) {
	day, err := time.Parse(dateLayout, req.AttendanceDate)
	if err != nil {
		return ManualAttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
	}
	clockIn, err := clockOn(day, req.ClockIn)
	if err != nil {
		return ManualAttendanceResponse{}, err
	}
	clockOut, err := clockOn(day, req.ClockOut)
	if err != nil {
		return ManualAttendanceResponse{}, err
	}
	if !clockOut.After(clockIn) {
		return ManualAttendanceResponse{}, attendanceerrors.ErrInvalidTimeRange
	}

	emp, err := s.directory.FindByNo(ctx, employeeNo)
	if err != nil {
		return ManualAttendanceResponse{}, err
	}
	scope := approval.EmployeeScope(emp)

	m := &ManualAttendanceRequest{
		ID:             uuid.New(),
		EmployeeNo:     employeeNo,
		DepartmentCode: scope.DepartmentCode,
		ProjectCode:    scope.ProjectCode,
		AttendanceDate: day,
		ClockIn:        clockIn,
		ClockOut:       clockOut,
		Reason:         strings.TrimSpace(req.Reason),
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		exists, err := s.repo.HasActiveManualRequest(txCtx, employeeNo, day)
		if err != nil {
			return err
		}
		if exists {
			return attendanceerrors.ErrManualRequestExists
		}
		return s.approvals.Submit(txCtx, approval.TypeManualAttendance, m)
	})
	if dberr.IsUniqueViolation(err, manualActiveIndex) {
		err = attendanceerrors.ErrManualRequestExists
	}
	if err != nil {
		s.logger.Warn("manual attendance request failed",
			zap.Int64("employee_no", employeeNo),
			zap.String("date", req.AttendanceDate),
			zap.Error(err),
		)
		return ManualAttendanceResponse{}, err
	}

	return mapManual(*m), nil
}

// ApplyApprovedManual writes the approved times into the attendance row of
// that date, replacing whatever the device recorded.
func (s *service) ApplyApprovedManual(ctx context.Context, m *ManualAttendanceRequest) error {
	day := dayOf(m.AttendanceDate)
	clockIn, clockOut := m.ClockIn, m.ClockOut
	measured := measure(s.shift, day, clockIn, &clockOut)
	requestID := m.ID

	row, err := s.repo.FindByEmployeeAndDate(ctx, m.EmployeeNo, day)
	switch {
	case err == nil:
		row.ClockIn = &clockIn
		row.ClockOut = &clockOut
		row.IsAbsent = false
		row.Source = SourceManual
		row.ManualRequestID = &requestID
		row.apply(measured)
		err = s.repo.Update(ctx, row)
	case errors.Is(err, attendanceerrors.ErrAttendanceNotFound):
		row = &Attendance{
			ID:              uuid.New(),
			EmployeeNo:      m.EmployeeNo,
			AttendanceDate:  day,
			ClockIn:         &clockIn,
			ClockOut:        &clockOut,
			Source:          SourceManual,
			ManualRequestID: &requestID,
		}
		row.apply(measured)
		err = s.repo.Create(ctx, row)
	}
	if err != nil {
		return err
	}

	s.logger.Info("manual attendance applied",
		zap.String("request_id", m.ID.String()),
		zap.Int64("employee_no", m.EmployeeNo),
		zap.String("date", day.Format(dateLayout)),
	)
	return nil
}

func (a *Attendance) apply(m measured) {
	a.OvertimeHours = m.overtime
	a.DelayedHours = m.delayed
	a.EarlyOutHours = m.earlyOut
}

func clockOn(day time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse(clockLayout, hhmm)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidTimeFormat
	}
	return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
}

func mapAttendance(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeNo:     a.EmployeeNo,
		AttendanceDate: a.AttendanceDate.Format(dateLayout),
		OvertimeHours:  a.OvertimeHours.StringFixed(2),
		DelayedHours:   a.DelayedHours.StringFixed(2),
		EarlyOutHours:  a.EarlyOutHours.StringFixed(2),
		IsAbsent:       a.IsAbsent,
		Source:         a.Source,
		Notes:          a.Notes,
	}
	if a.ClockIn != nil {
		v := a.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &v
	}
	if a.ClockOut != nil {
		v := a.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}

func mapManual(m ManualAttendanceRequest) ManualAttendanceResponse {
	return ManualAttendanceResponse{
		ID:             m.ID.String(),
		EmployeeNo:     m.EmployeeNo,
		AttendanceDate: m.AttendanceDate.Format(dateLayout),
		ClockIn:        m.ClockIn.Format(clockLayout),
		ClockOut:       m.ClockOut.Format(clockLayout),
		Status:         string(m.Status),
		NextApproval:   m.NextApproval,
		NextAppLevel:   m.NextAppLevel,
	}
}
