package leave_test

import (
	"context"
	"testing"
	"time"

	"go-hrms/internal/approval"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/shared/txmanager"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveRepository struct {
	findByIDFn             func(ctx context.Context, id uuid.UUID) (*leave.EmployeeLeave, error)
	listByEmployeeFn       func(ctx context.Context, employeeNo int64) ([]leave.EmployeeLeave, error)
	hasOverlappingPeriodFn func(ctx context.Context, employeeNo int64, startDate, endDate time.Time) (bool, error)
	cancelFn               func(ctx context.Context, id uuid.UUID) (bool, error)
	balanceFn              func(ctx context.Context, employeeNo int64, leaveType string, year int) (*leave.LeaveBalance, error)
	balancesFn             func(ctx context.Context, employeeNo int64, year int) ([]leave.LeaveBalance, error)
	consumeFn              func(ctx context.Context, employeeNo int64, leaveType string, year, days int) (bool, error)
	upsertEntitlementFn    func(ctx context.Context, b *leave.LeaveBalance) error
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id uuid.UUID) (*leave.EmployeeLeave, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, leaveerrors.ErrLeaveNotFound
}

func (f *fakeLeaveRepository) ListByEmployee(ctx context.Context, employeeNo int64) ([]leave.EmployeeLeave, error) {
	if f.listByEmployeeFn != nil {
		return f.listByEmployeeFn(ctx, employeeNo)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, employeeNo int64, startDate, endDate time.Time) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, employeeNo, startDate, endDate)
	}
	return false, nil
}

func (f *fakeLeaveRepository) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	if f.cancelFn != nil {
		return f.cancelFn(ctx, id)
	}
	return true, nil
}

func (f *fakeLeaveRepository) Balance(ctx context.Context, employeeNo int64, leaveType string, year int) (*leave.LeaveBalance, error) {
	if f.balanceFn != nil {
		return f.balanceFn(ctx, employeeNo, leaveType, year)
	}
	return &leave.LeaveBalance{EmployeeNo: employeeNo, LeaveType: leaveType, Year: year, EntitledDays: 30}, nil
}

func (f *fakeLeaveRepository) Balances(ctx context.Context, employeeNo int64, year int) ([]leave.LeaveBalance, error) {
	if f.balancesFn != nil {
		return f.balancesFn(ctx, employeeNo, year)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) Consume(ctx context.Context, employeeNo int64, leaveType string, year, days int) (bool, error) {
	if f.consumeFn != nil {
		return f.consumeFn(ctx, employeeNo, leaveType, year, days)
	}
	return true, nil
}

func (f *fakeLeaveRepository) UpsertEntitlement(ctx context.Context, b *leave.LeaveBalance) error {
	if f.upsertEntitlementFn != nil {
		return f.upsertEntitlementFn(ctx, b)
	}
	return nil
}

type fakeDirectory struct{}

func (fakeDirectory) FindByNo(ctx context.Context, no int64) (*employee.Employee, error) {
	dept := "ENG"
	return &employee.Employee{EmployeeNo: no, DepartmentCode: &dept}, nil
}
func (fakeDirectory) DepartmentManager(ctx context.Context, code string) (int64, error) { return 1, nil }
func (fakeDirectory) ProjectManager(ctx context.Context, code string) (int64, error)    { return 1, nil }

type fakeSubmitter struct {
	submitFn func(ctx context.Context, t approval.RequestType, req approval.Request) error
}

func (f *fakeSubmitter) Submit(ctx context.Context, t approval.RequestType, req approval.Request) error {
	if f.submitFn != nil {
		return f.submitFn(ctx, t, req)
	}
	level, next := 1, int64(1)
	*req.ApprovalState() = approval.State{Status: approval.StatusPending, NextApproval: &next, NextAppLevel: &level}
	return nil
}

func newLeaveService(repo leave.Repository, submitter approval.Submitter) leave.Service {
	return leave.NewService(txmanager.Passthrough{}, repo, fakeDirectory{}, submitter)
}

func TestLeaveService_Create(t *testing.T) {
	validReq := leave.CreateLeaveRequest{
		LeaveType: leave.TypeAnnual,
		StartDate: "2026-03-10",
		EndDate:   "2026-03-12",
		Reason:    "Family matters",
	}

	t.Run("success submits leave for approval", func(t *testing.T) {
		var submitted *leave.EmployeeLeave
		submitter := &fakeSubmitter{}
		submitter.submitFn = func(ctx context.Context, rt approval.RequestType, req approval.Request) error {
			assert.Equal(t, approval.TypeLeave, rt)
			submitted = req.(*leave.EmployeeLeave)
			submitted.Status = approval.StatusPending
			return nil
		}

		svc := newLeaveService(&fakeLeaveRepository{}, submitter)
		resp, err := svc.Create(context.Background(), 100, validReq)

		assert.NoError(t, err)
		assert.Equal(t, 3, resp.TotalDays)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "ENG", submitted.DepartmentCode)
		assert.Equal(t, int64(100), submitted.CreatedBy)
	})

	t.Run("invalid date range", func(t *testing.T) {
		req := validReq
		req.StartDate = "2026-03-13"

		svc := newLeaveService(&fakeLeaveRepository{}, &fakeSubmitter{})
		_, err := svc.Create(context.Background(), 100, req)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("invalid date format", func(t *testing.T) {
		req := validReq
		req.EndDate = "12/03/2026"

		svc := newLeaveService(&fakeLeaveRepository{}, &fakeSubmitter{})
		_, err := svc.Create(context.Background(), 100, req)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})

	t.Run("overlap", func(t *testing.T) {
		repo := &fakeLeaveRepository{
			hasOverlappingPeriodFn: func(ctx context.Context, employeeNo int64, startDate, endDate time.Time) (bool, error) {
				return true, nil
			},
		}
		svc := newLeaveService(repo, &fakeSubmitter{})
		_, err := svc.Create(context.Background(), 100, validReq)
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		repo := &fakeLeaveRepository{
			balanceFn: func(ctx context.Context, employeeNo int64, leaveType string, year int) (*leave.LeaveBalance, error) {
				return &leave.LeaveBalance{EntitledDays: 21, UsedDays: 20}, nil
			},
		}
		svc := newLeaveService(repo, &fakeSubmitter{})
		_, err := svc.Create(context.Background(), 100, validReq)
		assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
	})

	t.Run("unpaid leave skips the balance", func(t *testing.T) {
		req := validReq
		req.LeaveType = leave.TypeUnpaid
		repo := &fakeLeaveRepository{
			balanceFn: func(ctx context.Context, employeeNo int64, leaveType string, year int) (*leave.LeaveBalance, error) {
				t.Fatal("balance must not be read for unpaid leave")
				return nil, nil
			},
		}
		svc := newLeaveService(repo, &fakeSubmitter{})
		_, err := svc.Create(context.Background(), 100, req)
		assert.NoError(t, err)
	})
}

func TestEmployeeLeave_DaysByYear(t *testing.T) {
	l := leave.EmployeeLeave{
		StartDate: time.Date(2025, time.December, 30, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, map[int]int{2025: 2, 2026: 2}, l.DaysByYear())
}

func TestLeaveService_ApplyApprovedLeave(t *testing.T) {
	l := &leave.EmployeeLeave{
		ID:         uuid.New(),
		EmployeeNo: 100,
		LeaveType:  leave.TypeAnnual,
		StartDate:  time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC),
		TotalDays:  3,
	}

	t.Run("consumes every year it touches", func(t *testing.T) {
		consumed := map[int]int{}
		repo := &fakeLeaveRepository{
			consumeFn: func(ctx context.Context, employeeNo int64, leaveType string, year, days int) (bool, error) {
				consumed[year] = days
				return true, nil
			},
		}
		svc := newLeaveService(repo, &fakeSubmitter{})

		assert.NoError(t, svc.ApplyApprovedLeave(context.Background(), l))
		assert.Equal(t, map[int]int{2025: 1, 2026: 2}, consumed)
	})

	t.Run("shortfall fails the approval", func(t *testing.T) {
		repo := &fakeLeaveRepository{
			consumeFn: func(ctx context.Context, employeeNo int64, leaveType string, year, days int) (bool, error) {
				return year == 2025, nil
			},
		}
		svc := newLeaveService(repo, &fakeSubmitter{})

		err := svc.ApplyApprovedLeave(context.Background(), l)
		assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	id := uuid.New()
	repo := &fakeLeaveRepository{
		findByIDFn: func(ctx context.Context, got uuid.UUID) (*leave.EmployeeLeave, error) {
			return &leave.EmployeeLeave{ID: got, EmployeeNo: 100}, nil
		},
	}

	t.Run("owner cancels pending leave", func(t *testing.T) {
		svc := newLeaveService(repo, &fakeSubmitter{})
		assert.NoError(t, svc.Cancel(context.Background(), 100, id))
	})

	t.Run("other employee", func(t *testing.T) {
		svc := newLeaveService(repo, &fakeSubmitter{})
		assert.ErrorIs(t, svc.Cancel(context.Background(), 101, id), leaveerrors.ErrNotLeaveOwner)
	})

	t.Run("no longer pending", func(t *testing.T) {
		repo.cancelFn = func(ctx context.Context, id uuid.UUID) (bool, error) { return false, nil }
		svc := newLeaveService(repo, &fakeSubmitter{})
		assert.ErrorIs(t, svc.Cancel(context.Background(), 100, id), leaveerrors.ErrLeaveNotCancellable)
	})
}

func TestLeaveService_SetEntitlement(t *testing.T) {
	var upserted *leave.LeaveBalance
	repo := &fakeLeaveRepository{
		upsertEntitlementFn: func(ctx context.Context, b *leave.LeaveBalance) error { upserted = b; return nil },
		balanceFn: func(ctx context.Context, employeeNo int64, leaveType string, year int) (*leave.LeaveBalance, error) {
			return &leave.LeaveBalance{LeaveType: leaveType, Year: year, EntitledDays: 21, UsedDays: 4}, nil
		},
	}
	svc := newLeaveService(repo, &fakeSubmitter{})

	resp, err := svc.SetEntitlement(context.Background(), leave.SetEntitlementRequest{
		EmployeeNo: 100, LeaveType: leave.TypeAnnual, Year: 2026, EntitledDays: 21,
	})
	assert.NoError(t, err)
	assert.Equal(t, 21, upserted.EntitledDays)
	assert.Equal(t, 17, resp.AvailableDays)

	_, err = svc.SetEntitlement(context.Background(), leave.SetEntitlementRequest{
		EmployeeNo: 100, LeaveType: leave.TypeAnnual, Year: 2026, EntitledDays: -1,
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidEntitlement)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
