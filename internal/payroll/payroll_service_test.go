package payroll_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hrms/internal/adjustment"
	"go-hrms/internal/approval"
	approvalerrors "go-hrms/internal/approval/errors"
	"go-hrms/internal/attendance"
	"go-hrms/internal/config"
	"go-hrms/internal/employee"
	"go-hrms/internal/employeesalary"
	"go-hrms/internal/loan"
	"go-hrms/internal/payroll"
	payrollerrors "go-hrms/internal/payroll/errors"
	"go-hrms/internal/shared/txmanager"
)

// fakeRepository keeps every salary version in memory.
type fakeRepository struct {
	headers []*payroll.SalaryHeader
}

func (f *fakeRepository) find(employeeNo int64, month time.Time) []*payroll.SalaryHeader {
	var out []*payroll.SalaryHeader
	for _, h := range f.headers {
		if h.EmployeeNo == employeeNo && h.SalaryMonth.Equal(month) {
			out = append(out, h)
		}
	}
	return out
}

func (f *fakeRepository) latest(employeeNo int64, month time.Time) *payroll.SalaryHeader {
	for _, h := range f.find(employeeNo, month) {
		if h.IsLatest {
			return h
		}
	}
	return nil
}

func (f *fakeRepository) Latest(ctx context.Context, employeeNo int64, month time.Time) (*payroll.SalaryHeader, error) {
	h := f.latest(employeeNo, month)
	if h == nil {
		return nil, payrollerrors.ErrPayrollNotFound
	}
	cp := *h
	return &cp, nil
}

func (f *fakeRepository) LockLatest(ctx context.Context, employeeNo int64, month time.Time) (*payroll.SalaryHeader, error) {
	h := f.latest(employeeNo, month)
	if h == nil {
		return nil, nil
	}
	cp := *h
	return &cp, nil
}

func (f *fakeRepository) History(ctx context.Context, employeeNo int64, month time.Time) ([]payroll.SalaryHeader, error) {
	var out []payroll.SalaryHeader
	for _, h := range f.find(employeeNo, month) {
		out = append(out, *h)
	}
	return out, nil
}

func (f *fakeRepository) EarliestUnapprovedBefore(ctx context.Context, employeeNo int64, month time.Time) (*payroll.SalaryHeader, error) {
	var found *payroll.SalaryHeader
	for _, h := range f.headers {
		if h.EmployeeNo != employeeNo || !h.IsLatest || !h.SalaryMonth.Before(month) || h.Status == approval.StatusApproved {
			continue
		}
		if found == nil || h.SalaryMonth.Before(found.SalaryMonth) {
			found = h
		}
	}
	return found, nil
}

func (f *fakeRepository) MaxVersion(ctx context.Context, employeeNo int64, month time.Time) (int, error) {
	v := 0
	for _, h := range f.find(employeeNo, month) {
		if h.SalaryVersion > v {
			v = h.SalaryVersion
		}
	}
	return v, nil
}

func (f *fakeRepository) Supersede(ctx context.Context, h *payroll.SalaryHeader) error {
	for _, stored := range f.headers {
		if stored.ID != h.ID {
			continue
		}
		stored.IsLatest = false
		if stored.Status == approval.StatusPending {
			stored.Status = approval.StatusCancelled
			stored.NextApproval = nil
			stored.NextAppLevel = nil
		}
	}
	return nil
}

func (f *fakeRepository) Details(ctx context.Context, headerID uuid.UUID) ([]payroll.SalaryDetail, error) {
	for _, h := range f.headers {
		if h.ID == headerID {
			return h.Details, nil
		}
	}
	return nil, nil
}

type fakeCounter struct {
	values map[string]int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType, key string) (int64, error) {
	f.values[counterType+key]++
	return f.values[counterType+key], nil
}

func (f *fakeCounter) SetFloor(ctx context.Context, counterType, key string, value int64) error {
	if f.values[counterType+key] < value {
		f.values[counterType+key] = value
	}
	return nil
}

type fakeLocker struct {
	err      error
	released int
}

func (f *fakeLocker) Acquire(ctx context.Context, employeeNo int64, month time.Time) (func(), error) {
	if f.err != nil {
		return nil, f.err
	}
	return func() { f.released++ }, nil
}

// fakeSubmitter stores the header pending at level 1, as the engine does.
type fakeSubmitter struct {
	repo     *fakeRepository
	submitFn func(ctx context.Context, t approval.RequestType, req approval.Request) error
	calls    int
}

func (f *fakeSubmitter) Submit(ctx context.Context, t approval.RequestType, req approval.Request) error {
	f.calls++
	if f.submitFn != nil {
		return f.submitFn(ctx, t, req)
	}
	level, next := 1, int64(900)
	*req.ApprovalState() = approval.State{Status: approval.StatusPending, NextApproval: &next, NextAppLevel: &level}
	f.repo.headers = append(f.repo.headers, req.(*payroll.SalaryHeader))
	return nil
}

type fakeDirectory struct {
	emp employee.Employee
}

func (f fakeDirectory) FindByNo(ctx context.Context, no int64) (*employee.Employee, error) {
	e := f.emp
	return &e, nil
}
func (fakeDirectory) DepartmentManager(ctx context.Context, code string) (int64, error) { return 1, nil }
func (fakeDirectory) ProjectManager(ctx context.Context, code string) (int64, error)    { return 1, nil }

type fakeBreakdown struct{}

func (fakeBreakdown) CategoryComponents(ctx context.Context, c employee.Category) ([]employeesalary.Component, error) {
	return saudiBreakdown(), nil
}

func (fakeBreakdown) ContractOverrides(ctx context.Context, employeeNo int64) ([]employeesalary.Component, error) {
	return nil, nil
}

type fakeAdjustments struct {
	active  map[adjustment.Kind][]adjustment.MonthlyAdjustment
	applied []uuid.UUID
}

func (f *fakeAdjustments) Active(ctx context.Context, employeeNo int64, kind adjustment.Kind, from, to time.Time) ([]adjustment.MonthlyAdjustment, error) {
	return f.active[kind], nil
}

func (f *fakeAdjustments) MarkApplied(ctx context.Context, id uuid.UUID) error {
	f.applied = append(f.applied, id)
	return nil
}

type fakeAttendance struct{}

func (fakeAttendance) Summary(ctx context.Context, employeeNo int64, from, to time.Time) (attendance.Summary, error) {
	return attendance.Summary{}, nil
}

type paidInstallment struct {
	id     uuid.UUID
	month  time.Time
	amount decimal.Decimal
}

type fakeLoans struct {
	due  []loan.Installment
	paid []paidInstallment
	err  error
}

func (f *fakeLoans) DueInstallments(ctx context.Context, employeeNo int64, from, to time.Time) ([]loan.Installment, error) {
	return f.due, nil
}

func (f *fakeLoans) MarkInstallmentPaid(ctx context.Context, id uuid.UUID, month time.Time, amount decimal.Decimal, paidDate time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.paid = append(f.paid, paidInstallment{id: id, month: month, amount: amount})
	return nil
}

type fixture struct {
	repo        *fakeRepository
	locker      *fakeLocker
	submitter   *fakeSubmitter
	adjustments *fakeAdjustments
	loans       *fakeLoans
	svc         payroll.Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:        &fakeRepository{},
		locker:      &fakeLocker{},
		adjustments: &fakeAdjustments{active: map[adjustment.Kind][]adjustment.MonthlyAdjustment{}},
		loans:       &fakeLoans{},
	}
	f.submitter = &fakeSubmitter{repo: f.repo}
	f.svc = payroll.NewService(
		txmanager.Passthrough{},
		f.repo,
		payroll.Sources{
			Directory:   fakeDirectory{emp: employee100("5000")},
			Breakdown:   fakeBreakdown{},
			Adjustments: f.adjustments,
			Attendance:  fakeAttendance{},
			Loans:       f.loans,
		},
		&fakeCounter{values: map[string]int64{}},
		f.locker,
		f.submitter,
		config.DefaultPayrollPolicy(),
	)
	return f
}

func (f *fixture) seed(month time.Time, version int, status approval.Status) *payroll.SalaryHeader {
	h := &payroll.SalaryHeader{
		ID:            uuid.New(),
		EmployeeNo:    100,
		SalaryMonth:   month,
		SalaryVersion: version,
		IsLatest:      true,
		State:         approval.State{Status: status},
	}
	f.repo.headers = append(f.repo.headers, h)
	return h
}

func calc(month string) payroll.CalculatePayrollRequest {
	return payroll.CalculatePayrollRequest{EmployeeNo: 100, SalaryMonth: month}
}

func TestCalculate(t *testing.T) {
	ctx := context.Background()

	t.Run("first version is submitted at level 1", func(t *testing.T) {
		f := newFixture()

		resp, err := f.svc.Calculate(ctx, 7, calc("2026-03"))
		require.NoError(t, err)

		assert.Equal(t, 1, resp.SalaryVersion)
		assert.True(t, resp.IsLatest)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, 1, *resp.NextAppLevel)
		assert.Equal(t, "5000.0000", resp.NetSalary)
		assert.Equal(t, "4170.0000", resp.Details[0].Amount)
		assert.Equal(t, "830.0000", resp.Details[1].Amount)
		assert.Equal(t, 1, f.locker.released)
	})

	t.Run("calculating twice gives the next version with the same totals", func(t *testing.T) {
		f := newFixture()

		first, err := f.svc.Calculate(ctx, 7, calc("2026-03"))
		require.NoError(t, err)
		second, err := f.svc.Calculate(ctx, 7, calc("2026-03"))
		require.NoError(t, err)

		assert.Equal(t, 1, first.SalaryVersion)
		assert.Equal(t, 2, second.SalaryVersion)
		assert.Equal(t, first.NetSalary, second.NetSalary)

		old := f.repo.headers[0]
		assert.False(t, old.IsLatest)
		assert.Equal(t, approval.StatusCancelled, old.Status)
		assert.Nil(t, old.NextApproval)
	})

	t.Run("version continues after rows written without the counter", func(t *testing.T) {
		f := newFixture()
		f.seed(date(2026, time.March, 1), 4, approval.StatusRejected)

		resp, err := f.svc.Calculate(ctx, 7, calc("2026-03"))
		require.NoError(t, err)
		assert.Equal(t, 5, resp.SalaryVersion)
		assert.Equal(t, approval.StatusRejected, f.repo.headers[0].Status)
	})

	t.Run("earlier month not approved", func(t *testing.T) {
		f := newFixture()
		f.seed(date(2026, time.February, 1), 1, approval.StatusPending)

		_, err := f.svc.Calculate(ctx, 7, calc("2026-03"))

		var prior *payroll.PriorPayrollUnapprovedError
		require.ErrorAs(t, err, &prior)
		assert.Equal(t, date(2026, time.February, 1), prior.Month)
		assert.ErrorIs(t, err, payrollerrors.ErrPriorPayrollUnapproved)
		assert.Equal(t, 0, f.submitter.calls)
	})

	t.Run("earlier month approved", func(t *testing.T) {
		f := newFixture()
		f.seed(date(2026, time.February, 1), 1, approval.StatusApproved)

		_, err := f.svc.Calculate(ctx, 7, calc("2026-03"))
		assert.NoError(t, err)
	})

	t.Run("approved month is closed", func(t *testing.T) {
		f := newFixture()
		f.seed(date(2026, time.March, 1), 1, approval.StatusApproved)

		_, err := f.svc.Calculate(ctx, 7, calc("2026-03"))
		assert.ErrorIs(t, err, payrollerrors.ErrPayrollAlreadyApproved)
	})

	t.Run("lock held elsewhere", func(t *testing.T) {
		f := newFixture()
		f.locker.err = payrollerrors.ErrCalculationInProgress

		_, err := f.svc.Calculate(ctx, 7, calc("2026-03"))
		assert.ErrorIs(t, err, payrollerrors.ErrCalculationInProgress)
		assert.Equal(t, 0, f.submitter.calls)
	})

	for _, index := range []string{"uq_salary_header_version", "uq_salary_header_latest"} {
		t.Run("duplicate on "+index+" maps to concurrent modification", func(t *testing.T) {
			f := newFixture()
			f.submitter.submitFn = func(ctx context.Context, t approval.RequestType, req approval.Request) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: index}
			}

			_, err := f.svc.Calculate(ctx, 7, calc("2026-03"))
			assert.ErrorIs(t, err, approvalerrors.ErrConcurrentModification)
			var pgErr *pgconn.PgError
			assert.False(t, errors.As(err, &pgErr))
		})
	}

	t.Run("bad month", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Calculate(ctx, 7, calc("03/2026"))
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriodFormat)
	})
}

func TestRecalculate(t *testing.T) {
	ctx := context.Background()
	req := payroll.RecalculatePayrollRequest{EmployeeNo: 100, SalaryMonth: "2026-03", Reason: "late overtime entry"}

	t.Run("requires a reason", func(t *testing.T) {
		f := newFixture()
		r := req
		r.Reason = "  "

		_, err := f.svc.Recalculate(ctx, 7, r)
		assert.ErrorIs(t, err, payrollerrors.ErrRecalculationReasonRequired)
	})

	t.Run("requires an existing version", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Recalculate(ctx, 7, req)
		assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
	})

	t.Run("restarts approval on the next version", func(t *testing.T) {
		f := newFixture()
		prev := f.seed(date(2026, time.March, 1), 1, approval.StatusPending)
		level := 2
		prev.NextAppLevel = &level

		resp, err := f.svc.Recalculate(ctx, 7, req)
		require.NoError(t, err)

		assert.Equal(t, 2, resp.SalaryVersion)
		assert.Equal(t, 1, *resp.NextAppLevel)
		assert.Equal(t, "late overtime entry", *resp.RecalculationReason)
		assert.Equal(t, approval.StatusCancelled, prev.Status)
	})

	t.Run("approved version cannot be recalculated", func(t *testing.T) {
		f := newFixture()
		f.seed(date(2026, time.March, 1), 1, approval.StatusApproved)

		_, err := f.svc.Recalculate(ctx, 7, req)
		assert.ErrorIs(t, err, payrollerrors.ErrPayrollAlreadyApproved)
	})
}

func TestApplyApprovedPayroll(t *testing.T) {
	ctx := context.Background()
	bonusID, housingID, installmentID := uuid.New(), uuid.New(), uuid.New()

	newApproved := func(f *fixture) *payroll.SalaryHeader {
		h := f.seed(date(2026, time.March, 1), 1, approval.StatusApproved)
		h.Details = []payroll.SalaryDetail{
			{Kind: payroll.LineAllowance, Source: payroll.SourceBreakdown, Amount: dec("5000")},
			{Kind: payroll.LineAllowance, Source: payroll.SourceAdjustment, SourceID: &bonusID, OneTime: true, Amount: dec("250")},
			{Kind: payroll.LineDeduction, Source: payroll.SourceAdjustment, SourceID: &housingID, Amount: dec("100")},
			{Kind: payroll.LineDeduction, Source: payroll.SourceLoan, SourceID: &installmentID, Amount: dec("3000")},
		}
		return h
	}

	t.Run("settles installments and one-time adjustments", func(t *testing.T) {
		f := newFixture()
		h := newApproved(f)

		require.NoError(t, f.svc.ApplyApprovedPayroll(ctx, h))

		require.Len(t, f.loans.paid, 1)
		assert.Equal(t, installmentID, f.loans.paid[0].id)
		assert.Equal(t, date(2026, time.March, 1), f.loans.paid[0].month)
		assert.Equal(t, "3000", f.loans.paid[0].amount.String())
		assert.Equal(t, []uuid.UUID{bonusID}, f.adjustments.applied)
	})

	t.Run("loan failure aborts the approval", func(t *testing.T) {
		f := newFixture()
		h := newApproved(f)
		f.loans.err = errors.New("installment locked")

		assert.Error(t, f.svc.ApplyApprovedPayroll(ctx, h))
	})
}

func TestQueries(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_, err := f.svc.Calculate(ctx, 7, calc("2026-03"))
	require.NoError(t, err)
	_, err = f.svc.Calculate(ctx, 7, calc("2026-03"))
	require.NoError(t, err)

	latest, err := f.svc.Latest(ctx, 100, "2026-03")
	require.NoError(t, err)
	assert.Equal(t, 2, latest.SalaryVersion)

	history, err := f.svc.History(ctx, 100, "2026-03")
	require.NoError(t, err)
	assert.Len(t, history, 2)

	_, err = f.svc.History(ctx, 100, "2026-04")
	assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
}
