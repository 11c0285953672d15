package payroll_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hrms/internal/adjustment"
	"go-hrms/internal/approval"
	"go-hrms/internal/attendance"
	"go-hrms/internal/config"
	"go-hrms/internal/employee"
	"go-hrms/internal/employeesalary"
	"go-hrms/internal/loan"
	"go-hrms/internal/payroll"
	payrollerrors "go-hrms/internal/payroll/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func saudiBreakdown() []employeesalary.Component {
	return []employeesalary.Component{
		{TypeCode: 1, Name: "Basic", Percentage: dec("0.834")},
		{TypeCode: 2, Name: "Transport", Percentage: dec("0.166")},
	}
}

func employee100(salary string) employee.Employee {
	return employee.Employee{
		EmployeeNo:    100,
		Category:      employee.CategorySaudi,
		MonthlySalary: dec(salary),
		HireDate:      date(2020, time.January, 1),
	}
}

func amounts(h *payroll.SalaryHeader) map[string]string {
	out := map[string]string{}
	for _, d := range h.Details {
		out[d.Description] = d.Amount.StringFixed(4)
	}
	return out
}

func TestBuild(t *testing.T) {
	policy := config.DefaultPayrollPolicy()
	march := date(2026, time.March, 1)

	t.Run("full month splits by category", func(t *testing.T) {
		h, err := payroll.Build(payroll.Inputs{
			Employee:  employee100("5000"),
			Month:     march,
			Breakdown: saudiBreakdown(),
		}, policy)
		require.NoError(t, err)

		assert.Equal(t, map[string]string{"Basic": "4170.0000", "Transport": "830.0000"}, amounts(h))
		assert.Equal(t, "5000.0000", h.NetSalary.StringFixed(4))
		assert.Equal(t, "5000.0000", h.GrossSalary.StringFixed(4))
		assert.True(t, h.TotalDeductions.IsZero())
		assert.Equal(t, payroll.SalaryTypeWork, h.SalaryType)
		assert.Equal(t, 1, h.Details[0].LineNo)
		assert.Equal(t, 2, h.Details[1].LineNo)
	})

	t.Run("hire in the middle of the month is pro-rated", func(t *testing.T) {
		emp := employee100("3000")
		emp.HireDate = date(2026, time.June, 16)

		h, err := payroll.Build(payroll.Inputs{Employee: emp, Month: date(2026, time.June, 1), Breakdown: saudiBreakdown()}, policy)
		require.NoError(t, err)

		assert.Equal(t, "1500.0000", h.GrossSalary.StringFixed(4))
		assert.Equal(t, "1251.0000", h.Details[0].Amount.StringFixed(4))
		assert.Equal(t, "249.0000", h.Details[1].Amount.StringFixed(4))
	})

	t.Run("termination in the month is a final settlement", func(t *testing.T) {
		emp := employee100("3100")
		end := date(2026, time.March, 10)
		emp.TerminationDate = &end

		h, err := payroll.Build(payroll.Inputs{Employee: emp, Month: march, Breakdown: saudiBreakdown()}, policy)
		require.NoError(t, err)

		assert.Equal(t, payroll.SalaryTypeFinalSettlement, h.SalaryType)
		assert.Equal(t, "1000.0000", h.GrossSalary.StringFixed(4))
	})

	t.Run("employee not on payroll in the month", func(t *testing.T) {
		emp := employee100("3000")
		emp.HireDate = date(2026, time.April, 1)

		_, err := payroll.Build(payroll.Inputs{Employee: emp, Month: march, Breakdown: saudiBreakdown()}, policy)
		assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotActive)
	})

	t.Run("attendance becomes overtime and reserved deductions", func(t *testing.T) {
		// 4800 / 30 days / 8 hours = 20 per hour, 160 per day.
		h, err := payroll.Build(payroll.Inputs{
			Employee:  employee100("4800"),
			Month:     march,
			Breakdown: saudiBreakdown(),
			Attendance: attendance.Summary{
				OvertimeHours: dec("2"),
				DelayedHours:  dec("1.5"),
				AbsentDays:    dec("1"),
				EarlyOutHours: dec("0.5"),
			},
		}, policy)
		require.NoError(t, err)

		byCode := map[int]payroll.SalaryDetail{}
		for _, d := range h.Details {
			byCode[d.TypeCode] = d
		}
		assert.Equal(t, "60.0000", byCode[payroll.TypeCodeOvertime].Amount.StringFixed(4))
		assert.Equal(t, payroll.LineAllowance, byCode[payroll.TypeCodeOvertime].Kind)
		assert.Equal(t, "30.0000", byCode[payroll.TypeCodeDelay].Amount.StringFixed(4))
		assert.Equal(t, "160.0000", byCode[payroll.TypeCodeAbsence].Amount.StringFixed(4))
		assert.Equal(t, "10.0000", byCode[payroll.TypeCodeEarlyOut].Amount.StringFixed(4))

		assert.Equal(t, "60.0000", h.TotalOvertime.StringFixed(4))
		assert.Equal(t, "200.0000", h.TotalAbsence.StringFixed(4))
		assert.Equal(t, "4660.0000", h.NetSalary.StringFixed(4))
	})

	t.Run("adjustments and due installments", func(t *testing.T) {
		bonus := adjustment.MonthlyAdjustment{
			ID: uuid.New(), Kind: adjustment.KindAllowance, TypeCode: 7, Description: "Bonus",
			Amount: dec("250"), Recurrence: adjustment.RecurrenceVariable,
			State: approval.State{Status: approval.StatusApproved},
		}
		housing := adjustment.MonthlyAdjustment{
			ID: uuid.New(), Kind: adjustment.KindDeduction, TypeCode: 8, Description: "Housing",
			Amount: dec("100"), Recurrence: adjustment.RecurrenceFixed,
			State: approval.State{Status: approval.StatusApproved},
		}
		due := loan.Installment{ID: uuid.New(), DueDate: date(2026, time.March, 1), Amount: dec("3000"), Status: loan.InstallmentUnpaid}
		postponed := loan.Installment{ID: uuid.New(), DueDate: date(2026, time.March, 20), Amount: dec("500"), Status: loan.InstallmentPostponed}
		paid := loan.Installment{ID: uuid.New(), DueDate: date(2026, time.March, 1), Amount: dec("3000"), Status: loan.InstallmentPaid}
		later := loan.Installment{ID: uuid.New(), DueDate: date(2026, time.April, 1), Amount: dec("3000"), Status: loan.InstallmentUnpaid}

		h, err := payroll.Build(payroll.Inputs{
			Employee:     employee100("5000"),
			Month:        march,
			Breakdown:    saudiBreakdown(),
			Allowances:   []adjustment.MonthlyAdjustment{bonus},
			Deductions:   []adjustment.MonthlyAdjustment{housing},
			Installments: []loan.Installment{due, postponed, paid, later},
		}, policy)
		require.NoError(t, err)

		var loanIDs []uuid.UUID
		for _, d := range h.Details {
			switch d.Source {
			case payroll.SourceLoan:
				assert.Equal(t, payroll.TypeCodeLoan, d.TypeCode)
				loanIDs = append(loanIDs, *d.SourceID)
			case payroll.SourceAdjustment:
				if d.Description == "Bonus" {
					assert.True(t, d.OneTime)
					assert.Equal(t, bonus.ID, *d.SourceID)
				} else {
					assert.False(t, d.OneTime)
				}
			}
		}
		assert.ElementsMatch(t, []uuid.UUID{due.ID, postponed.ID}, loanIDs)
		assert.Equal(t, "5250.0000", h.TotalAllowances.StringFixed(4))
		assert.Equal(t, "3500.0000", h.TotalLoans.StringFixed(4))
		assert.Equal(t, "3600.0000", h.TotalDeductions.StringFixed(4))
		assert.Equal(t, "1650.0000", h.NetSalary.StringFixed(4))
	})

	t.Run("same inputs give the same totals", func(t *testing.T) {
		in := payroll.Inputs{Employee: employee100("5000"), Month: march, Breakdown: saudiBreakdown()}
		a, err := payroll.Build(in, policy)
		require.NoError(t, err)
		b, err := payroll.Build(in, policy)
		require.NoError(t, err)
		assert.True(t, a.NetSalary.Equal(b.NetSalary))
		assert.Equal(t, len(a.Details), len(b.Details))
	})

	t.Run("missing policy", func(t *testing.T) {
		_, err := payroll.Build(payroll.Inputs{Employee: employee100("5000"), Month: march}, config.PayrollPolicy{})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPolicy)
	})
}

func TestRecalculateTotals(t *testing.T) {
	h := &payroll.SalaryHeader{Details: []payroll.SalaryDetail{
		{Kind: payroll.LineAllowance, Source: payroll.SourceBreakdown, Amount: dec("1000")},
		{Kind: payroll.LineAllowance, Source: payroll.SourceOvertime, Amount: dec("50")},
		{Kind: payroll.LineDeduction, Source: payroll.SourceAttendance, Amount: dec("20")},
		{Kind: payroll.LineDeduction, Source: payroll.SourceLoan, Amount: dec("300")},
		{Kind: payroll.LineDeduction, Source: payroll.SourceAdjustment, Amount: dec("30")},
	}}

	h.RecalculateTotals()
	assert.Equal(t, "700", h.NetSalary.String())
	assert.Equal(t, "1000", h.GrossSalary.String())
	assert.Equal(t, "350", h.TotalDeductions.String())

	h.Details = h.Details[:2]
	h.RecalculateTotals()
	assert.Equal(t, "1050", h.NetSalary.String())
	assert.True(t, h.TotalLoans.IsZero())
}
