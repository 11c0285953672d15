package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"go-hrms/internal/adjustment"
	"go-hrms/internal/attendance"
	"go-hrms/internal/config"
	"go-hrms/internal/employee"
	"go-hrms/internal/employeesalary"
	"go-hrms/internal/loan"
	payrollerrors "go-hrms/internal/payroll/errors"
)

// Inputs is everything one salary month depends on, already loaded.
type Inputs struct {
	Employee     employee.Employee
	Month        time.Time
	Breakdown    []employeesalary.Component
	Allowances   []adjustment.MonthlyAdjustment
	Deductions   []adjustment.MonthlyAdjustment
	Attendance   attendance.Summary
	Installments []loan.Installment
}

// Build turns the inputs into an unsaved header with its detail lines and
// totals. It has no side effects, so the same inputs always give the same
// lines.
func Build(in Inputs, policy config.PayrollPolicy) (*SalaryHeader, error) {
	if policy.DaysBasis <= 0 || policy.HoursPerDay <= 0 {
		return nil, payrollerrors.ErrInvalidPolicy
	}

	from, to := monthBounds(in.Month)
	emp := in.Employee
	start, end, ok := emp.EmployedWithin(from, to)
	if !ok {
		return nil, payrollerrors.ErrEmployeeNotActive
	}

	h := &SalaryHeader{
		EmployeeNo:  emp.EmployeeNo,
		SalaryMonth: from,
		SalaryType:  SalaryTypeWork,
	}
	if emp.TerminationDate != nil && !dayOf(*emp.TerminationDate).After(to) {
		h.SalaryType = SalaryTypeFinalSettlement
	}
	if emp.DepartmentCode != nil {
		h.DepartmentCode = *emp.DepartmentCode
	}
	if emp.ProjectCode != nil {
		h.ProjectCode = *emp.ProjectCode
	}

	lines := &lineWriter{}

	gross := prorate(emp.MonthlySalary, start, end, to.Day())
	shares := employeesalary.Split(gross, in.Breakdown, lineAmountPlaces)
	for i, c := range in.Breakdown {
		lines.add(SalaryDetail{Kind: LineAllowance, Source: SourceBreakdown, TypeCode: c.TypeCode, Description: c.Name, Amount: shares[i]})
	}

	for _, a := range in.Allowances {
		lines.adjustment(LineAllowance, a)
	}

	hourly := emp.MonthlySalary.
		Div(decimal.NewFromInt(int64(policy.DaysBasis))).
		Div(decimal.NewFromInt(int64(policy.HoursPerDay)))
	daily := emp.MonthlySalary.Div(decimal.NewFromInt(int64(policy.DaysBasis)))

	att := in.Attendance
	lines.computed(LineAllowance, SourceOvertime, TypeCodeOvertime, "Overtime",
		att.OvertimeHours.Mul(hourly).Mul(policy.OvertimeMultiplier))

	for _, d := range in.Deductions {
		lines.adjustment(LineDeduction, d)
	}

	lines.computed(LineDeduction, SourceAttendance, TypeCodeDelay, "Delay", att.DelayedHours.Mul(hourly))
	lines.computed(LineDeduction, SourceAttendance, TypeCodeAbsence, "Absence", att.AbsentDays.Mul(daily))
	lines.computed(LineDeduction, SourceAttendance, TypeCodeEarlyOut, "Early out", att.EarlyOutHours.Mul(hourly))

	for _, it := range in.Installments {
		if !it.Outstanding() || it.DueDate.Before(from) || it.DueDate.After(to) {
			continue
		}
		id := it.ID
		lines.add(SalaryDetail{
			Kind:        LineDeduction,
			Source:      SourceLoan,
			TypeCode:    TypeCodeLoan,
			Description: "Loan installment",
			Amount:      it.Amount.Round(lineAmountPlaces),
			SourceID:    &id,
		})
	}

	h.Details = lines.out
	h.RecalculateTotals()
	return h, nil
}

// prorate pays the calendar days worked in a month of monthDays days.
func prorate(salary decimal.Decimal, start, end time.Time, monthDays int) decimal.Decimal {
	worked := int(dayOf(end).Sub(dayOf(start)).Hours()/24) + 1
	if worked >= monthDays {
		return salary.Round(lineAmountPlaces)
	}
	return salary.
		Mul(decimal.NewFromInt(int64(worked))).
		Div(decimal.NewFromInt(int64(monthDays))).
		Round(lineAmountPlaces)
}

type lineWriter struct {
	out []SalaryDetail
}

func (w *lineWriter) add(d SalaryDetail) {
	d.LineNo = len(w.out) + 1
	w.out = append(w.out, d)
}

func (w *lineWriter) adjustment(kind LineKind, a adjustment.MonthlyAdjustment) {
	id := a.ID
	w.add(SalaryDetail{
		Kind:        kind,
		Source:      SourceAdjustment,
		TypeCode:    a.TypeCode,
		Description: a.Description,
		Amount:      a.Amount.Round(lineAmountPlaces),
		SourceID:    &id,
		OneTime:     a.OneTime(),
	})
}

// computed skips zero amounts so quiet months carry no empty lines.
func (w *lineWriter) computed(kind LineKind, source LineSource, code int, desc string, amount decimal.Decimal) {
	amount = amount.Round(lineAmountPlaces)
	if !amount.IsPositive() {
		return
	}
	w.add(SalaryDetail{Kind: kind, Source: source, TypeCode: code, Description: desc, Amount: amount})
}

// monthBounds returns the first and last day of the month containing t.
func monthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
