package loan

import (
	"time"

	"github.com/shopspring/decimal"

	loanerrors "go-hrms/internal/loan/errors"
)

const moneyPlaces = 2

// BuildSchedule splits amount into n monthly installments starting at first.
// Every installment but the last is amount/n truncated to cents; the last
// absorbs the remainder so the schedule sums to amount exactly.
func BuildSchedule(amount decimal.Decimal, n int, first time.Time) ([]Installment, error) {
	if !amount.IsPositive() {
		return nil, loanerrors.ErrInvalidLoanAmount
	}
	if n <= 0 {
		return nil, loanerrors.ErrInvalidInstallmentCount
	}

	per := amount.Div(decimal.NewFromInt(int64(n))).Truncate(moneyPlaces)
	last := amount.Sub(per.Mul(decimal.NewFromInt(int64(n - 1))))

	out := make([]Installment, n)
	for i := range out {
		share := per
		if i == n-1 {
			share = last
		}
		out[i] = Installment{
			SeqNo:   i + 1,
			DueDate: AddMonths(first, i),
			Amount:  share,
			Status:  InstallmentUnpaid,
		}
	}
	return out, nil
}

// AddMonths moves t by months, clamping the day to the end of the target
// month (Jan 31 + 1 month = Feb 28 or 29).
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(target); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, 0, 0, 0, 0, t.Location())
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
