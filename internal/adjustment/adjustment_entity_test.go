package adjustment_test

import (
	"testing"
	"time"

	"go-hrms/internal/adjustment"
	"go-hrms/internal/approval"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthlyAdjustment_ActiveIn(t *testing.T) {
	from, to := date(2024, time.March, 1), date(2024, time.March, 31)
	feb := date(2024, time.February, 29)
	apr := date(2024, time.April, 1)
	midMar := date(2024, time.March, 15)

	tests := []struct {
		name   string
		status approval.Status
		start  time.Time
		end    *time.Time
		want   bool
	}{
		{"open ended from earlier month", approval.StatusApproved, date(2024, time.January, 1), nil, true},
		{"starts mid month", approval.StatusApproved, midMar, nil, true},
		{"starts next month", approval.StatusApproved, apr, nil, false},
		{"ended before month", approval.StatusApproved, date(2024, time.January, 1), &feb, false},
		{"ends mid month", approval.StatusApproved, date(2024, time.January, 1), &midMar, true},
		{"pending", approval.StatusPending, from, nil, false},
		{"applied", approval.StatusApplied, from, nil, false},
		{"deleted", approval.StatusDeleted, from, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := adjustment.MonthlyAdjustment{StartDate: tt.start, EndDate: tt.end}
			a.Status = tt.status
			assert.Equal(t, tt.want, a.ActiveIn(from, to))
		})
	}
}

func TestKind_RequestType(t *testing.T) {
	assert.Equal(t, approval.TypeAllowance, adjustment.KindAllowance.RequestType())
	assert.Equal(t, approval.TypeDeduction, adjustment.KindDeduction.RequestType())
}
