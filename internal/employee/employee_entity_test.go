package employee_test

import (
	"testing"
	"time"

	"go-hrms/internal/employee"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEmployedWithin(t *testing.T) {
	from, to := date(2026, 3, 1), date(2026, 3, 31)

	t.Run("full month", func(t *testing.T) {
		e := employee.Employee{HireDate: date(2020, 1, 1)}
		start, end, ok := e.EmployedWithin(from, to)
		assert.True(t, ok)
		assert.Equal(t, from, start)
		assert.Equal(t, to, end)
	})

	t.Run("hired mid month", func(t *testing.T) {
		e := employee.Employee{HireDate: date(2026, 3, 10)}
		start, _, ok := e.EmployedWithin(from, to)
		assert.True(t, ok)
		assert.Equal(t, date(2026, 3, 10), start)
	})

	t.Run("terminated mid month", func(t *testing.T) {
		term := date(2026, 3, 15)
		e := employee.Employee{HireDate: date(2020, 1, 1), TerminationDate: &term}
		_, end, ok := e.EmployedWithin(from, to)
		assert.True(t, ok)
		assert.Equal(t, term, end)
	})

	t.Run("hired after month", func(t *testing.T) {
		e := employee.Employee{HireDate: date(2026, 4, 2)}
		_, _, ok := e.EmployedWithin(from, to)
		assert.False(t, ok)
	})
}
