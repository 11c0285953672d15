package employeesalary_test

import (
	"testing"

	"go-hrms/internal/employeesalary"
	employeesalaryerrors "go-hrms/internal/employeesalary/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func pct(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func saudiDefaults() []employeesalary.Component {
	return []employeesalary.Component{
		{TypeCode: 2, Name: "Transport", Percentage: pct("0.166")},
		{TypeCode: 1, Name: "Basic", Percentage: pct("0.834")},
	}
}

func TestMerge(t *testing.T) {
	t.Run("defaults sorted by type code", func(t *testing.T) {
		got, err := employeesalary.Merge(saudiDefaults(), nil)

		assert.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, "Basic", got[0].Name)
		assert.Equal(t, "Transport", got[1].Name)
	})

	t.Run("override wins per type code", func(t *testing.T) {
		overrides := []employeesalary.Component{
			{TypeCode: 1, Name: "Basic", Percentage: pct("0.75")},
			{TypeCode: 3, Name: "Housing", Percentage: pct("0.084")},
		}

		got, err := employeesalary.Merge(saudiDefaults(), overrides)

		assert.NoError(t, err)
		assert.Len(t, got, 3)
		assert.True(t, got[0].Percentage.Equal(pct("0.75")))
		assert.Equal(t, 3, got[2].TypeCode)
	})

	t.Run("sum other than one rejected", func(t *testing.T) {
		_, err := employeesalary.Merge([]employeesalary.Component{{TypeCode: 1, Percentage: pct("0.9")}}, nil)
		assert.ErrorIs(t, err, employeesalaryerrors.ErrInvalidBreakdown)
		assert.ErrorContains(t, err, "sum to 0.9")
	})

	t.Run("empty table rejected", func(t *testing.T) {
		_, err := employeesalary.Merge(nil, nil)
		assert.ErrorIs(t, err, employeesalaryerrors.ErrBreakdownNotConfigured)
	})
}

func TestSplit(t *testing.T) {
	components, err := employeesalary.Merge(saudiDefaults(), nil)
	assert.NoError(t, err)

	t.Run("exact shares", func(t *testing.T) {
		shares := employeesalary.Split(pct("5000"), components, 4)

		assert.Equal(t, "4170.0000", shares[0].StringFixed(4))
		assert.Equal(t, "830.0000", shares[1].StringFixed(4))
	})

	t.Run("residue lands on first share", func(t *testing.T) {
		thirds := []employeesalary.Component{
			{TypeCode: 1, Percentage: pct("0.333333")},
			{TypeCode: 2, Percentage: pct("0.333333")},
			{TypeCode: 3, Percentage: pct("0.333334")},
		}
		shares := employeesalary.Split(pct("100"), thirds, 4)

		total := shares[0].Add(shares[1]).Add(shares[2])
		assert.True(t, total.Equal(pct("100")))
	})
}
