package employeesalary

import (
	"fmt"
	"sort"

	employeesalaryerrors "go-hrms/internal/employeesalary/errors"

	"github.com/shopspring/decimal"
)

// Merge applies contract overrides on top of the category defaults, keyed by
// type code, and checks that the result sums to exactly one.
func Merge(defaults, overrides []Component) ([]Component, error) {
	byType := make(map[int]Component, len(defaults)+len(overrides))
	for _, c := range defaults {
		byType[c.TypeCode] = c
	}
	for _, c := range overrides {
		byType[c.TypeCode] = c
	}

	merged := make([]Component, 0, len(byType))
	total := decimal.Zero
	for _, c := range byType {
		if c.Percentage.IsNegative() {
			return nil, fmt.Errorf("%w: type %d is %s", employeesalaryerrors.ErrInvalidBreakdown, c.TypeCode, c.Percentage)
		}
		if c.Percentage.IsZero() {
			continue
		}
		merged = append(merged, c)
		total = total.Add(c.Percentage)
	}
	if len(merged) == 0 {
		return nil, employeesalaryerrors.ErrBreakdownNotConfigured
	}
	if !total.Equal(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: components sum to %s", employeesalaryerrors.ErrInvalidBreakdown, total)
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].TypeCode < merged[j].TypeCode })
	return merged, nil
}

// Split divides amount across the components, rounding each share to places.
// The rounding residue is added to the first component so the shares always
// add back up to amount.
func Split(amount decimal.Decimal, components []Component, places int32) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(components))
	if len(components) == 0 {
		return shares
	}

	allocated := decimal.Zero
	for i, c := range components {
		shares[i] = amount.Mul(c.Percentage).Round(places)
		allocated = allocated.Add(shares[i])
	}
	shares[0] = shares[0].Add(amount.Sub(allocated))
	return shares
}
