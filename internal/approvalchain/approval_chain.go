package approvalchain

import (
	"errors"
	"fmt"
	"sort"

	approvalchainerrors "go-hrms/internal/approvalchain/errors"
	"go-hrms/internal/approver"
)

// Compile parses the resolver function of every active row. An unknown
// function name fails here rather than at approval time.
func Compile(rows []ChainLevel) ([]Level, error) {
	levels := make([]Level, 0, len(rows))
	for _, row := range rows {
		if !row.IsActive {
			continue
		}
		fn, err := approver.Parse(row.FunctionName, row.SpecificEmployeeNo)
		if err != nil {
			return nil, fmt.Errorf("%s level %d: %w", row.RequestType, row.LevelNo, err)
		}
		levels = append(levels, Level{
			RequestType:    row.RequestType,
			No:             row.LevelNo,
			DepartmentCode: row.DepartmentCode,
			ProjectCode:    row.ProjectCode,
			Function:       fn,
			Close:          row.CloseLevel,
		})
	}
	sort.SliceStable(levels, func(i, j int) bool { return levels[i].No < levels[j].No })
	return levels, nil
}

// Select returns the entry for levelNo whose scope matches most specifically.
func Select(levels []Level, levelNo int, scope Scope) (Level, error) {
	var (
		best  Level
		score = -1
		tie   bool
	)
	for _, l := range levels {
		if l.No != levelNo || !l.matches(scope) {
			continue
		}
		switch s := l.specificity(); {
		case s > score:
			best, score, tie = l, s, false
		case s == score:
			tie = true
		}
	}
	if score < 0 {
		return Level{}, fmt.Errorf("%w: level %d", approvalchainerrors.ErrLevelNotConfigured, levelNo)
	}
	if tie {
		return Level{}, fmt.Errorf("%w: level %d", approvalchainerrors.ErrAmbiguousChain, levelNo)
	}
	return best, nil
}

// IsFinal reports whether approving levelNo completes the chain.
func IsFinal(levels []Level, levelNo int, scope Scope) (bool, error) {
	current, err := Select(levels, levelNo, scope)
	if err != nil {
		return false, err
	}
	if current.Close {
		return true, nil
	}
	_, err = Select(levels, levelNo+1, scope)
	if errors.Is(err, approvalchainerrors.ErrLevelNotConfigured) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// CountLevels is the number of approvals a request with scope will need.
func CountLevels(levels []Level, scope Scope) (int, error) {
	n := 0
	for {
		final, err := IsFinal(levels, n+1, scope)
		if errors.Is(err, approvalchainerrors.ErrLevelNotConfigured) {
			return n, nil
		}
		if err != nil {
			return 0, err
		}
		n++
		if final {
			return n, nil
		}
	}
}

type scopeKey struct {
	department string
	project    string
}

// Validate checks a request type's configuration: function names parse,
// level numbers run from 1 without gaps, no duplicate (level, scope) and at
// most one close level per scope.
func Validate(rows []ChainLevel) error {
	var problems []error

	seen := map[scopeKey]map[int]bool{}
	closes := map[scopeKey]int{}
	numbers := map[int]bool{}
	maxLevel := 0

	for _, row := range rows {
		if !row.IsActive {
			continue
		}
		if _, err := approver.Parse(row.FunctionName, row.SpecificEmployeeNo); err != nil {
			problems = append(problems, fmt.Errorf("level %d: %w", row.LevelNo, err))
		}
		if row.LevelNo < 1 {
			problems = append(problems, fmt.Errorf("level %d: level numbers start at 1", row.LevelNo))
			continue
		}

		key := scopeKey{department: row.DepartmentCode, project: row.ProjectCode}
		if seen[key] == nil {
			seen[key] = map[int]bool{}
		}
		if seen[key][row.LevelNo] {
			problems = append(problems, fmt.Errorf("level %d: duplicate entry for department %q project %q",
				row.LevelNo, row.DepartmentCode, row.ProjectCode))
		}
		seen[key][row.LevelNo] = true

		if row.CloseLevel {
			closes[key]++
			if closes[key] > 1 {
				problems = append(problems, fmt.Errorf("more than one close level for department %q project %q",
					row.DepartmentCode, row.ProjectCode))
			}
		}

		numbers[row.LevelNo] = true
		if row.LevelNo > maxLevel {
			maxLevel = row.LevelNo
		}
	}

	for n := 1; n <= maxLevel; n++ {
		if !numbers[n] {
			problems = append(problems, fmt.Errorf("level %d is missing", n))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", approvalchainerrors.ErrInvalidChain, errors.Join(problems...))
}
