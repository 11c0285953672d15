package approvalchain_test

import (
	"context"
	"regexp"
	"testing"

	"go-hrms/internal/approvalchain"
	"go-hrms/internal/approver"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	assert.NoError(t, err)
	return db, mock
}

func TestRepository_Levels(t *testing.T) {
	db, mock := newMockDB(t)
	repo := approvalchain.NewRepository(db)

	rows := sqlmock.NewRows([]string{"request_type", "level_no", "department_code", "project_code", "function_name", "specific_employee_no", "close_level", "is_active"}).
		AddRow("LOAN", 1, "", "", approver.NameDirectManager, nil, false, true).
		AddRow("LOAN", 2, "", "", approver.NameSpecificEmployee, int64(99), true, true)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "approval_chain_levels" WHERE request_type = $1 AND is_active = $2 ORDER BY level_no ASC`)).
		WithArgs("LOAN", true).
		WillReturnRows(rows)

	levels, err := repo.Levels(context.Background(), "LOAN")
	assert.NoError(t, err)
	assert.Len(t, levels, 2)
	assert.Equal(t, approver.SpecificEmployee{EmployeeNo: 99}, levels[1].Function)
	assert.True(t, levels[1].Close)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ReplaceRejectsInvalid(t *testing.T) {
	db, mock := newMockDB(t)
	repo := approvalchain.NewRepository(db)

	err := repo.Replace(context.Background(), "LOAN", []approvalchain.ChainLevel{
		{LevelNo: 2, FunctionName: approver.NameHRManager},
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
