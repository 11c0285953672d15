package employee_test

import (
	"context"
	"testing"

	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) (employee.Directory, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return employee.NewRepository(gdb), mock
}

func TestRepository_FindByNo(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(`SELECT \* FROM "employees" WHERE employee_no = \$1`).
			WithArgs(int64(100), 1).
			WillReturnRows(sqlmock.NewRows([]string{"employee_no", "full_name", "category", "monthly_salary"}).
				AddRow(100, "Ahmed", "S", "5000.0000"))

		e, err := repo.FindByNo(context.Background(), 100)

		assert.NoError(t, err)
		assert.Equal(t, int64(100), e.EmployeeNo)
		assert.Equal(t, employee.CategorySaudi, e.Category)
		assert.Equal(t, "5000", e.MonthlySalary.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(`SELECT \* FROM "employees"`).
			WillReturnRows(sqlmock.NewRows([]string{"employee_no"}))

		_, err := repo.FindByNo(context.Background(), 7)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestRepository_DepartmentManager_NotAssigned(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectQuery(`SELECT \* FROM "departments" WHERE code = \$1`).
		WithArgs("FIN", 1).
		WillReturnRows(sqlmock.NewRows([]string{"code", "name", "manager_no"}).AddRow("FIN", "Finance", nil))

	_, err := repo.DepartmentManager(context.Background(), "FIN")

	assert.ErrorIs(t, err, employeeerrors.ErrManagerNotAssigned)
}
