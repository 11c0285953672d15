package auth_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"go-hrms/internal/auth"
)

func setupRepo(t *testing.T) (auth.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return auth.NewRepository(gdb), mock
}

func TestRepository_FindByEmployeeNo(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(`SELECT \* FROM "credentials" WHERE employee_no = \$1`).
			WithArgs(int64(100), 1).
			WillReturnRows(sqlmock.NewRows([]string{"employee_no", "password_hash", "is_active"}).
				AddRow(100, "$2a$hash", true))

		c, err := repo.FindByEmployeeNo(context.Background(), 100)

		require.NoError(t, err)
		assert.Equal(t, "$2a$hash", c.PasswordHash)
		assert.True(t, c.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing is not an error", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(`SELECT \* FROM "credentials"`).
			WillReturnRows(sqlmock.NewRows([]string{"employee_no"}))

		c, err := repo.FindByEmployeeNo(context.Background(), 7)

		assert.NoError(t, err)
		assert.Nil(t, c)
	})
}

func TestRepository_SaveUpserts(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "credentials" .* ON CONFLICT \("employee_no"\) DO UPDATE SET "password_hash"="excluded"."password_hash","is_active"="excluded"."is_active","updated_at"="excluded"."updated_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Save(context.Background(), &auth.Credential{EmployeeNo: 100, PasswordHash: "h", IsActive: true})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
