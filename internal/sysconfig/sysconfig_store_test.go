package sysconfig_test

import (
	"context"
	"testing"
	"time"

	"go-hrms/internal/sysconfig"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gdb, mock
}

func TestSnapshot_Holder(t *testing.T) {
	snap := sysconfig.NewSnapshot(map[sysconfig.Role]int64{
		sysconfig.RoleHRManager:      900,
		sysconfig.RoleFinanceManager: 0,
	})

	no, ok := snap.Holder(sysconfig.RoleHRManager)
	assert.True(t, ok)
	assert.Equal(t, int64(900), no)

	_, ok = snap.Holder(sysconfig.RoleFinanceManager)
	assert.False(t, ok)

	_, ok = snap.Holder(sysconfig.RoleGeneralManager)
	assert.False(t, ok)
}

func TestStore_Snapshot(t *testing.T) {
	t.Run("loads from database without cache", func(t *testing.T) {
		gdb, mock := setupGorm(t)
		mock.ExpectQuery(`SELECT \* FROM "system_role_assignments"`).
			WillReturnRows(sqlmock.NewRows([]string{"role", "employee_no"}).
				AddRow("HR_MANAGER", 900).
				AddRow("GENERAL_MANAGER", 901))

		snap, err := sysconfig.NewStore(gdb, nil, time.Minute).Snapshot(context.Background())

		assert.NoError(t, err)
		no, ok := snap.Holder(sysconfig.RoleGeneralManager)
		assert.True(t, ok)
		assert.Equal(t, int64(901), no)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("served from redis cache", func(t *testing.T) {
		gdb, mock := setupGorm(t)
		rdb, rmock := redismock.NewClientMock()
		rmock.ExpectGet("sysconfig:roles:v1").SetVal(`{"FINANCE_MANAGER":902}`)

		snap, err := sysconfig.NewStore(gdb, rdb, time.Minute).Snapshot(context.Background())

		assert.NoError(t, err)
		no, ok := snap.Holder(sysconfig.RoleFinanceManager)
		assert.True(t, ok)
		assert.Equal(t, int64(902), no)
		assert.NoError(t, rmock.ExpectationsWereMet())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
