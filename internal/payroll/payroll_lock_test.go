package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	payrollerrors "go-hrms/internal/payroll/errors"
)

func TestRedisLocker(t *testing.T) {
	month := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	const key = "payroll:calc:100:2026-03"

	newLocker := func() (*redisLocker, redismock.ClientMock) {
		rdb, mock := redismock.NewClientMock()
		l := NewRedisLocker(rdb, 30*time.Second).(*redisLocker)
		l.token = func() string { return "tok" }
		return l, mock
	}

	t.Run("acquire and release", func(t *testing.T) {
		l, mock := newLocker()
		mock.ExpectSetNX(key, "tok", 30*time.Second).SetVal(true)
		mock.ExpectEvalSha(unlockScript.Hash(), []string{key}, "tok").SetVal(int64(1))

		release, err := l.Acquire(context.Background(), 100, month)
		assert.NoError(t, err)
		release()
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("held lock", func(t *testing.T) {
		l, mock := newLocker()
		mock.ExpectSetNX(key, "tok", 30*time.Second).SetVal(false)

		release, err := l.Acquire(context.Background(), 100, month)
		assert.ErrorIs(t, err, payrollerrors.ErrCalculationInProgress)
		assert.Nil(t, release)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis down falls back to the version index", func(t *testing.T) {
		l, mock := newLocker()
		mock.ExpectSetNX(key, "tok", 30*time.Second).SetErr(errors.New("connection refused"))

		release, err := l.Acquire(context.Background(), 100, month)
		assert.NoError(t, err)
		assert.NotNil(t, release)
		release()
	})

	t.Run("nil client", func(t *testing.T) {
		release, err := NewRedisLocker(nil, time.Second).Acquire(context.Background(), 100, month)
		assert.NoError(t, err)
		release()
	})
}
