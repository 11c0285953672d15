package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	payrollerrors "go-hrms/internal/payroll/errors"
)

// Locker serializes calculations of the same employee and month.
type Locker interface {
	Acquire(ctx context.Context, employeeNo int64, month time.Time) (release func(), err error)
}

// unlockScript deletes the key only while it still holds our token, so a
// lock that expired and was taken by someone else is left alone.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLocker struct {
	rdb    *redis.Client
	ttl    time.Duration
	token  func() string
	logger *zap.Logger
}

// NewRedisLocker returns a SETNX lock. With a nil client every Acquire
// succeeds and the unique version index is the only guard.
func NewRedisLocker(rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) Locker {
	l := zap.L().Named("payroll.lock")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.lock")
	}
	return &redisLocker{rdb: rdb, ttl: ttl, token: uuid.NewString, logger: l}
}

func lockKey(employeeNo int64, month time.Time) string {
	return fmt.Sprintf("payroll:calc:%d:%s", employeeNo, month.Format(monthLayout))
}

func (l *redisLocker) Acquire(ctx context.Context, employeeNo int64, month time.Time) (func(), error) {
	if l.rdb == nil {
		return func() {}, nil
	}

	key := lockKey(employeeNo, month)
	token := l.token()
	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		l.logger.Warn("payroll lock unavailable, continuing without it",
			zap.String("key", key),
			zap.Error(err),
		)
		return func() {}, nil
	}
	if !ok {
		return nil, payrollerrors.ErrCalculationInProgress
	}

	return func() {
		if err := unlockScript.Run(context.WithoutCancel(ctx), l.rdb, []string{key}, token).Err(); err != nil {
			l.logger.Warn("release payroll lock failed", zap.String("key", key), zap.Error(err))
		}
	}, nil
}
