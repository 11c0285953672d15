package sysconfig

import (
	"context"
	"encoding/json"
	"time"

	"go-hrms/internal/shared/txmanager"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const cacheKey = "sysconfig:roles:v1"

//go:generate mockgen -source=sysconfig_store.go -destination=mock/sysconfig_store_mock.go -package=mock
type Store interface {
	Snapshot(ctx context.Context) (Snapshot, error)
	Assign(ctx context.Context, role Role, employeeNo int64) error
}

type store struct {
	db     *gorm.DB
	rdb    *redis.Client
	ttl    time.Duration
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewStore reads role assignments from the database. When rdb is not nil the
// snapshot is cached for ttl.
func NewStore(db *gorm.DB, rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) Store {
	l := zap.L().Named("sysconfig.store")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("sysconfig.store")
	}
	return &store{db: db, rdb: rdb, ttl: ttl, sf: &singleflight.Group{}, logger: l}
}

func (s *store) Snapshot(ctx context.Context) (Snapshot, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var holders map[Role]int64
			if err := json.Unmarshal(cached, &holders); err == nil {
				return NewSnapshot(holders), nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		var rows []RoleAssignment
		if err := txmanager.GetDB(ctx, s.db).Find(&rows).Error; err != nil {
			return nil, err
		}
		holders := make(map[Role]int64, len(rows))
		for _, row := range rows {
			holders[row.Role] = row.EmployeeNo
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(holders); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, payload, s.ttl).Err(); err != nil {
					s.logger.Warn("cache role snapshot failed", zap.Error(err))
				}
			}
		}
		return holders, nil
	})
	if err != nil {
		return Snapshot{}, err
	}

	return NewSnapshot(v.(map[Role]int64)), nil
}

func (s *store) Assign(ctx context.Context, role Role, employeeNo int64) error {
	err := txmanager.GetDB(ctx, s.db).
		Save(&RoleAssignment{Role: role, EmployeeNo: employeeNo}).Error
	if err != nil {
		return err
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Warn("invalidate role snapshot failed", zap.Error(err))
		}
	}
	s.logger.Info("role assigned", zap.String("role", string(role)), zap.Int64("employee_no", employeeNo))
	return nil
}
