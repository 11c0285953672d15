package employeesalary

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-hrms/internal/employee"
	"go-hrms/internal/shared/txmanager"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// BreakdownTable serves the salary breakdown percentages.
//
//go:generate mockgen -source=employee_salary_repo.go -destination=mock/employee_salary_repo_mock.go -package=mock
type BreakdownTable interface {
	CategoryComponents(ctx context.Context, category employee.Category) ([]Component, error)
	ContractOverrides(ctx context.Context, employeeNo int64) ([]Component, error)
}

type repository struct {
	db     *gorm.DB
	rdb    *redis.Client
	ttl    time.Duration
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) BreakdownTable {
	l := zap.L().Named("employeesalary.repository")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeesalary.repository")
	}
	return &repository{db: db, rdb: rdb, ttl: ttl, sf: &singleflight.Group{}, logger: l}
}

func (r *repository) CategoryComponents(ctx context.Context, category employee.Category) ([]Component, error) {
	cacheKey := fmt.Sprintf("breakdown:category:%s", category)

	if r.rdb != nil {
		if cached, err := r.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var components []Component
			if err := json.Unmarshal(cached, &components); err == nil {
				return components, nil
			}
		}
	}

	// Master data: many payroll runs ask for the same category at once.
	v, err, _ := r.sf.Do(cacheKey, func() (interface{}, error) {
		var rows []CategoryPercentage
		err := txmanager.GetDB(ctx, r.db).
			Where("category = ?", category).
			Order("type_code ASC").
			Find(&rows).Error
		if err != nil {
			return nil, err
		}

		components := make([]Component, len(rows))
		for i, row := range rows {
			components[i] = Component{TypeCode: row.TypeCode, Name: row.Name, Percentage: row.Percentage}
		}

		if r.rdb != nil {
			if payload, err := json.Marshal(components); err == nil {
				if err := r.rdb.Set(ctx, cacheKey, payload, r.ttl).Err(); err != nil {
					r.logger.Warn("cache breakdown failed", zap.String("category", string(category)), zap.Error(err))
				}
			}
		}
		return components, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Component), nil
}

func (r *repository) ContractOverrides(ctx context.Context, employeeNo int64) ([]Component, error) {
	var rows []ContractOverride
	err := txmanager.GetDB(ctx, r.db).
		Where("employee_no = ?", employeeNo).
		Order("type_code ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	components := make([]Component, len(rows))
	for i, row := range rows {
		components[i] = Component{TypeCode: row.TypeCode, Name: row.Name, Percentage: row.Percentage}
	}
	return components, nil
}
