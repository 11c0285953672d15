package connection

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Retry paces every dial loop in this package.
type Retry struct {
	Attempts int
	Wait     time.Duration
}

var DefaultRetry = Retry{Attempts: 5, Wait: 5 * time.Second}

// do calls fn until it succeeds, the attempts run out or ctx is cancelled.
func (r Retry) do(ctx context.Context, what string, fn func(ctx context.Context) error) error {
	log := zap.L().Named("connection")
	attempts := max(r.Attempts, 1)

	var lastErr error
	for i := 1; i <= attempts; i++ {
		if lastErr = fn(ctx); lastErr == nil {
			log.Info(what+" connected", zap.Int("attempt", i))
			return nil
		}
		log.Warn(what+" not ready", zap.Int("attempt", i), zap.Int("of", attempts), zap.Error(lastErr))
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.Wait):
		}
	}
	return fmt.Errorf("%s connection failed after %d attempts: %w", what, attempts, lastErr)
}

// ConnectGORM opens a pooled postgres connection and pings it.
func ConnectGORM(ctx context.Context, dsn string, retry Retry) (*gorm.DB, error) {
	var db *gorm.DB
	err := retry.do(ctx, "postgres", func(ctx context.Context) error {
		conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return err
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return err
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
		db = conn
		return nil
	})
	return db, err
}

func ConnectRedis(ctx context.Context, addr string, retry Retry) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := retry.do(ctx, "redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// ConnectKafka waits for the broker to answer, then returns a writer that
// routes each message by its own Topic and hashes keys to partitions.
func ConnectKafka(ctx context.Context, broker string, retry Retry) (*kafkago.Writer, error) {
	if err := retry.do(ctx, "kafka", func(ctx context.Context) error {
		conn, err := kafkago.DialContext(ctx, "tcp", broker)
		if err != nil {
			return err
		}
		return conn.Close()
	}); err != nil {
		return nil, err
	}
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(broker),
		Balancer:               &kafkago.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafkago.RequireAll,
	}, nil
}
