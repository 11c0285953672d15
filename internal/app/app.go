package app

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-hrms/internal/config"
	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/connection"
)

// BuildApp connects the infrastructure, migrates the schema and mounts
// every module on router.
func BuildApp(ctx context.Context, router *gin.Engine, cfg *config.Config) error {
	db, err := connection.ConnectGORM(ctx, cfg.DB.DSN(), connection.DefaultRetry)
	if err != nil {
		return err
	}
	if err := Migrate(db); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedis(ctx, cfg.RedisAddr, connection.DefaultRetry)
	if err != nil {
		return err
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Accept",
		"X-Request-ID", "X-Client-Type", "Idempotency-Key"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	router.Use(cors.New(corsConfig))
	router.Use(middleware.RequestID())
	registerModules(router, cfg, db, redisClient, zap.L())
	return nil
}
