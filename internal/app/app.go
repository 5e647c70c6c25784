package app

import (
	"os"

	"github.com/davidvasconcellos/PayrollDataExtractor/internal/auth"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/codegroup"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/codetemplate"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/messaging/kafka"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/payslip"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	if err := gormDB.AutoMigrate(
		&auth.User{},
		&payslip.ProcessedPayslip{},
		&codegroup.CodeGroup{},
		&codetemplate.CodeTemplate{},
		&kafka.OutboxEvent{},
	); err != nil {
		return err
	}

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		zap.L().Warn("redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		zap.L().Info("redis connection established")
	}

	return registerModules(router, db, gormDB, redisClient)
}
