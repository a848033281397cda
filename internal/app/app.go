package app

import (
	"os"
	"strconv"

	"fleetops/internal/driver"
	"fleetops/internal/job"
	"fleetops/internal/leave"
	"fleetops/internal/middleware"
	"fleetops/internal/override"
	"fleetops/internal/reassignment"
	"fleetops/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// BuildApp connects the infrastructure and wires every module onto the
// router. Redis and Kafka are optional: without Redis the idempotency guard
// is skipped, without Kafka override notifications are dropped.
func BuildApp(router *gin.Engine, logger *zap.Logger) error {
	db, err := connection.ConnectGORMWithRetry(
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
	logger.Info("database connection established")

	if err := autoMigrate(db); err != nil {
		return err
	}

	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return err
		}
		logger.Info("redis connection established")
	}

	var kafkaWriter *kafkago.Writer
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		kafkaWriter, err = connection.ConnectKafkaWithRetry(broker, 5)
		if err != nil {
			return err
		}
		logger.Info("kafka connection established")
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.ActorContext())
	router.Use(middleware.ContextLogger(logger))
	router.Use(middleware.RateLimitByIP(rate.Limit(rateLimitPerSecond()), rateLimitBurst()))

	return registerModules(router, db, rdb, kafkaWriter, logger)
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&driver.Driver{},
		&job.Job{},
		&job.Audit{},
		&leave.DriverLeave{},
		&reassignment.JobReassignment{},
		&override.LeaveOverride{},
	)
}

func rateLimitPerSecond() float64 {
	if v, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64); err == nil && v > 0 {
		return v
	}
	return 20
}

func rateLimitBurst() int {
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST")); err == nil && v > 0 {
		return v
	}
	return 40
}
