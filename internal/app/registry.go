package app

import (
	"fleetops/internal/driver"
	"fleetops/internal/job"
	"fleetops/internal/leave"
	"fleetops/internal/middleware"
	"fleetops/internal/override"
	"fleetops/internal/reassignment"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	kafkaWriter *kafkago.Writer,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	driverRepo := driver.NewRepository(db)
	jobRepo := job.NewRepository(db)
	jobAuditRepo := job.NewAuditRepository(db)
	leaveRepo := leave.NewRepository(db)
	reassignmentRepo := reassignment.NewRepository(db)
	overrideRepo := override.NewRepository(db)

	resolver := job.NewResolver(jobRepo, logger)

	publisher := override.NewNoopEventPublisher()
	if kafkaWriter != nil {
		publisher = override.NewKafkaEventPublisher(kafkaWriter)
	}

	// --- Services ---
	leaveService := leave.NewService(db, leaveRepo, driverRepo, resolver, logger)
	reassignmentService := reassignment.NewService(db, reassignmentRepo, leaveRepo, jobRepo, jobAuditRepo, driverRepo, logger)
	overrideService := override.NewService(db, overrideRepo, leaveRepo, resolver, publisher, logger)

	// --- Handlers ---
	leaveHandler := leave.NewHandler(leaveService, logger)
	reassignmentHandler := reassignment.NewHandler(reassignmentService, logger)
	overrideHandler := override.NewHandler(overrideService, logger)

	// Mutating POSTs get the idempotency guard when redis is around; the
	// handlers then release the lock and cache the finished response.
	var idem []gin.HandlerFunc
	if rdb != nil {
		idem = append(idem, middleware.Idempotency(rdb))
		reassignmentHandler = reassignment.NewHandlerWithRedis(reassignmentService, rdb, logger)
		overrideHandler = override.NewHandlerWithRedis(overrideService, rdb, logger)
	}

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		leave.RegisterRoutes(api, leaveHandler)
		reassignment.RegisterRoutes(api, reassignmentHandler, idem...)
		override.RegisterRoutes(api, overrideHandler, idem...)
	}

	return nil
}
