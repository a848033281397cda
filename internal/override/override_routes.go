package override

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the override surface. Creation lives under
// /leave-overrides; read-side availability queries hang off the owning leave.
// The caller supplies the idempotency middleware for the POSTs.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, createMiddleware ...gin.HandlerFunc) {
	overrides := r.Group("/leave-overrides")
	{
		creates := overrides.Group("")
		creates.Use(createMiddleware...)
		creates.POST("", handler.Create)
		creates.POST("/bulk", handler.BulkCreate)

		overrides.GET("/:id", handler.GetById)
		overrides.GET("/:id/affected-jobs", handler.AffectedJobs)
		overrides.DELETE("/:id", handler.Delete)
	}

	leaves := r.Group("/driver-leaves/:id")
	{
		leaves.GET("/overrides", handler.ListByLeave)
		leaves.GET("/availability", handler.Availability)
		leaves.GET("/availability-windows", handler.AvailabilityWindows)
	}
}
