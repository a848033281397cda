package reassignment

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes hangs the reassignment surface off the leave and job paths.
// The idempotency middleware is applied by the caller so a retried POST with
// the same Idempotency-Key does not reassign twice.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, reassignMiddleware ...gin.HandlerFunc) {
	leaves := r.Group("/driver-leaves/:id")
	{
		posts := leaves.Group("")
		posts.Use(reassignMiddleware...)
		posts.POST("/reassign-jobs", handler.Reassign)

		leaves.GET("/reassignments", handler.ListByLeave)
	}

	jobs := r.Group("/jobs/:job_id")
	{
		jobs.GET("/reassignments", handler.ListByJob)
		jobs.GET("/audit-trail", handler.JobAuditTrail)
	}
}
