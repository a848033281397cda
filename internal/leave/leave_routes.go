package leave

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	leaves := r.Group("/driver-leaves")
	{
		leaves.POST("", handler.Create)
		leaves.GET("", handler.List)
		leaves.GET("/preview-affected-jobs", handler.PreviewAffectedJobs)
		leaves.GET("/:id", handler.GetById)
		leaves.PUT("/:id", handler.Update)
		leaves.DELETE("/:id", handler.Delete)
		leaves.GET("/:id/affected-jobs", handler.AffectedJobs)
	}

	drivers := r.Group("/drivers/:driver_id")
	{
		drivers.GET("/leaves", handler.ListByDriver)
		drivers.GET("/check-leave", handler.CheckOnLeave)
	}
}
