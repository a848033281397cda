package leave

import (
	"net/http"
	"strconv"

	"fleetops/internal/shared/apperror"
	"fleetops/internal/shared/dateutil"
	"fleetops/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid "+name+" parameter", nil)
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create leave validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	var f ListFilter
	if v := c.Query("driver_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid driver_id parameter", nil)
			return
		}
		driverID := uint(id)
		f.DriverID = &driverID
	}
	f.Status = c.Query("status")
	f.ActiveOnly = c.Query("active") == "true"

	if v := c.Query("from"); v != "" {
		from, err := dateutil.ParseDate(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid from parameter", nil)
			return
		}
		f.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := dateutil.ParseDate(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid to parameter", nil)
			return
		}
		f.To = &to
	}

	resp, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update leave validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) AffectedJobs(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.AffectedJobs(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"affected_jobs": resp, "count": len(resp)}, nil)
}

// PreviewAffectedJobs answers "what would collide" before any leave exists,
// so dispatch can warn the operator up front.
func (h *Handler) PreviewAffectedJobs(c *gin.Context) {
	driverID, err := strconv.ParseUint(c.Query("driver_id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid driver_id parameter", nil)
		return
	}

	resp, svcErr := h.service.PreviewAffectedJobs(c.Request.Context(), uint(driverID), c.Query("start_date"), c.Query("end_date"))
	if svcErr != nil {
		h.writeServiceError(c, svcErr)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"affected_jobs": resp, "count": len(resp)}, nil)
}

func (h *Handler) ListByDriver(c *gin.Context) {
	driverID, ok := parseIDParam(c, "driver_id")
	if !ok {
		return
	}

	resp, err := h.service.ListByDriver(c.Request.Context(), driverID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CheckOnLeave(c *gin.Context) {
	driverID, ok := parseIDParam(c, "driver_id")
	if !ok {
		return
	}

	resp, err := h.service.CheckOnLeave(c.Request.Context(), driverID, c.Query("date"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
