package leave

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"fleetops/internal/driver"
	"fleetops/internal/job"
	leaveerrors "fleetops/internal/leave/errors"
	"fleetops/internal/shared/apperror"
	"fleetops/internal/shared/contextutil"
	"fleetops/internal/shared/dateutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (*CreateLeaveResponse, error)
	GetByID(ctx context.Context, id uint) (*LeaveResponse, error)
	Update(ctx context.Context, id uint, req UpdateLeaveRequest) (*LeaveResponse, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, f ListFilter) ([]LeaveResponse, error)
	ListByDriver(ctx context.Context, driverID uint) ([]LeaveResponse, error)
	// CheckOnLeave reports whether the driver has an approved leave covering
	// the date. An empty date means today.
	CheckOnLeave(ctx context.Context, driverID uint, date string) (*OnLeaveResponse, error)
	AffectedJobs(ctx context.Context, leaveID uint) ([]AffectedJobView, error)
	PreviewAffectedJobs(ctx context.Context, driverID uint, startDate, endDate string) ([]AffectedJobView, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	drivers  driver.Repository
	resolver job.Resolver
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, drivers driver.Repository, resolver job.Resolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, drivers: drivers, resolver: resolver, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (*CreateLeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := s.drivers.FindActive(ctx, req.DriverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.DriverNotFound(req.DriverID)
		}
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to load driver", http.StatusInternalServerError)
	}

	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if start.Before(dateutil.Today()) {
		return nil, leaveerrors.ErrDateInPast
	}

	if !IsValidType(req.LeaveType) {
		return nil, leaveerrors.ErrInvalidLeaveType
	}

	requested := req.Status
	if requested == "" {
		requested = StatusApproved
	}
	if !IsValidStatus(requested) {
		return nil, leaveerrors.ErrInvalidStatus
	}

	reason, err := sanitizeReason(req.Reason)
	if err != nil {
		return nil, err
	}

	entity := &DriverLeave{
		DriverID:  req.DriverID,
		Type:      req.LeaveType,
		StartDate: start,
		EndDate:   end,
		Status:    requested,
		Reason:    reason,
		CreatedBy: contextutil.GetActorID(ctx),
	}

	var affected []job.Job
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.FindOverlapping(ctx, req.DriverID, start, end, nil, true)
		if err != nil {
			return err
		}
		if existing != nil {
			return leaveerrors.LeaveOverlap(
				dateutil.FormatDate(existing.StartDate),
				dateutil.FormatDate(existing.EndDate),
			)
		}

		affected, err = s.resolver.WithTx(tx).AffectedJobs(ctx, req.DriverID, start, end)
		if err != nil {
			return err
		}

		// An approved leave must not silently strand committed work; it is
		// held at pending until the jobs are reassigned.
		if len(affected) > 0 && entity.Status == StatusApproved {
			entity.Status = StatusPending
		}

		return repo.Create(ctx, entity)
	})
	if err != nil {
		return nil, err
	}

	log.Info("leave created",
		zap.Uint("leave_id", entity.ID),
		zap.Uint("driver_id", entity.DriverID),
		zap.String("status", entity.Status),
		zap.Int("affected_jobs", len(affected)),
	)

	return &CreateLeaveResponse{
		Leave:                ToLeaveResponse(entity),
		AffectedJobs:         ToAffectedJobViews(affected),
		AffectedJobsCount:    len(affected),
		RequiresReassignment: len(affected) > 0,
	}, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	resp := ToLeaveResponse(l)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateLeaveRequest) (*LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if req.LeaveType != nil && !IsValidType(*req.LeaveType) {
		return nil, leaveerrors.ErrInvalidLeaveType
	}
	if req.Status != nil && !IsValidStatus(*req.Status) {
		return nil, leaveerrors.ErrInvalidStatus
	}

	var reason *string
	if req.Reason != nil {
		r, err := sanitizeReason(*req.Reason)
		if err != nil {
			return nil, err
		}
		reason = r
	}

	var updated *DriverLeave
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		entity, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveNotFound
			}
			return err
		}

		start, end := entity.StartDate, entity.EndDate
		datesChanged := false
		if req.StartDate != nil {
			if start, err = dateutil.ParseDate(*req.StartDate); err != nil {
				return leaveerrors.ErrInvalidDateFormat
			}
			datesChanged = true
		}
		if req.EndDate != nil {
			if end, err = dateutil.ParseDate(*req.EndDate); err != nil {
				return leaveerrors.ErrInvalidDateFormat
			}
			datesChanged = true
		}
		if end.Before(start) {
			return leaveerrors.ErrInvalidDateRange
		}
		if datesChanged && start.Before(dateutil.Today()) {
			return leaveerrors.ErrDateInPast
		}

		if datesChanged {
			existing, err := repo.FindOverlapping(ctx, entity.DriverID, start, end, &entity.ID, true)
			if err != nil {
				return err
			}
			if existing != nil {
				return leaveerrors.LeaveOverlap(
					dateutil.FormatDate(existing.StartDate),
					dateutil.FormatDate(existing.EndDate),
				)
			}
		}

		// An approved leave must never cover committed work. The check runs
		// on any transition into approved and again whenever the dates of an
		// approved leave move, so extending the range cannot quietly swallow
		// scheduled jobs.
		effectiveStatus := entity.Status
		if req.Status != nil {
			effectiveStatus = *req.Status
		}
		if effectiveStatus == StatusApproved && (datesChanged || entity.Status != StatusApproved) {
			affected, err := s.resolver.WithTx(tx).AffectedJobs(ctx, entity.DriverID, start, end)
			if err != nil {
				return err
			}
			if len(affected) > 0 {
				return leaveerrors.ApprovalBlocked(len(affected))
			}
		}

		entity.StartDate = start
		entity.EndDate = end
		if req.LeaveType != nil {
			entity.Type = *req.LeaveType
		}
		if req.Status != nil {
			entity.Status = *req.Status
		}
		if req.Reason != nil {
			entity.Reason = reason
		}

		if err := repo.Update(ctx, entity); err != nil {
			return err
		}
		updated = entity
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("leave updated", zap.Uint("leave_id", updated.ID), zap.String("status", updated.Status))

	resp := ToLeaveResponse(updated)
	return &resp, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	log := contextutil.GetLogger(ctx, s.logger)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveNotFound
			}
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	log.Info("leave deleted", zap.Uint("leave_id", id))
	return nil
}

func (s *service) List(ctx context.Context, f ListFilter) ([]LeaveResponse, error) {
	leaves, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return ToLeaveResponses(leaves), nil
}

func (s *service) ListByDriver(ctx context.Context, driverID uint) ([]LeaveResponse, error) {
	leaves, err := s.repo.ListByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	return ToLeaveResponses(leaves), nil
}

func (s *service) CheckOnLeave(ctx context.Context, driverID uint, date string) (*OnLeaveResponse, error) {
	day := dateutil.Today()
	if date != "" {
		parsed, err := dateutil.ParseDate(date)
		if err != nil {
			return nil, leaveerrors.ErrInvalidDateFormat
		}
		day = parsed
	}

	l, err := s.repo.FindApprovedCovering(ctx, driverID, day)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return &OnLeaveResponse{OnLeave: false}, nil
	}
	resp := ToLeaveResponse(l)
	return &OnLeaveResponse{OnLeave: true, Leave: &resp}, nil
}

func (s *service) AffectedJobs(ctx context.Context, leaveID uint) ([]AffectedJobView, error) {
	l, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}

	jobs, err := s.resolver.AffectedJobs(ctx, l.DriverID, l.StartDate, l.EndDate)
	if err != nil {
		return nil, err
	}
	return ToAffectedJobViews(jobs), nil
}

func (s *service) PreviewAffectedJobs(ctx context.Context, driverID uint, startDate, endDate string) ([]AffectedJobView, error) {
	start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	jobs, err := s.resolver.AffectedJobs(ctx, driverID, start, end)
	if err != nil {
		return nil, err
	}
	return ToAffectedJobViews(jobs), nil
}

func parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := dateutil.ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := dateutil.ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return start, end, nil
}

func sanitizeReason(v string) (*string, error) {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) > 512 {
		return nil, leaveerrors.ErrReasonTooLong
	}
	return &trimmed, nil
}
