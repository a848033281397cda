package override

import (
	"context"
	"errors"
	"strings"
	"time"

	"fleetops/internal/events"
	"fleetops/internal/job"
	"fleetops/internal/leave"
	overrideerrors "fleetops/internal/override/errors"
	"fleetops/internal/shared/contextutil"
	"fleetops/internal/shared/dateutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const bulkLimit = 100

//go:generate mockgen -source=override_service.go -destination=mock/override_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateOverrideRequest) (*OverrideResponse, error)
	// BulkCreate applies the same window to several leaves independently;
	// one leave failing never rolls back the others.
	BulkCreate(ctx context.Context, req BulkCreateOverrideRequest) (*BulkCreateResponse, error)
	GetByID(ctx context.Context, id uint) (*OverrideResponse, error)
	ListByLeave(ctx context.Context, leaveID uint) ([]OverrideResponse, error)
	// AffectedJobs previews the jobs that would lose coverage if the
	// override were removed, without touching it.
	AffectedJobs(ctx context.Context, id uint) ([]leave.AffectedJobView, error)
	// Delete removes the override and reports the jobs scheduled into the
	// window that just lost its coverage.
	Delete(ctx context.Context, id uint) (*DeleteOverrideResponse, error)
	// IsDriverAvailable answers whether an override window covers the given
	// date and time of day, start inclusive, end exclusive.
	IsDriverAvailable(ctx context.Context, leaveID uint, date, clock string) (*AvailabilityResponse, error)
	AvailabilityWindows(ctx context.Context, leaveID uint, date string) ([]AvailabilityWindowView, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	leaves    leave.Repository
	resolver  job.Resolver
	publisher EventPublisher
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	leaves leave.Repository,
	resolver job.Resolver,
	publisher EventPublisher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("override.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("override.service")
	}
	if publisher == nil {
		publisher = NewNoopEventPublisher()
	}
	return &service{
		db:        db,
		repo:      repo,
		leaves:    leaves,
		resolver:  resolver,
		publisher: publisher,
		logger:    l,
	}
}

// window is a validated same-day time span, seconds since midnight.
type window struct {
	date     time.Time
	startSec int
	endSec   int
	start    string
	end      string
}

func parseWindow(dateStr, startStr, endStr string) (window, error) {
	date, err := dateutil.ParseDate(dateStr)
	if err != nil {
		return window{}, overrideerrors.ErrInvalidDateFormat
	}
	startSec, err := dateutil.ParseClock(startStr)
	if err != nil {
		return window{}, overrideerrors.ErrInvalidTimeFormat
	}
	endSec, err := dateutil.ParseClock(endStr)
	if err != nil {
		return window{}, overrideerrors.ErrInvalidTimeFormat
	}
	if startSec >= endSec {
		return window{}, overrideerrors.ErrInvalidTimeWindow
	}
	return window{
		date:     date,
		startSec: startSec,
		endSec:   endSec,
		start:    dateutil.FormatClock(startSec),
		end:      dateutil.FormatClock(endSec),
	}, nil
}

func validateReason(v string) (string, error) {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return "", overrideerrors.ErrReasonRequired
	}
	if len(trimmed) > 512 {
		return "", overrideerrors.ErrReasonTooLong
	}
	return trimmed, nil
}

func (s *service) Create(ctx context.Context, req CreateOverrideRequest) (*OverrideResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	w, err := parseWindow(req.OverrideDate, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	reason, err := validateReason(req.Reason)
	if err != nil {
		return nil, err
	}

	entity, lv, err := s.createOne(ctx, req.LeaveID, w, reason, contextutil.GetActorID(ctx))
	if err != nil {
		return nil, err
	}

	log.Info("override created",
		zap.Uint("override_id", entity.ID),
		zap.Uint("leave_id", entity.LeaveID),
		zap.String("window", entity.StartTime+"-"+entity.EndTime),
	)
	s.notifyCreated(entity, lv)

	resp := ToOverrideResponse(entity)
	return &resp, nil
}

func (s *service) BulkCreate(ctx context.Context, req BulkCreateOverrideRequest) (*BulkCreateResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	w, err := parseWindow(req.OverrideDate, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	reason, err := validateReason(req.Reason)
	if err != nil {
		return nil, err
	}

	leaveIDs := dedupe(req.LeaveIDs)
	if len(leaveIDs) > bulkLimit {
		return nil, overrideerrors.ErrTooManyLeaves
	}

	actor := contextutil.GetActorID(ctx)
	resp := &BulkCreateResponse{Total: len(leaveIDs)}
	for _, leaveID := range leaveIDs {
		entity, lv, err := s.createOne(ctx, leaveID, w, reason, actor)
		if err != nil {
			resp.Results = append(resp.Results, BulkItemResult{LeaveID: leaveID, Error: err.Error()})
			resp.Failed++
			continue
		}
		s.notifyCreated(entity, lv)
		item := ToOverrideResponse(entity)
		resp.Results = append(resp.Results, BulkItemResult{LeaveID: leaveID, Override: &item})
		resp.Success++
	}

	log.Info("bulk overrides created",
		zap.Int("success", resp.Success),
		zap.Int("failed", resp.Failed),
		zap.Int("total", resp.Total),
	)
	return resp, nil
}

func (s *service) createOne(ctx context.Context, leaveID uint, w window, reason, actor string) (*LeaveOverride, *leave.DriverLeave, error) {
	var (
		entity *LeaveOverride
		lv     *leave.DriverLeave
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		lv, err = s.leaves.WithTx(tx).FindByID(ctx, leaveID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return overrideerrors.ErrLeaveNotFound
			}
			return err
		}
		if lv.Status != leave.StatusApproved {
			return overrideerrors.ErrLeaveNotApproved
		}
		if !lv.Covers(w.date) {
			return overrideerrors.ErrDateOutsideLeave
		}

		existing, err := s.repo.WithTx(tx).ListByLeaveAndDate(ctx, leaveID, w.date, true)
		if err != nil {
			return err
		}
		for i := range existing {
			exStart, err := dateutil.ParseClock(existing[i].StartTime)
			if err != nil {
				continue
			}
			exEnd, err := dateutil.ParseClock(existing[i].EndTime)
			if err != nil {
				continue
			}
			if w.startSec < exEnd && w.endSec > exStart {
				return overrideerrors.OverrideOverlap(existing[i].StartTime, existing[i].EndTime)
			}
		}

		entity = &LeaveOverride{
			LeaveID:      leaveID,
			OverrideDate: w.date,
			StartTime:    w.start,
			EndTime:      w.end,
			Reason:       reason,
			CreatedBy:    actor,
		}
		return s.repo.WithTx(tx).Create(ctx, entity)
	})
	if err != nil {
		return nil, nil, err
	}
	return entity, lv, nil
}

// notifyCreated publishes off the request path after commit. A broker outage
// must never fail or delay the create, so failures are only logged.
func (s *service) notifyCreated(o *LeaveOverride, lv *leave.DriverLeave) {
	evt := events.OverrideCreatedEvent{
		EventType:    "override.created",
		OverrideID:   o.ID,
		LeaveID:      o.LeaveID,
		DriverID:     lv.DriverID,
		OverrideDate: dateutil.FormatDate(o.OverrideDate),
		StartTime:    o.StartTime,
		EndTime:      o.EndTime,
		Reason:       o.Reason,
		OccurredAt:   time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.publisher.PublishOverrideCreated(ctx, evt); err != nil {
			s.logger.Warn("override notification failed",
				zap.Uint("override_id", o.ID),
				zap.Error(err),
			)
		}
	}()
}

func (s *service) GetByID(ctx context.Context, id uint) (*OverrideResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, overrideerrors.ErrOverrideNotFound
		}
		return nil, err
	}
	resp := ToOverrideResponse(o)
	return &resp, nil
}

func (s *service) ListByLeave(ctx context.Context, leaveID uint) ([]OverrideResponse, error) {
	if _, err := s.leaves.FindByID(ctx, leaveID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, overrideerrors.ErrLeaveNotFound
		}
		return nil, err
	}

	rows, err := s.repo.ListByLeave(ctx, leaveID)
	if err != nil {
		return nil, err
	}
	return ToOverrideResponses(rows), nil
}

func (s *service) AffectedJobs(ctx context.Context, id uint) ([]leave.AffectedJobView, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, overrideerrors.ErrOverrideNotFound
		}
		return nil, err
	}

	lv, err := s.leaves.FindByID(ctx, o.LeaveID)
	if err != nil {
		return nil, err
	}

	startSec, err := dateutil.ParseClock(o.StartTime)
	if err != nil {
		return nil, err
	}
	endSec, err := dateutil.ParseClock(o.EndTime)
	if err != nil {
		return nil, err
	}

	jobs, err := s.resolver.AffectedJobsInWindow(ctx, lv.DriverID, o.OverrideDate, startSec, endSec)
	if err != nil {
		return nil, err
	}
	return leave.ToAffectedJobViews(jobs), nil
}

func (s *service) Delete(ctx context.Context, id uint) (*DeleteOverrideResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	var affected []job.Job
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := s.repo.WithTx(tx).FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return overrideerrors.ErrOverrideNotFound
			}
			return err
		}

		lv, err := s.leaves.WithTx(tx).FindByID(ctx, o.LeaveID)
		if err != nil {
			return err
		}

		startSec, err := dateutil.ParseClock(o.StartTime)
		if err != nil {
			return err
		}
		endSec, err := dateutil.ParseClock(o.EndTime)
		if err != nil {
			return err
		}

		if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}

		// The window is no longer covered, so work scheduled into it is
		// stranded again and has to be surfaced for reassignment.
		affected, err = s.resolver.WithTx(tx).AffectedJobsInWindow(ctx, lv.DriverID, o.OverrideDate, startSec, endSec)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info("override deleted", zap.Uint("override_id", id), zap.Int("affected_jobs", len(affected)))
	return &DeleteOverrideResponse{
		Deleted:      true,
		AffectedJobs: leave.ToAffectedJobViews(affected),
		Count:        len(affected),
	}, nil
}

func (s *service) IsDriverAvailable(ctx context.Context, leaveID uint, date, clock string) (*AvailabilityResponse, error) {
	day, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, overrideerrors.ErrInvalidDateFormat
	}
	sec, err := dateutil.ParseClock(clock)
	if err != nil {
		return nil, overrideerrors.ErrInvalidTimeFormat
	}

	if _, err := s.leaves.FindByID(ctx, leaveID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, overrideerrors.ErrLeaveNotFound
		}
		return nil, err
	}

	rows, err := s.repo.ListByLeaveAndDate(ctx, leaveID, day, false)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		start, err := dateutil.ParseClock(rows[i].StartTime)
		if err != nil {
			continue
		}
		end, err := dateutil.ParseClock(rows[i].EndTime)
		if err != nil {
			continue
		}
		if sec >= start && sec < end {
			return &AvailabilityResponse{
				Available: true,
				Window: &AvailabilityWindowView{
					OverrideID: rows[i].ID,
					StartTime:  rows[i].StartTime,
					EndTime:    rows[i].EndTime,
					Reason:     rows[i].Reason,
				},
			}, nil
		}
	}
	return &AvailabilityResponse{Available: false}, nil
}

func (s *service) AvailabilityWindows(ctx context.Context, leaveID uint, date string) ([]AvailabilityWindowView, error) {
	day, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, overrideerrors.ErrInvalidDateFormat
	}

	if _, err := s.leaves.FindByID(ctx, leaveID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, overrideerrors.ErrLeaveNotFound
		}
		return nil, err
	}

	rows, err := s.repo.ListByLeaveAndDate(ctx, leaveID, day, false)
	if err != nil {
		return nil, err
	}

	windows := make([]AvailabilityWindowView, 0, len(rows))
	for i := range rows {
		windows = append(windows, AvailabilityWindowView{
			OverrideID: rows[i].ID,
			StartTime:  rows[i].StartTime,
			EndTime:    rows[i].EndTime,
			Reason:     rows[i].Reason,
		})
	}
	return windows, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
