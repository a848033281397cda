package reassignment

import (
	"context"
	"errors"
	"strings"
	"time"

	"fleetops/internal/driver"
	"fleetops/internal/job"
	"fleetops/internal/leave"
	reassignmenterrors "fleetops/internal/reassignment/errors"
	"fleetops/internal/shared/contextutil"
	"fleetops/internal/shared/dateutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=reassignment_service.go -destination=mock/reassignment_service_mock.go -package=mock
type Service interface {
	// Reassign applies a batch of directives to the jobs colliding with the
	// leave. Atomic batches are all-or-nothing; otherwise every directive is
	// its own transaction and per-item problems are reported, not raised.
	Reassign(ctx context.Context, leaveID uint, req ReassignRequest) (*ReassignResponse, error)
	ListByLeave(ctx context.Context, leaveID uint) ([]ReassignmentResponse, error)
	ListByJob(ctx context.Context, jobID uint) ([]ReassignmentResponse, error)
	JobAuditTrail(ctx context.Context, jobID uint) ([]JobAuditView, error)
}

type service struct {
	db      *gorm.DB
	repo    Repository
	leaves  leave.Repository
	jobs    job.Repository
	audits  job.AuditRepository
	drivers driver.Repository
	logger  *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	leaves leave.Repository,
	jobs job.Repository,
	audits job.AuditRepository,
	drivers driver.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("reassignment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reassignment.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		leaves:  leaves,
		jobs:    jobs,
		audits:  audits,
		drivers: drivers,
		logger:  l,
	}
}

func (s *service) Reassign(ctx context.Context, leaveID uint, req ReassignRequest) (*ReassignResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if len(req.Assignments) == 0 {
		return nil, reassignmenterrors.ErrNoAssignments
	}

	lv, err := s.leaves.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reassignmenterrors.ErrLeaveNotFound
		}
		return nil, err
	}

	actor := contextutil.GetActorID(ctx)
	resp := &ReassignResponse{LeaveID: leaveID, Total: len(req.Assignments)}

	if req.Atomic {
		var results []ItemResult
		err := s.db.WithContext(ctx).Transaction(func(outer *gorm.DB) error {
			// The nested transaction runs on a savepoint, so the first
			// failure unwinds every item of the batch at once.
			return outer.Transaction(func(tx *gorm.DB) error {
				for _, d := range req.Assignments {
					res, itemErr := s.processItem(ctx, tx, lv, d, actor)
					if itemErr != nil {
						return reassignmenterrors.AtomicFailed(d.JobID, itemErr)
					}
					results = append(results, res)
				}
				return nil
			})
		})
		if err != nil {
			return nil, err
		}
		resp.Results = results
		for _, r := range results {
			if r.Outcome == OutcomeSkipped {
				resp.Skipped++
			} else {
				resp.Success++
			}
		}
	} else {
		for _, d := range req.Assignments {
			var res ItemResult
			err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				var itemErr error
				res, itemErr = s.processItem(ctx, tx, lv, d, actor)
				return itemErr
			})
			switch {
			case err != nil:
				res = ItemResult{JobID: d.JobID, Outcome: OutcomeFailed, Error: err.Error()}
				resp.Failed++
			case res.Outcome == OutcomeSkipped:
				resp.Skipped++
			default:
				resp.Success++
			}
			resp.Results = append(resp.Results, res)
		}
	}

	log.Info("jobs reassigned",
		zap.Uint("leave_id", leaveID),
		zap.Bool("atomic", req.Atomic),
		zap.Int("success", resp.Success),
		zap.Int("skipped", resp.Skipped),
		zap.Int("failed", resp.Failed),
	)
	return resp, nil
}

func (s *service) processItem(ctx context.Context, tx *gorm.DB, lv *leave.DriverLeave, d Directive, actor string) (ItemResult, error) {
	notes, err := trimNotes(d.Notes)
	if err != nil {
		return ItemResult{}, err
	}

	jobs := s.jobs.WithTx(tx)

	j, err := jobs.FindForUpdate(ctx, d.JobID)
	if err != nil {
		return ItemResult{}, mapJobLookupError(d.JobID, err)
	}
	if j.DriverID == nil || *j.DriverID != lv.DriverID {
		return ItemResult{}, reassignmenterrors.JobNotOnLeaveDriver(d.JobID)
	}

	cat := job.CategoryOf(j.Status)
	if shouldSkip(cat, d) {
		return ItemResult{JobID: d.JobID, Outcome: OutcomeSkipped}, nil
	}

	if supplied(d.NewDriverID) {
		if err := s.checkDriverFree(ctx, tx, *d.NewDriverID, j.PickupDate); err != nil {
			return ItemResult{}, err
		}
	}

	cur := j.Assignment()
	next := applyPolicy(cat, cur, d)
	newStatus := nextStatus(cat, j.Status, next)
	if next.Equal(cur) && newStatus == j.Status {
		return ItemResult{}, reassignmenterrors.NoChange(d.JobID)
	}

	oldStatus := j.Status
	j.DriverID = next.DriverID
	j.VehicleID = next.VehicleID
	j.ContractorID = next.ContractorID
	j.Status = newStatus
	if err := jobs.Update(ctx, j); err != nil {
		return ItemResult{}, err
	}

	audit := &job.Audit{
		JobID:           j.ID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
		OldDriverID:     cur.DriverID,
		OldVehicleID:    cur.VehicleID,
		OldContractorID: cur.ContractorID,
		NewDriverID:     next.DriverID,
		NewVehicleID:    next.VehicleID,
		NewContractorID: next.ContractorID,
		Reason:          "leave reassignment",
		ChangedBy:       actor,
		ChangedAt:       time.Now().UTC(),
	}
	if err := s.audits.WithTx(tx).Create(ctx, audit); err != nil {
		return ItemResult{}, err
	}

	rec := &JobReassignment{
		JobID:           j.ID,
		LeaveID:         lv.ID,
		OldDriverID:     cur.DriverID,
		OldVehicleID:    cur.VehicleID,
		OldContractorID: cur.ContractorID,
		NewDriverID:     next.DriverID,
		NewVehicleID:    next.VehicleID,
		NewContractorID: next.ContractorID,
		Category:        deriveCategory(d),
		Notes:           notes,
		ReassignedBy:    actor,
	}
	if err := s.repo.WithTx(tx).Create(ctx, rec); err != nil {
		return ItemResult{}, err
	}

	return ItemResult{
		JobID:     j.ID,
		Outcome:   OutcomeReassigned,
		NewStatus: newStatus,
		Category:  rec.Category,
	}, nil
}

// checkDriverFree rejects replacements that are inactive, unknown or on
// approved leave themselves on the pickup date.
func (s *service) checkDriverFree(ctx context.Context, tx *gorm.DB, driverID uint, pickupDate time.Time) error {
	if _, err := s.drivers.WithTx(tx).FindActive(ctx, driverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reassignmenterrors.DriverNotFound(driverID)
		}
		return err
	}

	onLeave, err := s.leaves.WithTx(tx).FindApprovedCovering(ctx, driverID, pickupDate)
	if err != nil {
		return err
	}
	if onLeave != nil {
		return reassignmenterrors.DriverUnavailable(driverID, dateutil.FormatDate(pickupDate))
	}
	return nil
}

func (s *service) ListByLeave(ctx context.Context, leaveID uint) ([]ReassignmentResponse, error) {
	if _, err := s.leaves.FindByID(ctx, leaveID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reassignmenterrors.ErrLeaveNotFound
		}
		return nil, err
	}

	rows, err := s.repo.ListByLeave(ctx, leaveID)
	if err != nil {
		return nil, err
	}
	return ToReassignmentResponses(rows), nil
}

func (s *service) ListByJob(ctx context.Context, jobID uint) ([]ReassignmentResponse, error) {
	rows, err := s.repo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return ToReassignmentResponses(rows), nil
}

func (s *service) JobAuditTrail(ctx context.Context, jobID uint) ([]JobAuditView, error) {
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reassignmenterrors.JobNotFound(jobID)
		}
		return nil, err
	}

	audits, err := s.audits.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return ToJobAuditViews(audits), nil
}

// trimNotes normalizes directive notes and enforces the column width so an
// oversized note fails validation instead of surfacing as a database error.
func trimNotes(v string) (*string, error) {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) > 255 {
		return nil, reassignmenterrors.ErrNotesTooLong
	}
	return &trimmed, nil
}
