package job

import (
	"context"
	"time"

	"fleetops/internal/shared/dateutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Resolver is the single source of truth for "which committed jobs collide
// with this range". Leave creation, leave approval and override deletion all
// go through it.
//
//go:generate mockgen -source=job_resolver.go -destination=mock/job_resolver_mock.go -package=mock
type Resolver interface {
	WithTx(tx *gorm.DB) Resolver
	AffectedJobs(ctx context.Context, driverID uint, start, end time.Time) ([]Job, error)
	// AffectedJobsInWindow narrows the scan to one date and a time-of-day
	// window given in seconds since midnight, both bounds inclusive.
	AffectedJobsInWindow(ctx context.Context, driverID uint, date time.Time, startSec, endSec int) ([]Job, error)
}

type resolver struct {
	repo   Repository
	logger *zap.Logger
}

func NewResolver(repo Repository, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("job.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("job.resolver")
	}
	return &resolver{repo: repo, logger: l}
}

func (r *resolver) WithTx(tx *gorm.DB) Resolver {
	return &resolver{repo: r.repo.WithTx(tx), logger: r.logger}
}

func (r *resolver) AffectedJobs(ctx context.Context, driverID uint, start, end time.Time) ([]Job, error) {
	return r.repo.ActiveForDriverInRange(ctx, driverID, start, end)
}

func (r *resolver) AffectedJobsInWindow(ctx context.Context, driverID uint, date time.Time, startSec, endSec int) ([]Job, error) {
	jobs, err := r.repo.ActiveForDriverOnDate(ctx, driverID, date)
	if err != nil {
		return nil, err
	}

	inWindow := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if j.PickupTime == "" {
			continue
		}
		sec, err := dateutil.ParseClock(j.PickupTime)
		if err != nil {
			// Legacy rows can carry malformed times; they cannot be matched
			// against a window, only logged.
			r.logger.Warn("unparseable pickup time",
				zap.Uint("job_id", j.ID),
				zap.String("pickup_time", j.PickupTime),
			)
			continue
		}
		if sec >= startSec && sec <= endSec {
			inWindow = append(inWindow, j)
		}
	}
	return inWindow, nil
}
