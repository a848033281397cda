package leave_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleetops/internal/driver"
	"fleetops/internal/job"
	"fleetops/internal/leave"
	leaveerrors "fleetops/internal/leave/errors"
	"fleetops/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type leaveServiceDeps struct {
	db      *gorm.DB
	service leave.Service
	repo    leave.Repository
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&driver.Driver{},
		&job.Job{},
		&leave.DriverLeave{},
	))

	require.NoError(t, db.Create(&driver.Driver{ID: 1, Name: "Asha Clarke", IsActive: true}).Error)
	require.NoError(t, db.Create(&driver.Driver{ID: 2, Name: "Marco Deng", IsActive: false}).Error)

	repo := leave.NewRepository(db)
	resolver := job.NewResolver(job.NewRepository(db))
	svc := leave.NewService(db, repo, driver.NewRepository(db), resolver)

	return &leaveServiceDeps{db: db, service: svc, repo: repo}
}

func appCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success defaults to approved", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		resp, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			DriverID:  1,
			LeaveType: leave.TypeVacation,
			StartDate: "2027-03-01",
			EndDate:   "2027-03-05",
			Reason:    "  annual trip  ",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Leave.Status)
		assert.Equal(t, "2027-03-01", resp.Leave.StartDate)
		assert.Equal(t, "2027-03-05", resp.Leave.EndDate)
		require.NotNil(t, resp.Leave.Reason)
		assert.Equal(t, "annual trip", *resp.Leave.Reason)
		assert.False(t, resp.RequiresReassignment)
		assert.Empty(t, resp.AffectedJobs)
	})

	t.Run("requested approved is downgraded when jobs collide", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		driverID := uint(1)
		require.NoError(t, deps.db.Create(&job.Job{
			Status:     job.StatusNew,
			DriverID:   &driverID,
			PickupDate: time.Date(2027, 3, 2, 0, 0, 0, 0, time.UTC),
			PickupTime: "09:00:00",
		}).Error)

		resp, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			DriverID:  1,
			LeaveType: leave.TypeSick,
			StartDate: "2027-03-01",
			EndDate:   "2027-03-05",
			Status:    leave.StatusApproved,
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Leave.Status)
		assert.Equal(t, 1, resp.AffectedJobsCount)
		assert.True(t, resp.RequiresReassignment)
	})

	t.Run("negative unknown driver", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			DriverID:  99,
			LeaveType: leave.TypeSick,
			StartDate: "2027-03-01",
			EndDate:   "2027-03-02",
		})

		assert.Equal(t, apperror.CodeInvalidInput, appCode(t, err))
		assert.Contains(t, err.Error(), "not found or inactive")
	})

	t.Run("negative inactive driver", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			DriverID:  2,
			LeaveType: leave.TypeSick,
			StartDate: "2027-03-01",
			EndDate:   "2027-03-02",
		})

		assert.Contains(t, err.Error(), "not found or inactive")
	})

	t.Run("negative bad date format", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			DriverID:  1,
			LeaveType: leave.TypeSick,
			StartDate: "01/03/2027",
			EndDate:   "2027-03-02",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})

	t.Run("negative end before start", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			DriverID:  1,
			LeaveType: leave.TypeSick,
			StartDate: "2027-03-05",
			EndDate:   "2027-03-01",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("negative past dates", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			DriverID:  1,
			LeaveType: leave.TypeSick,
			StartDate: "2020-03-01",
			EndDate:   "2020-03-02",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrDateInPast)
	})

	t.Run("negative unknown leave type", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			DriverID:  1,
			LeaveType: "sabbatical",
			StartDate: "2027-03-01",
			EndDate:   "2027-03-02",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveType)
	})
}

func TestLeaveService_CreateOverlap(t *testing.T) {
	ctx := context.Background()

	create := func(t *testing.T, deps *leaveServiceDeps, start, end string) error {
		_, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			DriverID:  1,
			LeaveType: leave.TypeVacation,
			StartDate: start,
			EndDate:   end,
		})
		return err
	}

	overlapCases := []struct {
		name       string
		start, end string
	}{
		{name: "exact duplicate", start: "2027-03-10", end: "2027-03-15"},
		{name: "contained inside", start: "2027-03-11", end: "2027-03-12"},
		{name: "containing", start: "2027-03-08", end: "2027-03-20"},
		{name: "partial front", start: "2027-03-05", end: "2027-03-10"},
		{name: "partial back", start: "2027-03-15", end: "2027-03-20"},
	}
	for _, tc := range overlapCases {
		t.Run("negative "+tc.name, func(t *testing.T) {
			deps := setupLeaveServiceTest(t)
			require.NoError(t, create(t, deps, "2027-03-10", "2027-03-15"))

			err := create(t, deps, tc.start, tc.end)
			assert.Equal(t, apperror.CodeConflict, appCode(t, err))
			assert.Contains(t, err.Error(), "2027-03-10")
		})
	}

	t.Run("adjacent ranges do not overlap", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		require.NoError(t, create(t, deps, "2027-03-10", "2027-03-15"))

		assert.NoError(t, create(t, deps, "2027-03-16", "2027-03-20"))
	})

	t.Run("rejected leaves do not block", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		require.NoError(t, deps.repo.Create(ctx, &leave.DriverLeave{
			DriverID:  1,
			Type:      leave.TypeSick,
			StartDate: time.Date(2027, 3, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC),
			Status:    leave.StatusRejected,
		}))

		assert.NoError(t, create(t, deps, "2027-03-10", "2027-03-15"))
	})

	t.Run("other drivers do not block", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		require.NoError(t, deps.repo.Create(ctx, &leave.DriverLeave{
			DriverID:  2,
			Type:      leave.TypeSick,
			StartDate: time.Date(2027, 3, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC),
			Status:    leave.StatusApproved,
		}))

		assert.NoError(t, create(t, deps, "2027-03-10", "2027-03-15"))
	})
}

func TestLeaveService_Update(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, deps *leaveServiceDeps, status string) uint {
		t.Helper()
		resp, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			DriverID:  1,
			LeaveType: leave.TypeVacation,
			StartDate: "2027-03-10",
			EndDate:   "2027-03-15",
			Status:    status,
		})
		require.NoError(t, err)
		return resp.Leave.ID
	}

	t.Run("success patch dates and type", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		id := seed(t, deps, leave.StatusPending)

		newEnd := "2027-03-18"
		newType := leave.TypePersonal
		resp, err := deps.service.Update(ctx, id, leave.UpdateLeaveRequest{
			EndDate:   &newEnd,
			LeaveType: &newType,
		})

		assert.NoError(t, err)
		assert.Equal(t, "2027-03-18", resp.EndDate)
		assert.Equal(t, leave.TypePersonal, resp.LeaveType)
		assert.Equal(t, leave.StatusPending, resp.Status)
	})

	t.Run("approve succeeds with no colliding jobs", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		id := seed(t, deps, leave.StatusPending)

		status := leave.StatusApproved
		resp, err := deps.service.Update(ctx, id, leave.UpdateLeaveRequest{Status: &status})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
	})

	t.Run("negative approve blocked by colliding jobs", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		id := seed(t, deps, leave.StatusPending)

		driverID := uint(1)
		require.NoError(t, deps.db.Create(&job.Job{
			Status:     job.StatusConfirmed,
			DriverID:   &driverID,
			PickupDate: time.Date(2027, 3, 12, 0, 0, 0, 0, time.UTC),
			PickupTime: "09:00:00",
		}).Error)

		status := leave.StatusApproved
		_, err := deps.service.Update(ctx, id, leave.UpdateLeaveRequest{Status: &status})

		assert.Equal(t, apperror.CodeInvalidState, appCode(t, err))
		assert.Contains(t, err.Error(), "1 job(s)")
	})

	t.Run("negative extending approved leave over committed work", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		id := seed(t, deps, leave.StatusApproved)

		driverID := uint(1)
		require.NoError(t, deps.db.Create(&job.Job{
			Status:     job.StatusNew,
			DriverID:   &driverID,
			PickupDate: time.Date(2027, 3, 18, 0, 0, 0, 0, time.UTC),
			PickupTime: "09:00:00",
		}).Error)

		newEnd := "2027-03-20"
		status := leave.StatusApproved
		_, err := deps.service.Update(ctx, id, leave.UpdateLeaveRequest{EndDate: &newEnd, Status: &status})

		assert.Equal(t, apperror.CodeInvalidState, appCode(t, err))

		// Same without touching status: the leave stays approved, so the
		// extended range still has to clear the check.
		_, err = deps.service.Update(ctx, id, leave.UpdateLeaveRequest{EndDate: &newEnd})
		assert.Equal(t, apperror.CodeInvalidState, appCode(t, err))
	})

	t.Run("negative date change collides with another leave", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		id := seed(t, deps, leave.StatusPending)
		_, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			DriverID:  1,
			LeaveType: leave.TypeSick,
			StartDate: "2027-03-20",
			EndDate:   "2027-03-25",
		})
		require.NoError(t, err)

		newEnd := "2027-03-22"
		_, err = deps.service.Update(ctx, id, leave.UpdateLeaveRequest{EndDate: &newEnd})

		assert.Equal(t, apperror.CodeConflict, appCode(t, err))
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		status := leave.StatusApproved
		_, err := deps.service.Update(ctx, 404, leave.UpdateLeaveRequest{Status: &status})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestLeaveService_Delete(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)

	resp, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
		DriverID:  1,
		LeaveType: leave.TypeVacation,
		StartDate: "2027-03-10",
		EndDate:   "2027-03-15",
	})
	require.NoError(t, err)

	assert.NoError(t, deps.service.Delete(ctx, resp.Leave.ID))

	_, err = deps.service.GetByID(ctx, resp.Leave.ID)
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)

	// The slot opens up again once the leave is gone.
	_, err = deps.service.Create(ctx, leave.CreateLeaveRequest{
		DriverID:  1,
		LeaveType: leave.TypeSick,
		StartDate: "2027-03-10",
		EndDate:   "2027-03-15",
	})
	assert.NoError(t, err)

	assert.ErrorIs(t, deps.service.Delete(ctx, 404), leaveerrors.ErrLeaveNotFound)
}

func TestLeaveService_CheckOnLeave(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)

	_, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
		DriverID:  1,
		LeaveType: leave.TypeVacation,
		StartDate: "2027-03-10",
		EndDate:   "2027-03-15",
		Status:    leave.StatusApproved,
	})
	require.NoError(t, err)
	_, err = deps.service.Create(ctx, leave.CreateLeaveRequest{
		DriverID:  1,
		LeaveType: leave.TypeSick,
		StartDate: "2027-04-01",
		EndDate:   "2027-04-02",
		Status:    leave.StatusPending,
	})
	require.NoError(t, err)

	t.Run("covered by approved leave", func(t *testing.T) {
		resp, err := deps.service.CheckOnLeave(ctx, 1, "2027-03-12")
		assert.NoError(t, err)
		assert.True(t, resp.OnLeave)
		require.NotNil(t, resp.Leave)
		assert.Equal(t, "2027-03-10", resp.Leave.StartDate)
	})

	t.Run("pending leave does not count", func(t *testing.T) {
		resp, err := deps.service.CheckOnLeave(ctx, 1, "2027-04-01")
		assert.NoError(t, err)
		assert.False(t, resp.OnLeave)
	})

	t.Run("outside any range", func(t *testing.T) {
		resp, err := deps.service.CheckOnLeave(ctx, 1, "2027-03-16")
		assert.NoError(t, err)
		assert.False(t, resp.OnLeave)
	})

	t.Run("negative bad date", func(t *testing.T) {
		_, err := deps.service.CheckOnLeave(ctx, 1, "12-03-2027")
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})
}

func TestLeaveService_List(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)

	require.NoError(t, deps.repo.Create(ctx, &leave.DriverLeave{
		DriverID:  1,
		Type:      leave.TypeSick,
		StartDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
		Status:    leave.StatusApproved,
	}))
	_, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
		DriverID:  1,
		LeaveType: leave.TypeVacation,
		StartDate: "2027-03-10",
		EndDate:   "2027-03-15",
	})
	require.NoError(t, err)

	t.Run("all leaves newest first", func(t *testing.T) {
		driverID := uint(1)
		resp, err := deps.service.List(ctx, leave.ListFilter{DriverID: &driverID})
		assert.NoError(t, err)
		require.Len(t, resp, 2)
		assert.Equal(t, "2027-03-10", resp[0].StartDate)
	})

	t.Run("active only drops finished leaves", func(t *testing.T) {
		resp, err := deps.service.List(ctx, leave.ListFilter{ActiveOnly: true})
		assert.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "2027-03-10", resp[0].StartDate)
	})

	t.Run("status filter", func(t *testing.T) {
		resp, err := deps.service.List(ctx, leave.ListFilter{Status: leave.StatusApproved})
		assert.NoError(t, err)
		require.Len(t, resp, 2)
	})
}

func TestLeaveService_PreviewAffectedJobs(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)

	driverID := uint(1)
	require.NoError(t, deps.db.Create(&job.Job{
		Status:     job.StatusNew,
		DriverID:   &driverID,
		PickupDate: time.Date(2027, 3, 12, 0, 0, 0, 0, time.UTC),
		PickupTime: "09:00:00",
	}).Error)

	resp, err := deps.service.PreviewAffectedJobs(ctx, 1, "2027-03-10", "2027-03-15")
	assert.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "2027-03-12", resp[0].PickupDate)

	_, err = deps.service.PreviewAffectedJobs(ctx, 1, "2027-03-15", "2027-03-10")
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
}
