package reassignment

import (
	"testing"

	"fleetops/internal/job"

	"github.com/stretchr/testify/assert"
)

func ref(v uint) *uint { return &v }

func TestSupplied(t *testing.T) {
	assert.False(t, supplied(nil))
	assert.False(t, supplied(ref(0)))
	assert.True(t, supplied(ref(7)))
}

func TestShouldSkip(t *testing.T) {
	empty := Directive{JobID: 1}

	t.Run("empty directive on in-progress job is skipped", func(t *testing.T) {
		assert.True(t, shouldSkip(job.CategoryInProgress, empty))
	})

	t.Run("empty directive on not-started job frees it", func(t *testing.T) {
		assert.False(t, shouldSkip(job.CategoryNotStarted, empty))
		assert.False(t, shouldSkip(job.CategoryOther, empty))
	})

	t.Run("supplied directive is never skipped", func(t *testing.T) {
		assert.False(t, shouldSkip(job.CategoryInProgress, Directive{JobID: 1, NewDriverID: ref(9)}))
	})
}

func TestApplyPolicy_NotStarted(t *testing.T) {
	cur := job.Assignment{DriverID: ref(1), VehicleID: ref(2)}

	t.Run("unsupplied fields are cleared", func(t *testing.T) {
		next := applyPolicy(job.CategoryNotStarted, cur, Directive{NewDriverID: ref(9)})
		assert.Equal(t, ref(9), next.DriverID)
		assert.Nil(t, next.VehicleID)
		assert.Nil(t, next.ContractorID)
	})

	t.Run("all supplied are set", func(t *testing.T) {
		next := applyPolicy(job.CategoryNotStarted, cur, Directive{
			NewDriverID:     ref(9),
			NewVehicleID:    ref(8),
			NewContractorID: ref(7),
		})
		assert.Equal(t, ref(9), next.DriverID)
		assert.Equal(t, ref(8), next.VehicleID)
		assert.Equal(t, ref(7), next.ContractorID)
	})

	t.Run("zero counts as unsupplied", func(t *testing.T) {
		next := applyPolicy(job.CategoryNotStarted, cur, Directive{NewDriverID: ref(0), NewVehicleID: ref(5)})
		assert.Nil(t, next.DriverID)
		assert.Equal(t, ref(5), next.VehicleID)
	})
}

func TestApplyPolicy_InProgress(t *testing.T) {
	cur := job.Assignment{DriverID: ref(1), VehicleID: ref(2)}

	t.Run("unsupplied fields retain originals", func(t *testing.T) {
		next := applyPolicy(job.CategoryInProgress, cur, Directive{NewDriverID: ref(9)})
		assert.Equal(t, ref(9), next.DriverID)
		assert.Equal(t, ref(2), next.VehicleID)
		assert.Nil(t, next.ContractorID)
	})

	t.Run("contractor forces driver and vehicle null", func(t *testing.T) {
		next := applyPolicy(job.CategoryInProgress, cur, Directive{
			NewContractorID: ref(7),
			NewDriverID:     ref(9),
		})
		assert.Equal(t, ref(7), next.ContractorID)
		assert.Nil(t, next.DriverID)
		assert.Nil(t, next.VehicleID)
	})
}

func TestNextStatus(t *testing.T) {
	t.Run("not started with contractor becomes confirmed", func(t *testing.T) {
		got := nextStatus(job.CategoryNotStarted, job.StatusNew, job.Assignment{ContractorID: ref(7)})
		assert.Equal(t, job.StatusConfirmed, got)
	})

	t.Run("not started without contractor becomes pending", func(t *testing.T) {
		got := nextStatus(job.CategoryNotStarted, job.StatusConfirmed, job.Assignment{DriverID: ref(9)})
		assert.Equal(t, job.StatusPending, got)
	})

	t.Run("in progress keeps its status", func(t *testing.T) {
		got := nextStatus(job.CategoryInProgress, job.StatusOnTheWay, job.Assignment{ContractorID: ref(7)})
		assert.Equal(t, job.StatusOnTheWay, got)
	})

	t.Run("terminal keeps its status", func(t *testing.T) {
		got := nextStatus(job.CategoryOther, job.StatusComplete, job.Assignment{DriverID: ref(9)})
		assert.Equal(t, job.StatusComplete, got)
	})
}

func TestDeriveCategory(t *testing.T) {
	assert.Equal(t, CategoryContractor, deriveCategory(Directive{NewContractorID: ref(7), NewDriverID: ref(9)}))
	assert.Equal(t, CategoryDriver, deriveCategory(Directive{NewDriverID: ref(9), NewVehicleID: ref(8)}))
	assert.Equal(t, CategoryVehicle, deriveCategory(Directive{NewVehicleID: ref(8)}))
}
