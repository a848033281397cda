package reassignment

import (
	"fleetops/internal/job"
)

func supplied(v *uint) bool {
	return v != nil && *v != 0
}

func suppliesAnything(d Directive) bool {
	return supplied(d.NewDriverID) || supplied(d.NewVehicleID) || supplied(d.NewContractorID)
}

// shouldSkip reports whether an empty directive leaves the job untouched.
// Only jobs already in progress are skipped, so a running job is never
// silently unassigned. Everywhere else an empty directive frees the job:
// the crew is cleared and the status recomputed like any other directive.
func shouldSkip(cat job.StatusCategory, d Directive) bool {
	return cat == job.CategoryInProgress && !suppliesAnything(d)
}

// applyPolicy computes the post-reassignment triple for a job.
//
// Jobs that have not started (and terminal ones) take the directive verbatim:
// supplied references are set, unsupplied ones are cleared. Jobs already in
// progress keep their current crew for unsupplied fields, except that handing
// the job to a contractor clears both driver and vehicle.
func applyPolicy(cat job.StatusCategory, cur job.Assignment, d Directive) job.Assignment {
	if cat == job.CategoryInProgress {
		next := cur
		if supplied(d.NewContractorID) {
			next.ContractorID = d.NewContractorID
			next.DriverID = nil
			next.VehicleID = nil
			return next
		}
		if supplied(d.NewDriverID) {
			next.DriverID = d.NewDriverID
		}
		if supplied(d.NewVehicleID) {
			next.VehicleID = d.NewVehicleID
		}
		return next
	}

	var next job.Assignment
	if supplied(d.NewDriverID) {
		next.DriverID = d.NewDriverID
	}
	if supplied(d.NewVehicleID) {
		next.VehicleID = d.NewVehicleID
	}
	if supplied(d.NewContractorID) {
		next.ContractorID = d.NewContractorID
	}
	return next
}

// nextStatus recomputes the job status after a reassignment. Only jobs that
// have not started move: a contractor assignment confirms the job, anything
// else drops it back to pending for re-dispatch.
func nextStatus(cat job.StatusCategory, current string, next job.Assignment) string {
	if cat != job.CategoryNotStarted {
		return current
	}
	if next.ContractorID != nil {
		return job.StatusConfirmed
	}
	return job.StatusPending
}

func deriveCategory(d Directive) string {
	switch {
	case supplied(d.NewContractorID):
		return CategoryContractor
	case supplied(d.NewDriverID):
		return CategoryDriver
	default:
		return CategoryVehicle
	}
}
