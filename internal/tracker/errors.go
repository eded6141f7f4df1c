package tracker

import "errors"

var (
	// ErrNoCurrentProject is reported by commands that need an active
	// project when none has been selected.
	ErrNoCurrentProject = errors.New(
		"current project not set, run 'dash project <name>' first",
	)

	// ErrPhaseRequired is reported when starting work on a project with
	// no history and no phase argument to infer one from.
	ErrPhaseRequired = errors.New(
		"last record not found, a phase is required",
	)
)
