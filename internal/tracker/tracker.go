// Package tracker implements the state machine that governs how
// starting and ending work mutates a project's record set, plus the
// read-only queries derived from it.
//
// All mutations take a loaded snapshot and return an updated copy; the
// caller persists whatever changed. A project is either idle (no open
// record) or active (exactly one record without an end time).
package tracker

import (
	"cmp"
	"slices"
	"time"

	"github.com/dashtrack/dash/internal/models"
)

// FindProject returns the project with the given name.
func FindProject(projects []models.Project, name string) (models.Project, bool) {
	for _, p := range projects {
		if p.Name == name {
			return p, true
		}
	}

	return models.Project{}, false
}

// CurrentProject resolves the active project from the meta singleton.
func CurrentProject(
	meta models.Meta,
	projects []models.Project,
) (models.Project, bool) {
	if meta.CurrentProject == "" {
		return models.Project{}, false
	}

	return FindProject(projects, meta.CurrentProject)
}

// ProjectRecords returns all records belonging to the named project in
// their original order.
func ProjectRecords(records []models.Record, project string) []models.Record {
	var matched []models.Record

	for _, r := range records {
		if r.Project == project {
			matched = append(matched, r)
		}
	}

	return matched
}

// LastRecord returns the named project's record with the greatest start
// time. Records sharing a start time are tie-broken by id, so the most
// recently inserted one wins.
func LastRecord(records []models.Record, project string) (models.Record, bool) {
	var (
		last  models.Record
		found bool
	)

	for _, r := range records {
		if r.Project != project {
			continue
		}

		if !found || r.StartTime.After(last.StartTime) ||
			(r.StartTime.Equal(last.StartTime) && r.ID > last.ID) {
			last, found = r, true
		}
	}

	return last, found
}

// SortByStart returns a copy of records ordered by ascending start
// time, tie-broken by insertion order.
func SortByStart(records []models.Record) []models.Record {
	sorted := slices.Clone(records)

	slices.SortFunc(sorted, func(a, b models.Record) int {
		if c := a.StartTime.Compare(b.StartTime); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	return sorted
}

// Start opens a work record for the given phase at the given instant.
//
// With an empty phase, the last record's phase is reused (resume); a
// project with no history cannot infer a phase and fails with
// ErrPhaseRequired. If a record is already open, starting the same
// phase again is a no-op, while starting a different phase closes the
// open record at the same instant the new one begins, so records never
// overlap and never leave a gap.
//
// The returned bool reports whether the record set changed.
func Start(
	records []models.Record,
	project, phase string,
	now time.Time,
) ([]models.Record, bool, error) {
	last, found := LastRecord(records, project)

	if phase == "" && !found {
		return records, false, ErrPhaseRequired
	}

	updated := slices.Clone(records)

	if found && last.Open() {
		if phase == "" || phase == last.Phase {
			// Already working on the requested phase
			return records, false, nil
		}

		// Implicitly stop work on the previous phase
		updated = setEnd(updated, last.ID, now)
	} else if phase == "" {
		phase = last.Phase
	}

	updated = append(updated, models.Record{
		Project:   project,
		Phase:     phase,
		StartTime: now,
	})

	return updated, true, nil
}

// End closes the project's last record at the given instant. Ending an
// idle project, or one whose last record is already closed, is a no-op.
//
// The returned bool reports whether the record set changed.
func End(
	records []models.Record,
	project string,
	now time.Time,
) ([]models.Record, bool) {
	last, found := LastRecord(records, project)
	if !found || !last.Open() {
		return records, false
	}

	return setEnd(slices.Clone(records), last.ID, now), true
}

// RemoveLast deletes the project's last record entirely, whether open
// or closed. A project with no records is left untouched.
//
// The returned bool reports whether the record set changed.
func RemoveLast(
	records []models.Record,
	project string,
) ([]models.Record, bool) {
	last, found := LastRecord(records, project)
	if !found {
		return records, false
	}

	updated := slices.DeleteFunc(
		slices.Clone(records),
		func(r models.Record) bool {
			return r.Project == last.Project && r.ID == last.ID
		},
	)

	return updated, true
}

func setEnd(records []models.Record, id uint64, end time.Time) []models.Record {
	for i := range records {
		if records[i].ID == id {
			records[i].EndTime = &end
			break
		}
	}

	return records
}
