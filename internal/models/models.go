// Package models defines the data types persisted by dash.
package models

import (
	"time"
)

// Meta identifies which project start/end/log operate against.
// CurrentProject is empty until the user selects or creates a project.
type Meta struct {
	CurrentProject string `json:"current_project,omitempty"`
}

// Project is a named container for work records. Names are unique.
type Project struct {
	Name string `json:"name"`
}

// Record is one contiguous span of work on a phase within a project.
// A nil EndTime means the span is still open (work in progress).
type Record struct {
	// ID is a synthetic identifier assigned by the store on first save.
	// It increases with insertion order and never repeats.
	ID        uint64     `json:"id"`
	Project   string     `json:"project"`
	Phase     string     `json:"phase"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

// Open reports whether the record represents work in progress.
func (r Record) Open() bool {
	return r.EndTime == nil
}

// Duration returns the length of the span, measuring open records
// against the supplied reference time.
func (r Record) Duration(now time.Time) time.Duration {
	if r.EndTime != nil {
		return r.EndTime.Sub(r.StartTime)
	}

	return now.Sub(r.StartTime)
}
