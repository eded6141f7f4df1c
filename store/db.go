package store

import (
	"github.com/dashtrack/dash/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// Load returns the meta singleton plus the full project and record
	// sets.
	Load() (models.Meta, []models.Project, []models.Record, error)
	// SaveMeta replaces the persisted meta singleton.
	SaveMeta(meta models.Meta) error
	// SaveProjects replaces the persisted project set wholesale.
	SaveProjects(projects []models.Project) error
	// SaveRecords replaces the persisted record set wholesale. Records
	// without an ID are assigned one in place.
	SaveRecords(records []models.Record) error
	// Close ends the database connection.
	Close() error
}
