// Package store connects to the data store and manages projects and
// work records.
package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/dashtrack/dash/internal/models"
)

const (
	metaBucket    = "meta"
	projectBucket = "projects"
	recordBucket  = "records"
)

// metaKey is the single key under which the meta singleton is stored.
var metaKey = []byte("meta")

var errDashRunning = errors.New(
	"is dash already running? Only one instance can be active at a time",
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// Load reads the meta singleton and the full project and record sets.
// Records are returned in insertion order.
func (c *Client) Load() (models.Meta, []models.Project, []models.Record, error) {
	var (
		meta     models.Meta
		projects []models.Project
		records  []models.Record
	)

	err := c.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(metaBucket)).Get(metaKey); len(v) != 0 {
			if err := json.Unmarshal(v, &meta); err != nil {
				return fmt.Errorf("corrupt meta entry: %w", err)
			}
		}

		err := tx.Bucket([]byte(projectBucket)).
			ForEach(func(_, v []byte) error {
				var p models.Project

				if err := json.Unmarshal(v, &p); err != nil {
					return fmt.Errorf("corrupt project entry: %w", err)
				}

				projects = append(projects, p)

				return nil
			})
		if err != nil {
			return err
		}

		// Record keys are big-endian sequence numbers, so key order is
		// insertion order.
		return tx.Bucket([]byte(recordBucket)).
			ForEach(func(_, v []byte) error {
				var r models.Record

				if err := json.Unmarshal(v, &r); err != nil {
					return fmt.Errorf("corrupt record entry: %w", err)
				}

				records = append(records, r)

				return nil
			})
	})
	if err != nil {
		return models.Meta{}, nil, nil, err
	}

	return meta, projects, records, nil
}

// SaveMeta replaces the persisted meta singleton.
func (c *Client) SaveMeta(meta models.Meta) error {
	value, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(metaBucket)).Put(metaKey, value)
	})
}

// SaveProjects replaces the persisted project set wholesale.
func (c *Client) SaveProjects(projects []models.Project) error {
	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(projectBucket))

		if err := clearBucket(b); err != nil {
			return err
		}

		for i := range projects {
			value, err := json.Marshal(projects[i])
			if err != nil {
				return err
			}

			err = b.Put([]byte(projects[i].Name), value)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// SaveRecords replaces the persisted record set wholesale. Records with
// a zero ID are assigned the next bucket sequence number in place, so
// ids keep increasing in insertion order even across deletions.
func (c *Client) SaveRecords(records []models.Record) error {
	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(recordBucket))

		if err := clearBucket(b); err != nil {
			return err
		}

		for i := range records {
			if records[i].ID == 0 {
				seq, err := b.NextSequence()
				if err != nil {
					return err
				}

				records[i].ID = seq
			}

			value, err := json.Marshal(records[i])
			if err != nil {
				return err
			}

			err = b.Put(itob(records[i].ID), value)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// Close ends the database connection.
func (c *Client) Close() error {
	return c.DB.Close()
}

// clearBucket deletes every key in the bucket without touching its
// sequence counter.
func clearBucket(b *bolt.Bucket) error {
	cur := b.Cursor()

	for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
		if err := cur.Delete(); err != nil {
			return err
		}
	}

	return nil
}

// itob returns an 8-byte big-endian representation of v so that byte
// order matches numeric order.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)

	return b
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errDashRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection, creating the
// buckets and the default meta entry if they do not exist already.
// Safe to call on every invocation.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{metaBucket, projectBucket, recordBucket} {
			_, err = tx.CreateBucketIfNotExists([]byte(name))
			if err != nil {
				return err
			}
		}

		b := tx.Bucket([]byte(metaBucket))
		if b.Get(metaKey) != nil {
			return nil
		}

		value, err := json.Marshal(models.Meta{})
		if err != nil {
			return err
		}

		return b.Put(metaKey, value)
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
