// Package store persists the record collection.
//
// Persistence is whole-state: Load returns the entire collection and Save
// overwrites the entire persisted state. Two drivers implement the same
// contract, a flat JSON document (the original format) and a record-indexed
// SQLite table. Previously stored fields are preserved verbatim; there is no
// silent migration between formats.
package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/calder-labs/strand/analysis"
	"github.com/calder-labs/strand/config"
	"github.com/calder-labs/strand/errors"
)

// Record is the persisted unit: a string value plus its immutable computed
// properties and creation timestamp. ID is the value's fingerprint and
// doubles as primary key and idempotency guard.
type Record struct {
	ID         string              `json:"id"`
	Value      string              `json:"value"`
	Properties analysis.Properties `json:"properties"`
	CreatedAt  time.Time           `json:"created_at"`
}

// Collection holds the full record set, keyed by fingerprint
type Collection map[string]Record

// Clone returns a shallow copy of the collection. Records are immutable, so
// sharing them between copies is safe.
func (c Collection) Clone() Collection {
	clone := make(Collection, len(c))
	for id, record := range c {
		clone[id] = record
	}
	return clone
}

// Store is the whole-collection persistence contract. Load completes before
// any filtering or analysis reads the collection; Save completes before the
// response confirming a mutation is returned.
type Store interface {
	// Load returns the full persisted collection, empty if nothing has been
	// stored yet
	Load(ctx context.Context) (Collection, error)

	// Save overwrites the full persisted state with the given collection
	Save(ctx context.Context, collection Collection) error

	// Close releases any underlying resources
	Close() error
}

// Driver names
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Open creates a Store for the configured driver
func Open(cfg config.Store, log *zap.SugaredLogger) (Store, error) {
	switch cfg.Driver {
	case DriverFile, "":
		fs, err := NewFileStore(cfg.Path, log)
		if err != nil {
			return nil, err
		}
		if cfg.Watch {
			if err := fs.Watch(); err != nil {
				fs.Close()
				return nil, err
			}
		}
		return fs, nil
	case DriverSQLite:
		return NewSQLStore(cfg.Path, log)
	default:
		return nil, errors.Newf("unknown store driver %q", cfg.Driver)
	}
}
