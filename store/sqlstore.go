package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/calder-labs/strand/analysis"
	"github.com/calder-labs/strand/errors"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLStore is the record-indexed alternative to the flat-file store. It keeps
// the same load/save-shaped contract: Load materializes the whole table as a
// collection, Save reconciles the table against the given collection
// (upserting present records, deleting absent ones) inside one transaction.
type SQLStore struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// NewSQLStore opens (creating if needed) a SQLite-backed store at path and
// applies pending migrations.
func NewSQLStore(path string, log *zap.SugaredLogger) (*SQLStore, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	log = log.Named("store.sqlite")

	db, err := openSQLite(path, log)
	if err != nil {
		return nil, err
	}

	if err := migrate(db, log); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLStore{db: db, log: log}, nil
}

// newSQLStoreWithDB wraps an existing handle without opening or migrating.
// Used by tests with a mock database.
func newSQLStoreWithDB(db *sql.DB, log *zap.SugaredLogger) *SQLStore {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &SQLStore{db: db, log: log.Named("store.sqlite")}
}

// openSQLite opens a SQLite database with the settings every strand handle
// uses: WAL journaling, foreign keys, and a 5 second busy timeout.
func openSQLite(path string, log *zap.SugaredLogger) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "failed to apply %s", pragma)
		}
	}

	log.Debugw("Database opened", "path", path, "wal_mode", true)
	return db, nil
}

// migrate applies all pending migrations in filename order
func migrate(db *sql.DB, log *zap.SugaredLogger) error {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return errors.Wrap(err, "read migrations")
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, filename := range files {
		version := strings.Split(filename, "_")[0]

		// schema_migrations is created by migration 000 itself
		var exists bool
		err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = ?)", version).Scan(&exists)
		if err != nil {
			if version != "000" {
				return errors.Newf("schema_migrations table missing, but migration is not 000: %s", filename)
			}
		} else if exists {
			log.Debugw("Skipping migration (already applied)", "migration", filename)
			continue
		}

		sqlBytes, err := migrations.ReadFile("migrations/" + filename)
		if err != nil {
			return errors.Wrapf(err, "read %s", filename)
		}

		log.Infow("Applying migration", "migration", filename)

		tx, err := db.Begin()
		if err != nil {
			return errors.Wrapf(err, "begin tx for %s", filename)
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "execute %s", filename)
		}
		if err := tx.Commit(); err != nil {
			return errors.Wrapf(err, "commit %s", filename)
		}
	}

	return nil
}

// Load materializes the records table as a collection
func (s *SQLStore) Load(ctx context.Context) (Collection, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, value, properties, created_at FROM records")
	if err != nil {
		return nil, errors.Wrap(err, "failed to query records")
	}
	defer rows.Close()

	collection := make(Collection)
	for rows.Next() {
		var id, value, propertiesJSON, createdAt string
		if err := rows.Scan(&id, &value, &propertiesJSON, &createdAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan record")
		}

		var props analysis.Properties
		if err := json.Unmarshal([]byte(propertiesJSON), &props); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal properties for record %s", id)
		}

		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse created_at for record %s", id)
		}

		collection[id] = Record{
			ID:         id,
			Value:      value,
			Properties: props,
			CreatedAt:  ts,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate records")
	}

	s.log.Debugw("Loaded collection", "count", len(collection))
	return collection, nil
}

// Save reconciles the records table against collection, preserving full-state
// save semantics: after Save the table holds exactly the given collection.
func (s *SQLStore) Save(ctx context.Context, collection Collection) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, "SELECT id FROM records")
	if err != nil {
		return errors.Wrap(err, "failed to query existing ids")
	}
	var stale []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return errors.Wrap(err, "failed to scan id")
		}
		if _, ok := collection[id]; !ok {
			stale = append(stale, id)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return errors.Wrap(err, "failed to iterate ids")
	}
	rows.Close()

	for _, id := range stale {
		if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id); err != nil {
			return errors.Wrapf(err, "failed to delete record %s", id)
		}
	}

	for _, record := range collection {
		propertiesJSON, err := json.Marshal(record.Properties)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal properties for record %s", record.ID)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO records (id, value, properties, created_at) VALUES (?, ?, ?, ?)",
			record.ID, record.Value, string(propertiesJSON),
			record.CreatedAt.Format(time.RFC3339Nano))
		if err != nil {
			return errors.Wrapf(err, "failed to upsert record %s", record.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit save")
	}

	s.log.Debugw("Saved collection", "count", len(collection), "deleted", len(stale))
	return nil
}

// Close closes the database handle
func (s *SQLStore) Close() error {
	return s.db.Close()
}
