package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLStoreLoad(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	record := testRecord("racecar")
	propertiesJSON, err := json.Marshal(record.Properties)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, value, properties, created_at FROM records").
		WillReturnRows(sqlmock.NewRows([]string{"id", "value", "properties", "created_at"}).
			AddRow(record.ID, record.Value, string(propertiesJSON),
				record.CreatedAt.Format(time.RFC3339Nano)))

	s := newSQLStoreWithDB(db, nil)
	collection, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, collection, 1)

	loaded := collection[record.ID]
	assert.Equal(t, "racecar", loaded.Value)
	assert.True(t, loaded.Properties.IsPalindrome)
	assert.True(t, record.CreatedAt.Equal(loaded.CreatedAt))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreLoadEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, value, properties, created_at FROM records").
		WillReturnRows(sqlmock.NewRows([]string{"id", "value", "properties", "created_at"}))

	s := newSQLStoreWithDB(db, nil)
	collection, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, collection)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreLoadRejectsBadProperties(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, value, properties, created_at FROM records").
		WillReturnRows(sqlmock.NewRows([]string{"id", "value", "properties", "created_at"}).
			AddRow("abc", "hello", "{broken", time.Now().Format(time.RFC3339Nano)))

	s := newSQLStoreWithDB(db, nil)
	_, err = s.Load(context.Background())
	assert.Error(t, err)
}

func TestSQLStoreSaveUpsertsAndDeletes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	record := testRecord("hello")
	propertiesJSON, err := json.Marshal(record.Properties)
	require.NoError(t, err)

	mock.ExpectBegin()
	// "stale" is on disk but not in the collection, so it must be removed
	mock.ExpectQuery("SELECT id FROM records").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).
			AddRow(record.ID).
			AddRow("stale"))
	mock.ExpectExec("DELETE FROM records WHERE id = ?").
		WithArgs("stale").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT OR REPLACE INTO records").
		WithArgs(record.ID, record.Value, string(propertiesJSON),
			record.CreatedAt.Format(time.RFC3339Nano)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := newSQLStoreWithDB(db, nil)
	err = s.Save(context.Background(), Collection{record.ID: record})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreSaveEmptyCollectionClearsTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM records").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("only"))
	mock.ExpectExec("DELETE FROM records WHERE id = ?").
		WithArgs("only").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := newSQLStoreWithDB(db, nil)
	require.NoError(t, s.Save(context.Background(), Collection{}))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreSaveRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM records").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	s := newSQLStoreWithDB(db, nil)
	err = s.Save(context.Background(), Collection{})
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
