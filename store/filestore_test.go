package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calder-labs/strand/analysis"
)

func testRecord(value string) Record {
	props := analysis.Analyze(value)
	return Record{
		ID:         props.Fingerprint,
		Value:      value,
		Properties: props,
		CreatedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "strand.json"), nil)
	require.NoError(t, err)
	defer fs.Close()

	collection, err := fs.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, collection)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strand.json")
	fs, err := NewFileStore(path, nil)
	require.NoError(t, err)
	defer fs.Close()

	ctx := context.Background()
	racecar := testRecord("racecar")
	hello := testRecord("hello")

	collection := Collection{racecar.ID: racecar, hello.ID: hello}
	require.NoError(t, fs.Save(ctx, collection))

	loaded, err := fs.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, racecar.Value, loaded[racecar.ID].Value)
	assert.True(t, loaded[racecar.ID].Properties.IsPalindrome)
	assert.Equal(t, hello.Properties.Fingerprint, loaded[hello.ID].ID)
}

func TestFileStoreReloadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strand.json")

	writer, err := NewFileStore(path, nil)
	require.NoError(t, err)
	record := testRecord("level")
	require.NoError(t, writer.Save(context.Background(), Collection{record.ID: record}))
	writer.Close()

	// fresh store, cold cache
	reader, err := NewFileStore(path, nil)
	require.NoError(t, err)
	defer reader.Close()

	loaded, err := reader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "level", loaded[record.ID].Value)
	assert.WithinDuration(t, record.CreatedAt, loaded[record.ID].CreatedAt, time.Second)
}

func TestFileStoreSaveIsSortedAndStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strand.json")
	fs, err := NewFileStore(path, nil)
	require.NoError(t, err)
	defer fs.Close()

	first := testRecord("alpha")
	first.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := testRecord("beta")
	second.CreatedAt = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, fs.Save(context.Background(), Collection{
		second.ID: second,
		first.ID:  first,
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc fileDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Records, 2)
	assert.Equal(t, "alpha", doc.Records[0].Value)
	assert.Equal(t, "beta", doc.Records[1].Value)
}

func TestFileStoreSaveEmptyCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strand.json")
	fs, err := NewFileStore(path, nil)
	require.NoError(t, err)
	defer fs.Close()

	ctx := context.Background()
	record := testRecord("solo")
	require.NoError(t, fs.Save(ctx, Collection{record.ID: record}))
	require.NoError(t, fs.Save(ctx, Collection{}))

	loaded, err := fs.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFileStoreLoadCancelledContext(t *testing.T) {
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "strand.json"), nil)
	require.NoError(t, err)
	defer fs.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = fs.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strand.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	fs, err := NewFileStore(path, nil)
	require.NoError(t, err)
	defer fs.Close()

	_, err = fs.Load(context.Background())
	assert.Error(t, err)
}
