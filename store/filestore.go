package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/calder-labs/strand/config"
	"github.com/calder-labs/strand/errors"
)

// fileDocument is the on-disk shape of the flat-file collection. Records are
// stored as a sorted array so the file diffs cleanly under version control.
type fileDocument struct {
	Records []Record `json:"records"`
}

// FileStore persists the collection as a single JSON document. Writes are
// atomic (temp file + rename). An optional fsnotify watcher invalidates the
// in-memory cache when the file changes on disk outside this process.
type FileStore struct {
	path string
	log  *zap.SugaredLogger

	mu     sync.Mutex
	cache  Collection // nil until first Load or after invalidation
	dirty  bool       // own-write flag for the watcher
	notify *fsnotify.Watcher
	done   chan struct{}
}

// NewFileStore creates a flat-file store at path. The file is created lazily
// on first Save; a missing file reads as an empty collection.
func NewFileStore(path string, log *zap.SugaredLogger) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("file store path is empty")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	if err := os.MkdirAll(filepath.Dir(path), config.DefaultDirPermissions); err != nil {
		return nil, errors.Wrapf(err, "failed to create store directory for %s", path)
	}

	return &FileStore{
		path: path,
		log:  log.Named("store.file"),
		done: make(chan struct{}),
	}, nil
}

// Load returns the persisted collection, reading the file only when the
// cache is cold
func (fs *FileStore) Load(ctx context.Context) (Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.cache != nil {
		return fs.cache.Clone(), nil
	}

	collection, err := fs.read()
	if err != nil {
		return nil, err
	}
	fs.cache = collection

	fs.log.Debugw("Loaded collection",
		"path", fs.path,
		"count", len(collection),
	)
	return collection.Clone(), nil
}

// Save overwrites the persisted state with collection
func (fs *FileStore) Save(ctx context.Context, collection Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	doc := fileDocument{Records: make([]Record, 0, len(collection))}
	for _, record := range collection {
		doc.Records = append(doc.Records, record)
	}
	sort.Slice(doc.Records, func(i, j int) bool {
		if !doc.Records[i].CreatedAt.Equal(doc.Records[j].CreatedAt) {
			return doc.Records[i].CreatedAt.Before(doc.Records[j].CreatedAt)
		}
		return doc.Records[i].ID < doc.Records[j].ID
	})

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal collection")
	}

	// Atomic replace: write a sibling temp file, then rename over the target
	tmp, err := os.CreateTemp(filepath.Dir(fs.path), filepath.Base(fs.path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "failed to write collection")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "failed to close temp file")
	}

	fs.dirty = true // our own write; the watcher must not invalidate for it
	if err := os.Rename(tmpPath, fs.path); err != nil {
		fs.dirty = false
		os.Remove(tmpPath)
		return errors.Wrap(err, "failed to replace collection file")
	}

	fs.cache = collection.Clone()

	fs.log.Debugw("Saved collection",
		"path", fs.path,
		"count", len(collection),
	)
	return nil
}

// Watch starts invalidating the cache when the collection file is modified
// by another process. Own writes are suppressed.
func (fs *FileStore) Watch() error {
	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}

	// Watch the directory rather than the file: rename-based atomic writes
	// replace the watched inode
	if err := notify.Add(filepath.Dir(fs.path)); err != nil {
		notify.Close()
		return errors.Wrapf(err, "failed to watch %s", filepath.Dir(fs.path))
	}

	fs.notify = notify
	go fs.watchLoop()

	fs.log.Infow("Watching collection file", "path", fs.path)
	return nil
}

func (fs *FileStore) watchLoop() {
	var debounce *time.Timer
	for {
		select {
		case <-fs.done:
			return
		case event, ok := <-fs.notify.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(fs.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(200*time.Millisecond, fs.invalidate)
		case err, ok := <-fs.notify.Errors:
			if !ok {
				return
			}
			fs.log.Warnw("Collection watcher error", "error", err)
		}
	}
}

// invalidate drops the cache unless the change came from our own Save
func (fs *FileStore) invalidate() {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.dirty {
		fs.dirty = false
		return
	}

	fs.cache = nil
	fs.log.Infow("Collection file changed on disk, cache invalidated",
		"path", fs.path)
}

// Close stops the watcher, if any
func (fs *FileStore) Close() error {
	close(fs.done)
	if fs.notify != nil {
		return fs.notify.Close()
	}
	return nil
}

// read parses the collection file. A missing file is an empty collection.
func (fs *FileStore) read() (Collection, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(Collection), nil
		}
		return nil, errors.Wrapf(err, "failed to read collection file %s", fs.path)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "failed to parse collection file %s", fs.path)
	}

	collection := make(Collection, len(doc.Records))
	for _, record := range doc.Records {
		collection[record.ID] = record
	}
	return collection, nil
}
