// Package service implements the record operations over an explicit store
// handle. All collection mutations are serialized: a load, compute, save
// sequence runs to completion before the next mutation begins.
package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/calder-labs/strand/analysis"
	"github.com/calder-labs/strand/errors"
	"github.com/calder-labs/strand/query"
	"github.com/calder-labs/strand/store"
)

type Service struct {
	store store.Store
	log   *zap.SugaredLogger

	// guards the load-compute-save window of mutating operations
	mu sync.Mutex
}

func New(st store.Store, log *zap.SugaredLogger) *Service {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{
		store: st,
		log:   log.Named("service"),
	}
}

// Create analyzes value and stores it under its fingerprint. Storing the same
// value twice returns the existing record with ErrDuplicate.
func (s *Service) Create(ctx context.Context, value string) (store.Record, error) {
	if value == "" {
		return store.Record{}, errors.Wrap(errors.ErrInvalidRequest, "value must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	collection, err := s.store.Load(ctx)
	if err != nil {
		return store.Record{}, err
	}

	props := analysis.Analyze(value)
	if existing, ok := collection[props.Fingerprint]; ok {
		s.log.Debugw("Duplicate value rejected", "fingerprint", props.Fingerprint)
		return existing, errors.Wrapf(errors.ErrDuplicate,
			"value already stored as %s", props.Fingerprint)
	}

	record := store.Record{
		ID:         props.Fingerprint,
		Value:      value,
		Properties: props,
		CreatedAt:  time.Now().UTC(),
	}
	collection[record.ID] = record

	if err := s.store.Save(ctx, collection); err != nil {
		return store.Record{}, err
	}

	s.log.Infow("Record created",
		"record_id", record.ID,
		"length", props.Length,
		"word_count", props.WordCount,
	)
	return record, nil
}

// GetByValue fetches the record whose content matches value exactly
func (s *Service) GetByValue(ctx context.Context, value string) (store.Record, error) {
	return s.GetByID(ctx, analysis.Fingerprint(value))
}

// GetByID fetches a record by its fingerprint
func (s *Service) GetByID(ctx context.Context, id string) (store.Record, error) {
	collection, err := s.store.Load(ctx)
	if err != nil {
		return store.Record{}, err
	}

	record, ok := collection[id]
	if !ok {
		return store.Record{}, errors.Wrapf(errors.ErrNotFound, "no record %s", id)
	}
	return record, nil
}

// DeleteByValue removes the record matching value and returns it
func (s *Service) DeleteByValue(ctx context.Context, value string) (store.Record, error) {
	id := analysis.Fingerprint(value)

	s.mu.Lock()
	defer s.mu.Unlock()

	collection, err := s.store.Load(ctx)
	if err != nil {
		return store.Record{}, err
	}

	record, ok := collection[id]
	if !ok {
		return store.Record{}, errors.Wrapf(errors.ErrNotFound, "no record %s", id)
	}
	delete(collection, id)

	if err := s.store.Save(ctx, collection); err != nil {
		return store.Record{}, err
	}

	s.log.Infow("Record deleted", "record_id", id)
	return record, nil
}

// List returns the records matching criteria, oldest first
func (s *Service) List(ctx context.Context, criteria query.Criteria) ([]store.Record, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	collection, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]store.Record, 0, len(collection))
	for _, record := range collection {
		if criteria.Matches(record.Properties, record.Value) {
			records = append(records, record)
		}
	}
	sortRecords(records)

	s.log.Debugw("Listed records", "matches", len(records), "total", len(collection))
	return records, nil
}

// Query interprets phrase into criteria and lists the matching records. The
// derived criteria are returned alongside the records so callers can show
// what the phrase was understood to mean.
func (s *Service) Query(ctx context.Context, phrase string) ([]store.Record, query.Criteria, error) {
	if phrase == "" {
		return nil, query.Criteria{}, errors.Wrap(errors.ErrInvalidRequest, "phrase must not be empty")
	}

	criteria, err := query.Interpret(phrase)
	if err != nil {
		return nil, query.Criteria{}, err
	}

	records, err := s.List(ctx, criteria)
	if err != nil {
		return nil, query.Criteria{}, err
	}
	return records, criteria, nil
}

// sortRecords orders by creation time, fingerprint as tiebreak
func sortRecords(records []store.Record) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].ID < records[j].ID
	})
}
