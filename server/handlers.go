package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/calder-labs/strand/query"
	"github.com/calder-labs/strand/store"
	"github.com/calder-labs/strand/version"
)

// valueRequest is the body shape for operations addressing a record by its
// raw content. A non-string value fails JSON decoding with a 400.
type valueRequest struct {
	Value string `json:"value"`
}

// listResponse carries matching records together with the criteria that were
// applied, and for phrase queries the original phrase
type listResponse struct {
	Records  []store.Record `json:"records"`
	Count    int            `json:"count"`
	Criteria query.Criteria `json:"criteria"`
	Phrase   string         `json:"phrase,omitempty"`
}

// handleStrings dispatches the collection endpoint: create, list, and delete
func (s *Server) handleStrings(w http.ResponseWriter, r *http.Request) {
	if !requireMethods(w, r, http.MethodPost, http.MethodGet, http.MethodDelete) {
		return
	}

	switch r.Method {
	case http.MethodPost:
		s.handleCreate(w, r)
	case http.MethodGet:
		s.handleList(w, r)
	case http.MethodDelete:
		s.handleDelete(w, r)
	}
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()

	var req valueRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}

	record, err := s.svc.Create(r.Context(), req.Value)
	if err != nil {
		s.log.Debugw("Create rejected",
			"request_id", requestID,
			"error", err,
		)
		writeServiceError(w, err)
		return
	}

	s.log.Infow("Record created via API",
		"request_id", requestID,
		"record_id", shortID(record.ID),
	)

	s.broadcastEvent(EventRecordCreated, record)
	writeJSON(w, http.StatusCreated, record)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	criteria, err := query.ParseValues(r.URL.Query())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	records, err := s.svc.List(r.Context(), criteria)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Records:  records,
		Count:    len(records),
		Criteria: criteria,
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()

	var req valueRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}

	record, err := s.svc.DeleteByValue(r.Context(), req.Value)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	s.log.Infow("Record deleted via API",
		"request_id", requestID,
		"record_id", shortID(record.ID),
	)

	s.broadcastEvent(EventRecordDeleted, record)
	writeJSON(w, http.StatusOK, record)
}

// handleStringByID fetches a single record by its fingerprint
func (s *Server) handleStringByID(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	parts := extractPathParts(r.URL.Path, "/api/strings/")
	if len(parts) != 1 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "expected /api/strings/{id}")
		return
	}

	record, err := s.svc.GetByID(r.Context(), parts[0])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// handleLookup fetches a record by its raw value, posted in the body so
// arbitrary content never has to survive URL encoding
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req valueRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}

	record, err := s.svc.GetByValue(r.Context(), req.Value)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// handleQuery lists records matching a natural-language phrase
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	requestID := uuid.New().String()
	phrase := r.URL.Query().Get("phrase")
	started := time.Now()

	records, criteria, err := s.svc.Query(r.Context(), phrase)
	if err != nil {
		s.log.Debugw("Phrase rejected",
			"request_id", requestID,
			"error", err,
		)
		writeServiceError(w, err)
		return
	}

	s.log.Infow("Phrase query served",
		"request_id", requestID,
		"matches", len(records),
		"duration_ms", time.Since(started).Milliseconds(),
	)

	writeJSON(w, http.StatusOK, listResponse{
		Records:  records,
		Count:    len(records),
		Criteria: criteria,
		Phrase:   phrase,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Get().Short(),
	})
}
