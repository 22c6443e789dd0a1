package server

import (
	"time"

	"github.com/calder-labs/strand/store"
)

// Event types pushed to WebSocket clients
const (
	EventRecordCreated = "record_created"
	EventRecordDeleted = "record_deleted"
)

// Event is a collection change notification carrying the affected record
type Event struct {
	Type      string       `json:"type"`
	Record    store.Record `json:"record"`
	Timestamp time.Time    `json:"timestamp"`
}

// broadcastEvent queues an event for the hub. Never blocks a handler: if the
// broadcast queue is full the event is dropped and counted.
func (s *Server) broadcastEvent(eventType string, record store.Record) {
	event := Event{
		Type:      eventType,
		Record:    record,
		Timestamp: time.Now().UTC(),
	}

	select {
	case s.broadcast <- event:
	case <-s.ctx.Done():
	default:
		s.broadcastDrops.Add(1)
		s.log.Warnw("Broadcast queue full, dropping event",
			"event_type", eventType,
			"record_id", record.ID,
		)
	}
}
