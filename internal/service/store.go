package service

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DedupDatabase persists processed event ids across restarts.
type DedupDatabase interface {
	IsProcessed(ctx context.Context, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, eventID string) (bool, error)
}

// ProcessedEventStore guards the at-most-once invariant: an in-process set
// answers fast and is authoritative within one run, with every mark written
// through to the database so the next run inherits the ledger. Database
// errors degrade to memory-only dedup rather than stopping the pipeline.
type ProcessedEventStore struct {
	mu     sync.Mutex
	seen   map[string]struct{}
	cutoff time.Time
	db     DedupDatabase
	logger *logrus.Logger
}

// NewProcessedEventStore creates a store with the given cutoff. Events
// created before the cutoff are never handled, which keeps relay backlog
// replays out of the ledger on (re)start.
func NewProcessedEventStore(db DedupDatabase, cutoff time.Time, logger *logrus.Logger) *ProcessedEventStore {
	return &ProcessedEventStore{
		seen:   make(map[string]struct{}),
		cutoff: cutoff,
		db:     db,
		logger: logger,
	}
}

// IsNew reports whether the event id has not been handled, either in this
// run or (when the database is reachable) in a previous one.
func (s *ProcessedEventStore) IsNew(ctx context.Context, eventID string) bool {
	s.mu.Lock()
	_, ok := s.seen[eventID]
	s.mu.Unlock()
	if ok {
		return false
	}

	if s.db != nil {
		processed, err := s.db.IsProcessed(ctx, eventID)
		if err != nil {
			s.logger.WithError(err).Warn("Dedup database check failed, falling back to in-memory set")
			return true
		}
		return !processed
	}
	return true
}

// MarkProcessed records the event id. Once marked, the event is never
// reprocessed in this run even if later pipeline steps fail.
func (s *ProcessedEventStore) MarkProcessed(ctx context.Context, eventID string) {
	s.mu.Lock()
	s.seen[eventID] = struct{}{}
	s.mu.Unlock()

	if s.db != nil {
		if _, err := s.db.MarkProcessed(ctx, eventID); err != nil {
			s.logger.WithError(err).Warn("Failed to persist processed event id")
		}
	}
}

// IsAfterCutoff reports whether a creation timestamp is at or after the
// pipeline's start boundary. Comparison is in whole seconds, matching the
// source network's clock resolution.
func (s *ProcessedEventStore) IsAfterCutoff(ts time.Time) bool {
	return ts.Unix() >= s.cutoff.Unix()
}

// Cutoff returns the start boundary timestamp.
func (s *ProcessedEventStore) Cutoff() time.Time {
	return s.cutoff
}
