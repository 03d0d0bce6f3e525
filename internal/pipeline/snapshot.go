package pipeline

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/incident-data-etl/internal/domain"
)

// Snapshot is one complete, immutable published result set.
type Snapshot struct {
	ID           uuid.UUID                   `json:"id"`
	GeneratedAt  time.Time                   `json:"generated_at"`
	Records      []domain.Record             `json:"records"`
	Filters      domain.FilterOptions        `json:"filters"`
	Analytics    domain.Analytics            `json:"analytics"`
	RowsRead     int                         `json:"rows_read"`
	RowsRejected map[domain.RejectReason]int `json:"rows_rejected"`
}

// NewSnapshot wraps a processed result as a snapshot with the given identity.
func NewSnapshot(id uuid.UUID, at time.Time, res Result) *Snapshot {
	return &Snapshot{
		ID:           id,
		GeneratedAt:  at,
		Records:      res.Records,
		Filters:      res.Filters,
		Analytics:    res.Analytics,
		RowsRead:     res.RowsRead,
		RowsRejected: res.Rejected,
	}
}

func emptySnapshot() *Snapshot {
	filters, analytics := domain.Summarize(nil)
	return &Snapshot{
		Records:      []domain.Record{},
		Filters:      filters,
		Analytics:    analytics,
		RowsRejected: map[domain.RejectReason]int{},
	}
}

// Store holds the current snapshot. Readers always see either the previous or
// the next snapshot in full; a published snapshot is never modified.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns a store holding an empty, unpublished snapshot.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(emptySnapshot())
	return s
}

// Current returns the live snapshot. Callers must not modify it.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Published reports whether any refresh has succeeded.
func (s *Store) Published() bool {
	return s.current.Load().ID != uuid.Nil
}

// Records returns a copy of the current records.
func (s *Store) Records() []domain.Record {
	return slices.Clone(s.current.Load().Records)
}

// FilterOptions returns the current filter options.
func (s *Store) FilterOptions() domain.FilterOptions {
	f := s.current.Load().Filters
	return domain.FilterOptions{
		EventTypes:   slices.Clone(f.EventTypes),
		Subdivisions: slices.Clone(f.Subdivisions),
	}
}

// Analytics returns the current aggregate statistics.
func (s *Store) Analytics() domain.Analytics {
	a := s.current.Load().Analytics
	a.TopStations = slices.Clone(a.TopStations)
	return a
}

func (s *Store) swap(next *Snapshot) *Snapshot {
	return s.current.Swap(next)
}
