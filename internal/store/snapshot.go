// Package store holds the process-wide active dataset: the ranked employee
// results and their dashboard summary, replaced wholesale on each successful
// upload.
package store

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/retentionai/retention-cli/internal/model"
)

// ErrNotFound indicates an unknown EmployeeID lookup.
var ErrNotFound = eris.New("store: employee not found")

// Snapshot is one immutable processed dataset.
type Snapshot struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Employees []model.EmployeeResult
	Summary   model.Summary

	byID map[string]int
}

// NewSnapshot builds a snapshot with its lookup index.
func NewSnapshot(employees []model.EmployeeResult, summary model.Summary) *Snapshot {
	byID := make(map[string]int, len(employees))
	for i, e := range employees {
		byID[e.EmployeeID] = i
	}
	return &Snapshot{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Employees: employees,
		Summary:   summary,
		byID:      byID,
	}
}

// Store swaps snapshots atomically: readers observe either the previous or
// the new dataset, never a partially-built one. A failed upload never
// replaces the active snapshot.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Replace installs a new snapshot as the active dataset.
func (s *Store) Replace(snap *Snapshot) {
	s.current.Store(snap)
}

// Current returns the active snapshot, or nil before the first upload.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Employees returns the active ranked result list (nil before first upload).
func (s *Store) Employees() []model.EmployeeResult {
	if snap := s.Current(); snap != nil {
		return snap.Employees
	}
	return nil
}

// Summary returns the active summary, or the empty-state summary before the
// first upload. The second return reports whether a dataset is loaded.
func (s *Store) Summary() (model.Summary, bool) {
	if snap := s.Current(); snap != nil {
		return snap.Summary, true
	}
	return model.Summary{}, false
}

// Lookup finds an employee by exact EmployeeID match in the active snapshot.
func (s *Store) Lookup(id string) (model.EmployeeResult, error) {
	snap := s.Current()
	if snap == nil {
		return model.EmployeeResult{}, eris.Wrapf(ErrNotFound, "id %q", id)
	}
	i, ok := snap.byID[id]
	if !ok {
		return model.EmployeeResult{}, eris.Wrapf(ErrNotFound, "id %q", id)
	}
	return snap.Employees[i], nil
}
